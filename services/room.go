package services

import (
	"context"
	"log"
	"time"

	"roomscout/geocode"
	"roomscout/models"
	"roomscout/naver"
	"roomscout/sam"
)

// RoomService assembles one Room from the three sources. Stages run
// sequentially; each failure is logged and degrades that stage's fields to
// absent rather than failing the room.
type RoomService struct {
	sam   *sam.Client
	geo   *geocode.Client
	naver *naver.Client

	vacancyWindow int

	// Now anchors the vacancy window; tests swap it for a fixed date.
	Now func() time.Time
}

func NewRoomService(samClient *sam.Client, geoClient *geocode.Client, naverClient *naver.Client, vacancyWindow int) *RoomService {
	return &RoomService{
		sam:           samClient,
		geo:           geoClient,
		naver:         naverClient,
		vacancyWindow: vacancyWindow,
		Now:           time.Now,
	}
}

// Resolve builds the room record with the floor-area tolerance fallback
// enabled, the standard flow.
func (s *RoomService) Resolve(ctx context.Context, roomID string) *models.Room {
	return s.resolve(ctx, roomID, false)
}

// ResolveExact is the stricter entry point: the cross-reference only accepts
// an exact floor-area match.
func (s *RoomService) ResolveExact(ctx context.Context, roomID string) *models.Room {
	return s.resolve(ctx, roomID, true)
}

func (s *RoomService) resolve(ctx context.Context, roomID string, exact bool) *models.Room {
	room := &models.Room{
		SamID:       roomID,
		VacancyRate: models.VacancyFailed,
	}

	// 1. Marketplace detail page: name, address line, area, type.
	var addressText string
	detail, err := s.sam.FetchDetail(ctx, roomID)
	if err != nil {
		log.Printf("Warning: room %s: detail fetch failed: %v", roomID, err)
	} else {
		room.Name = detail.Name
		room.AreaPyeongSam = detail.AreaPyeong
		room.RoomType = detail.RoomType
		addressText = detail.AddressText
	}

	// 2. Geocode the address line. An absent line skips the call; a failed
	// lookup leaves the address absent, never partial.
	addr, err := s.geo.Resolve(ctx, addressText)
	if err != nil {
		log.Printf("Warning: room %s: geocode failed: %v", roomID, err)
	}
	room.Address = addr

	// 3. Booking fees, keyed by room ID only.
	fees, err := s.sam.FetchFees(ctx, roomID)
	if err != nil {
		log.Printf("Warning: room %s: fee fetch failed: %v", roomID, err)
	} else {
		room.Fees = fees
	}

	// 4. Vacancy over the rolling window, anchored at the injected clock.
	vacancy, err := s.sam.VacancyReport(ctx, roomID, s.vacancyWindow, s.Now())
	if err != nil {
		log.Printf("Warning: room %s: vacancy count incomplete: %v", roomID, err)
	}
	room.VacancyRate = vacancy.Rate
	room.VacancyPartial = vacancy.Partial

	// 5. Cross-reference, depending on the geocode and the marketplace area.
	s.crossReference(ctx, room, exact)

	return room
}

func (s *RoomService) crossReference(ctx context.Context, room *models.Room, exact bool) {
	if room.Address == nil {
		log.Printf("Warning: room %s: no address, skipping cross-reference", room.SamID)
		return
	}

	complexID, err := s.naver.ResolveComplex(ctx, room.Address)
	if err != nil {
		log.Printf("Warning: room %s: cross-reference search failed: %v", room.SamID, err)
		return
	}
	room.NaverID = complexID

	article, err := s.naver.FetchArticlePrice(ctx, complexID, room.AreaPyeongSam, exact)
	if err != nil {
		log.Printf("Warning: room %s: %v", room.SamID, err)
		return
	}

	// Deposit and rent come from one price string; set all three together.
	area := article.AreaPyeong
	deposit := article.Deposit
	rent := article.MonthlyRent
	room.AreaPyeongNaver = &area
	room.Deposit = &deposit
	room.MonthlyRent = &rent
}
