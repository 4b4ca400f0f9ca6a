package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomscout/config"
	"roomscout/geocode"
	"roomscout/models"
	"roomscout/naver"
	"roomscout/sam"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

// sourceStack stands in for all three external sites. Individual handlers
// can be nil'd out to simulate a source being down.
type sourceStack struct {
	detail   func(w http.ResponseWriter, r *http.Request)
	booking  func(w http.ResponseWriter, r *http.Request)
	schedule func(w http.ResponseWriter, r *http.Request)
	kakao    func(w http.ResponseWriter, r *http.Request)
	search   func(w http.ResponseWriter, r *http.Request)
	complex  func(w http.ResponseWriter, r *http.Request)
}

func defaultStack(t *testing.T) *sourceStack {
	return &sourceStack{
		detail: func(w http.ResponseWriter, r *http.Request) {
			w.Write(loadFixture(t, "room_detail.html"))
		},
		booking: func(w http.ResponseWriter, r *http.Request) {
			w.Write(loadFixture(t, "booking_quote.html"))
		},
		schedule: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"schedule_list":[]}`))
		},
		kakao: func(w http.ResponseWriter, r *http.Request) {
			w.Write(loadFixture(t, "kakao_address.json"))
		},
		search: func(w http.ResponseWriter, r *http.Request) {
			w.Write(loadFixture(t, "naver_search.html"))
		},
		complex: func(w http.ResponseWriter, r *http.Request) {
			w.Write(loadFixture(t, "naver_complex.html"))
		},
	}
}

func unavailable(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusServiceUnavailable)
}

func newService(t *testing.T, stack *sourceStack) *RoomService {
	t.Helper()

	endpoints := config.DefaultSources()

	mux := http.NewServeMux()
	mux.HandleFunc(endpoints.Sam.DetailPath, stack.detail)
	mux.HandleFunc(endpoints.Sam.BookingPath, stack.booking)
	mux.HandleFunc(endpoints.Sam.SchedulePath, stack.schedule)
	mux.HandleFunc("/kakao/address.json", stack.kakao)
	mux.HandleFunc("/search/result/", stack.search)
	mux.HandleFunc("/complexes/", stack.complex)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	endpoints.Sam.BaseURL = ts.URL
	endpoints.Naver.SearchBaseURL = ts.URL
	endpoints.Naver.ComplexBaseURL = ts.URL
	endpoints.Kakao.AddressURL = ts.URL + "/kakao/address.json"

	svc := NewRoomService(
		sam.NewClient(endpoints.Sam),
		geocode.NewClient("test-key", endpoints.Kakao),
		naver.NewClient(endpoints.Naver),
		28,
	)
	svc.Now = func() time.Time { return time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestResolve_FullPipeline(t *testing.T) {
	svc := newService(t, defaultStack(t))

	room := svc.Resolve(context.Background(), "38048")

	assert.Equal(t, "38048", room.SamID)
	assert.Equal(t, "스튜디오 A", room.Name)
	assert.Equal(t, "오피스텔", room.RoomType)
	assert.Equal(t, 18, room.AreaPyeongSam)

	require.NotNil(t, room.Address)
	assert.Equal(t, "서울 강남구 대치동 943-24", room.Address.Parcel.String())
	assert.Equal(t, "7", room.Address.Floor)
	assert.Equal(t, "신안메트로칸7", room.Address.BuildingNameNormalized)

	require.NotNil(t, room.Fees)
	assert.Equal(t, 500000, room.Fees.BaseRent)
	assert.Equal(t, 50000, room.Fees.LongTermDiscount)

	assert.Equal(t, 1.0, room.VacancyRate)
	assert.False(t, room.VacancyPartial)

	assert.Equal(t, "19428", room.NaverID)
	require.NotNil(t, room.Deposit)
	require.NotNil(t, room.MonthlyRent)
	require.NotNil(t, room.AreaPyeongNaver)
	assert.Equal(t, 1000, *room.Deposit)
	assert.Equal(t, 80, *room.MonthlyRent)
	assert.Equal(t, 18, *room.AreaPyeongNaver)
}

func TestResolve_DetailDownStillCountsVacancy(t *testing.T) {
	stack := defaultStack(t)
	stack.detail = unavailable
	svc := newService(t, stack)

	room := svc.Resolve(context.Background(), "38048")

	// No detail means no address line, so geocoding and the cross-reference
	// are skipped, but fees and vacancy still come through.
	assert.Empty(t, room.Name)
	assert.Nil(t, room.Address)
	assert.Empty(t, room.NaverID)
	assert.Nil(t, room.Deposit)
	require.NotNil(t, room.Fees)
	assert.Equal(t, 1.0, room.VacancyRate)
}

func TestResolve_GeocodeDownSkipsCrossReference(t *testing.T) {
	stack := defaultStack(t)
	stack.kakao = unavailable
	svc := newService(t, stack)

	room := svc.Resolve(context.Background(), "38048")

	assert.Equal(t, "스튜디오 A", room.Name)
	assert.Nil(t, room.Address)
	assert.Empty(t, room.NaverID)
	assert.Nil(t, room.AreaPyeongNaver)
}

func TestResolve_ArticleFailureLeavesPriceFieldsTogether(t *testing.T) {
	stack := defaultStack(t)
	stack.complex = unavailable
	svc := newService(t, stack)

	room := svc.Resolve(context.Background(), "38048")

	// The complex was identified, but with no readable article neither
	// deposit nor rent may be set alone.
	assert.Equal(t, "19428", room.NaverID)
	assert.Nil(t, room.Deposit)
	assert.Nil(t, room.MonthlyRent)
	assert.Nil(t, room.AreaPyeongNaver)
}

func TestResolve_ScheduleDownYieldsFailedRate(t *testing.T) {
	stack := defaultStack(t)
	stack.schedule = unavailable
	svc := newService(t, stack)

	room := svc.Resolve(context.Background(), "38048")

	assert.Equal(t, float64(models.VacancyFailed), room.VacancyRate)
	assert.True(t, room.VacancyPartial)
}

func TestResolveExact_RejectsNeighboringArea(t *testing.T) {
	stack := defaultStack(t)
	stack.complex = func(w http.ResponseWriter, r *http.Request) {
		body := string(loadFixture(t, "naver_complex.html"))
		// Shift the 18 pyeong offer to 19 so no exact match remains.
		body = strings.Replace(body, "59㎡(18)", "60㎡(19)", 1)
		w.Write([]byte(body))
	}
	svc := newService(t, stack)

	exact := svc.ResolveExact(context.Background(), "38048")
	assert.Nil(t, exact.Deposit)

	loose := svc.Resolve(context.Background(), "38048")
	require.NotNil(t, loose.Deposit)
	assert.Equal(t, 900, *loose.Deposit)
	assert.Equal(t, 70, *loose.MonthlyRent)
}
