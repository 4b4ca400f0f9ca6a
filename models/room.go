package models

// VacancyFailed is the sentinel rate for a room whose availability could not
// be counted at all.
const VacancyFailed = -1

// Room is one marketplace listing reconciled across the three sources.
// Only SamID is guaranteed; every other field may be absent when its
// resolution stage failed. A Room is not mutated after resolution.
type Room struct {
	SamID   string `json:"sam_id"`
	NaverID string `json:"naver_id,omitempty"` // empty until cross-referenced

	Name     string           `json:"name,omitempty"`
	Address  *ResolvedAddress `json:"address,omitempty"`
	Fees     *FeeSchedule     `json:"fees,omitempty"`
	RoomType string           `json:"room_type,omitempty"`

	// Floor area in pyeong as the marketplace reports it, and as the
	// cross-reference source confirmed it (may differ by one pyeong).
	AreaPyeongSam   int  `json:"area_pyeong_sam"`
	AreaPyeongNaver *int `json:"area_pyeong_naver,omitempty"`

	// VacancyRate is in [0,1], or VacancyFailed. VacancyPartial marks a
	// rate computed over fewer days than the requested window because a
	// month request failed partway through.
	VacancyRate    float64 `json:"vacancy_rate"`
	VacancyPartial bool    `json:"vacancy_partial,omitempty"`

	// Deposit and MonthlyRent come from one combined price string and are
	// set together or not at all.
	Deposit     *int `json:"deposit,omitempty"`
	MonthlyRent *int `json:"monthly_rent,omitempty"`
}

// Bounds is a map viewport for area discovery.
type Bounds struct {
	NorthEastLng float64 `json:"north_east_lng"`
	NorthEastLat float64 `json:"north_east_lat"`
	SouthWestLng float64 `json:"south_west_lng"`
	SouthWestLat float64 `json:"south_west_lat"`
}
