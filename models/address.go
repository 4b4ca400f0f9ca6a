package models

import "strings"

// ParcelAddress is the lot-number (지번) form of a Korean address.
type ParcelAddress struct {
	Region1 string `json:"region_1depth_name"` // province / city
	Region2 string `json:"region_2depth_name"` // district
	Region3 string `json:"region_3depth_name"` // neighborhood
	MainNo  string `json:"main_address_no"`
	SubNo   string `json:"sub_address_no"`
}

// String renders the canonical form, e.g. "서울 강남구 대치동 943-24".
func (a ParcelAddress) String() string {
	return a.Region1 + " " + a.Region2 + " " + a.Region3 + " " + a.MainNo + "-" + a.SubNo
}

// Fields returns the five components in canonical order.
func (a ParcelAddress) Fields() [5]string {
	return [5]string{a.Region1, a.Region2, a.Region3, a.MainNo, a.SubNo}
}

// RoadAddress is the road-name (도로명) form. SubNo may be empty.
type RoadAddress struct {
	Region1  string `json:"region_1depth_name"`
	Region2  string `json:"region_2depth_name"`
	RoadName string `json:"road_name"`
	MainNo   string `json:"main_building_no"`
	SubNo    string `json:"sub_building_no"`
}

// String renders e.g. "서울 강남구 삼성로95길 9" (no trailing space when
// the sub building number is empty).
func (a RoadAddress) String() string {
	return strings.TrimSpace(a.Region1 + " " + a.Region2 + " " + a.RoadName + " " + a.MainNo + " " + a.SubNo)
}

// Fields returns the five components in canonical order.
func (a RoadAddress) Fields() [5]string {
	return [5]string{a.Region1, a.Region2, a.RoadName, a.MainNo, a.SubNo}
}

// ResolvedAddress is a successful geocode of a marketplace address line.
// It is constructed whole or not at all: a failed lookup produces no
// ResolvedAddress rather than a partial one.
type ResolvedAddress struct {
	Parcel ParcelAddress `json:"parcel"`
	Road   RoadAddress   `json:"road"`

	// Floor holds the digits preceding a 층 marker in the source text,
	// "0" when the text carried no floor.
	Floor      string `json:"floor"`
	PostalCode string `json:"postal_code"`

	BuildingName           string `json:"building_name"`
	BuildingNameNormalized string `json:"building_name_normalized"`

	// Coordinates as returned by the geocoding source, not reprojected.
	Longitude string `json:"longitude"`
	Latitude  string `json:"latitude"`
}

func (a *ResolvedAddress) String() string {
	return a.Parcel.String()
}
