package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"roomscout/config"
	"roomscout/httputil"
	"roomscout/models"
	"roomscout/textutil"
)

const floorMarker = "층"

// Client resolves free-text Korean addresses through the Kakao local API.
type Client struct {
	apiKey     string
	addressURL string
	http       *http.Client
}

func NewClient(apiKey string, endpoints config.KakaoEndpoints) *Client {
	return &Client{
		apiKey:     apiKey,
		addressURL: endpoints.AddressURL,
		http:       httputil.NewClient(),
	}
}

// kakaoResponse mirrors /v2/local/search/address.json.
type kakaoResponse struct {
	Meta struct {
		TotalCount int `json:"total_count"`
	} `json:"meta"`
	Documents []struct {
		X       string               `json:"x"`
		Y       string               `json:"y"`
		Address models.ParcelAddress `json:"address"`
		Road    struct {
			models.RoadAddress
			ZoneNo       string `json:"zone_no"`
			BuildingName string `json:"building_name"`
		} `json:"road_address"`
	} `json:"documents"`
}

// Resolve geocodes one address line into both address forms. The query runs
// in "similar" mode: marketplace addresses carry building names and unit
// markers that defeat exact matching. An empty query resolves to nothing
// without a network call. Failures never yield a partial address.
func (c *Client) Resolve(ctx context.Context, query string) (*models.ResolvedAddress, error) {
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("analyze_type", "similar")

	req, err := http.NewRequestWithContext(ctx, "GET", c.addressURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao status %d for %q", resp.StatusCode, query)
	}

	var data kakaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode kakao response: %w", err)
	}

	if data.Meta.TotalCount == 0 || len(data.Documents) == 0 {
		return nil, fmt.Errorf("no kakao match for %q", query)
	}

	// Highest-ranked candidate only.
	doc := data.Documents[0]

	// Filter first, then rewrite: a roman glyph suffix is dropped by the
	// filter and never reaches the numeral table.
	normalized := textutil.StripNonKoreanAlnum(doc.Road.BuildingName)
	normalized = textutil.CanonicalizeTrailingNumeral(normalized)

	return &models.ResolvedAddress{
		Parcel:                 doc.Address,
		Road:                   doc.Road.RoadAddress,
		Floor:                  floorFromQuery(query),
		PostalCode:             doc.Road.ZoneNo,
		BuildingName:           doc.Road.BuildingName,
		BuildingNameNormalized: normalized,
		Longitude:              doc.X,
		Latitude:               doc.Y,
	}, nil
}

// floorFromQuery reads the floor from the last token of the source text,
// e.g. "... 신안메트로칸 7층" -> "7". "0" when the text carries no floor.
func floorFromQuery(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "0"
	}
	last := fields[len(fields)-1]
	if !strings.HasSuffix(last, floorMarker) {
		return "0"
	}
	return strings.TrimSuffix(last, floorMarker)
}
