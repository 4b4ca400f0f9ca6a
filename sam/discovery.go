package sam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"roomscout/httputil"
	"roomscout/models"
)

const resultsPerPage = 15

var trailingID = regexp.MustCompile(`(\d+)$`)

// SearchKeyword pages through keyword search results and collects room IDs.
// Discovery is best-effort: a failed or empty page ends it early, and order
// and completeness are not guaranteed.
func (c *Client) SearchKeyword(ctx context.Context, keyword, propertyType string, maxPages int) ([]string, error) {
	session := httputil.NewSession()
	referer := c.endpoints.BaseURL + "/webmobile/search?keyword=" + url.QueryEscape(keyword)

	var ids []string
	for page := 0; page < maxPages; page++ {
		form := url.Values{}
		form.Set("theme_type", "")
		form.Set("keyword", keyword)
		form.Set("start_num", strconv.Itoa(page*resultsPerPage))
		form.Set("room_cnt", "")
		form.Set("property_type", propertyType)
		form.Set("animal", "false")
		form.Set("subway", "false")
		form.Set("parking_place", "false")
		form.Set("longterm_discount", "false")
		form.Set("early_discount", "false")
		form.Set("min_using_fee", "0")
		form.Set("max_using_fee", "0")

		resp, err := c.postForm(ctx, session, c.endpoints.SearchPath, referer, form)
		if err != nil {
			return ids, fmt.Errorf("search page %d: %w", page, err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			log.Printf("Warning: keyword search %q: status %d at page %d", keyword, resp.StatusCode, page)
			break
		}

		pageIDs, empty, err := parseSearchPage(resp.Body)
		resp.Body.Close()
		if err != nil {
			return ids, fmt.Errorf("search page %d: %w", page, err)
		}
		if empty {
			break
		}
		ids = append(ids, pageIDs...)
	}

	return ids, nil
}

// parseSearchPage extracts room IDs from the trailing digits of listing
// hrefs in one result fragment. A blank fragment means pagination is done.
func parseSearchPage(body io.Reader) (ids []string, empty bool, err error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, false, err
	}

	if strings.TrimSpace(doc.Text()) == "" && doc.Find("a").Length() == 0 {
		return nil, true, nil
	}

	doc.Find("a[href]").Each(func(i int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if m := trailingID.FindString(href); m != "" {
			ids = append(ids, m)
		}
	})
	return ids, len(ids) == 0, nil
}

type mapSearchResponse struct {
	List []struct {
		RID int64   `json:"rid"`
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"list"`
}

// SearchMap collects the room IDs inside a map viewport in one request.
func (c *Client) SearchMap(ctx context.Context, bounds models.Bounds, mapLevel int, propertyType string) ([]string, error) {
	form := url.Values{}
	form.Set("sort", "popular")
	form.Set("property_type", propertyType)
	form.Set("now_page", "1")
	form.Set("map_level", strconv.Itoa(mapLevel))
	form.Set("by_location", "true")
	form.Set("north_east_lng", formatCoord(bounds.NorthEastLng))
	form.Set("north_east_lat", formatCoord(bounds.NorthEastLat))
	form.Set("south_west_lng", formatCoord(bounds.SouthWestLng))
	form.Set("south_west_lat", formatCoord(bounds.SouthWestLat))
	form.Set("itemcount", "1000")

	resp, err := c.postForm(ctx, c.http, c.endpoints.MapSearchPath, c.endpoints.BaseURL+"/", form)
	if err != nil {
		return nil, fmt.Errorf("map search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("map search: status %d", resp.StatusCode)
	}

	var data mapSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode map search: %w", err)
	}

	ids := make([]string, 0, len(data.List))
	for _, room := range data.List {
		ids = append(ids, strconv.FormatInt(room.RID, 10))
	}
	return ids, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
