// Package naver cross-references a geocoded building against the secondary
// listings site to confirm floor area and obtain deposit/rent figures.
package naver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"roomscout/config"
	"roomscout/httputil"
	"roomscout/models"
	"roomscout/textutil"
)

const complexPathPrefix = "/complexes/"

type Client struct {
	endpoints config.NaverEndpoints
	http      *http.Client
}

func NewClient(endpoints config.NaverEndpoints) *Client {
	return &Client{
		endpoints: endpoints,
		http:      httputil.NewClient(),
	}
}

// ResolveComplex searches the site by building name and returns the complex
// ID for the geocoded address. The search key is the normalized building
// name with its trailing unit/block digits stripped, so same-building
// variants land on one complex. Three response shapes are handled: an
// explicit no-result marker, a disambiguation list resolved by road-name
// containment, and a direct redirect to the complex page.
func (c *Client) ResolveComplex(ctx context.Context, addr *models.ResolvedAddress) (string, error) {
	key := textutil.StripTrailingDigits(addr.BuildingNameNormalized)
	if key == "" {
		return "", fmt.Errorf("building name %q reduces to an empty search key", addr.BuildingNameNormalized)
	}

	searchURL := c.endpoints.SearchBaseURL + "/search/result/" + url.PathEscape(key)
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", httputil.MobileUA)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("search %q: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search %q: status %d", key, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse search %q: %w", key, err)
	}

	if doc.Find(".p_noresult").Length() > 0 {
		return "", fmt.Errorf("no result for %q", key)
	}

	if doc.Find(".layer_result").Length() > 0 {
		id, found := pickByRoadName(doc, addr.Road.RoadName)
		if !found {
			return "", fmt.Errorf("no candidate for %q matches road %q", key, addr.Road.RoadName)
		}
		return id, nil
	}

	// Redirects were followed; a landing on a complex page answers directly.
	if landed := resp.Request.URL.Path; strings.HasPrefix(landed, complexPathPrefix) {
		return strings.TrimPrefix(landed, complexPathPrefix), nil
	}

	return "", fmt.Errorf("unrecognized search response for %q", key)
}

// pickByRoadName walks the disambiguation list and takes the first candidate
// whose listed address contains the geocoded road name. The marketplace
// provides parcel addresses while this site lists road addresses, so the
// road name is the only token shared between the two.
func pickByRoadName(doc *goquery.Document, roadName string) (id string, found bool) {
	doc.Find("li.result_item").EachWithBreak(func(i int, item *goquery.Selection) bool {
		address := strings.TrimSpace(item.Find("span.address").First().Text())
		href, ok := item.Find("a.inner").First().Attr("href")
		if address == "" || !ok {
			return true
		}
		if !strings.Contains(address, roadName) {
			return true
		}
		parts := strings.Split(strings.TrimRight(href, "/"), "/")
		id = parts[len(parts)-1]
		found = true
		return false
	})
	return id, found
}
