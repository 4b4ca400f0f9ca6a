package sam

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"roomscout/httputil"
)

// Detail list labels on the room page.
const (
	labelArea     = "전용 면적"
	labelRoomType = "건물 유형"
)

// Detail is what the room page itself states about a listing.
type Detail struct {
	Name        string
	AddressText string // raw address line, input to geocoding
	AreaPyeong  int    // 0 when the page omits it
	RoomType    string // "" when the page omits it
}

// FetchDetail loads the room detail page and extracts name, address line,
// floor area and building type. A missing element leaves its zero value;
// only transport failures return an error.
func (c *Client) FetchDetail(ctx context.Context, roomID string) (*Detail, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.RoomURL(roomID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", httputil.MobileUA)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch room %s: %w", roomID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("room %s: status %d", roomID, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse room %s: %w", roomID, err)
	}

	return parseDetail(doc, roomID), nil
}

func parseDetail(doc *goquery.Document, roomID string) *Detail {
	d := &Detail{}

	intro := doc.Find("#room_intro")
	d.Name = strings.TrimSpace(intro.Find("strong").First().Text())
	d.AddressText = strings.TrimSpace(intro.Find("p.address").First().Text())

	list := doc.Find("ul.place_detail li")
	if list.Length() == 0 {
		log.Printf("Warning: room %s: no place_detail list", roomID)
		return d
	}

	if v, ok := detailValue(list, labelArea); ok {
		d.AreaPyeong = leadingInt(v)
	} else {
		log.Printf("Warning: room %s: no %s entry", roomID, labelArea)
	}

	if v, ok := detailValue(list, labelRoomType); ok {
		d.RoomType = v
	} else {
		log.Printf("Warning: room %s: no %s entry", roomID, labelRoomType)
	}

	return d
}

// detailValue scans the detail list for the first entry whose span label
// contains label and returns its paired p text.
func detailValue(items *goquery.Selection, label string) (string, bool) {
	var value string
	found := false
	items.EachWithBreak(func(i int, li *goquery.Selection) bool {
		if !strings.Contains(li.Find("span").First().Text(), label) {
			return true
		}
		p := li.Find("p").First()
		if p.Length() == 0 {
			return true
		}
		value = strings.TrimSpace(p.Text())
		found = true
		return false
	})
	return value, found
}

// leadingInt parses the integer prefix of a value like "18평".
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
