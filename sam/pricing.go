package sam

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"roomscout/httputil"
	"roomscout/models"
)

// The booking quote needs a valid date range to render. The range is a
// placeholder far enough out that it will not collide with real
// reservations; the fees it renders do not depend on the dates.
const (
	bookingStartDate = "2027-09-01"
	bookingEndDate   = "2027-09-28"
	bookingWeeks     = "4"
)

// FetchFees submits a booking quote for a room and parses the fee line
// items. A missing 장기계약 할인 line defaults to zero; any other missing
// line is a data-shape failure and returns an error with no schedule.
func (c *Client) FetchFees(ctx context.Context, roomID string) (*models.FeeSchedule, error) {
	form := url.Values{}
	form.Set("rid", roomID)
	form.Set("start_date", bookingStartDate)
	form.Set("end_date", bookingEndDate)
	form.Set("week", bookingWeeks)
	form.Set("is_extend", "false")
	form.Set("popup", "true")

	session := httputil.NewSession()
	resp, err := c.postForm(ctx, session, c.endpoints.BookingPath, c.RoomURL(roomID), form)
	if err != nil {
		return nil, fmt.Errorf("booking quote for %s: %w", roomID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("booking quote for %s: status %d", roomID, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse booking quote for %s: %w", roomID, err)
	}

	return parseFees(doc)
}

func parseFees(doc *goquery.Document) (*models.FeeSchedule, error) {
	parsed := make(map[string]int)
	doc.Find(".contract_list li").Each(func(i int, li *goquery.Selection) {
		label := strings.TrimSpace(li.Find("span").First().Text())
		if label == "" {
			return
		}
		amount, err := parseAmount(li.Find("p").First().Text())
		if err != nil {
			return
		}
		parsed[label] = amount
	})

	if _, ok := parsed[models.FeeLongTermDiscount]; !ok {
		parsed[models.FeeLongTermDiscount] = 0
	}

	fees := &models.FeeSchedule{}
	for label, dst := range map[string]*int{
		models.FeeBaseRent:         &fees.BaseRent,
		models.FeeLongTermDiscount: &fees.LongTermDiscount,
		models.FeeManagement:       &fees.ManagementFee,
		models.FeeCleaning:         &fees.CleaningFee,
		models.FeeContract:         &fees.ContractFee,
	} {
		v, ok := parsed[label]
		if !ok {
			return nil, fmt.Errorf("booking quote missing %s", label)
		}
		*dst = v
	}
	return fees, nil
}

// parseAmount turns "500,000원" into 500000.
func parseAmount(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "원")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.Atoi(s)
}
