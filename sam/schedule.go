package sam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"roomscout/httputil"
	"roomscout/models"
)

// maxScheduleMonths bounds the month walk for rooms whose calendar is
// disabled indefinitely; past it the report is returned as partial.
const maxScheduleMonths = 24

// Vacancy is the result of counting a room's availability window.
type Vacancy struct {
	// Rate is VacantDays/CountedDays in [0,1], or models.VacancyFailed
	// when no day could be counted.
	Rate        float64
	CountedDays int
	VacantDays  int
	// Partial marks a rate computed over fewer days than requested
	// because a month request failed before the window filled.
	Partial bool
}

// VacancyReport walks month schedules starting the day after anchor until
// window days have been counted. Owner-disabled days are excluded from the
// denominator; booked days count but are not vacant. A transport failure
// mid-walk stops counting and the rate covers only the accumulated days
// (Partial is set); the returned error carries the cause.
func (c *Client) VacancyReport(ctx context.Context, roomID string, window int, anchor time.Time) (Vacancy, error) {
	v := Vacancy{Rate: models.VacancyFailed}
	if window <= 0 {
		return v, fmt.Errorf("vacancy window must be positive, got %d", window)
	}

	// Same-day booking is assumed unavailable; counting starts tomorrow.
	cursor := anchor.AddDate(0, 0, 1)
	year, month, startDay := cursor.Year(), int(cursor.Month()), cursor.Day()

	session := httputil.NewSession()

	var walkErr error
	counted, vacant := 0, 0
	for months := 0; counted < window; months++ {
		if months >= maxScheduleMonths {
			walkErr = fmt.Errorf("room %s: no countable days within %d months", roomID, maxScheduleMonths)
			break
		}

		booked, disabled, err := c.fetchMonth(ctx, session, roomID, year, month)
		if err != nil {
			walkErr = err
			break
		}

		last := daysInMonth(year, month)
		for day := startDay; day <= last && counted < window; day++ {
			if disabled[day] {
				continue
			}
			counted++
			if !booked[day] {
				vacant++
			}
		}

		if month == 12 {
			year, month = year+1, 1
		} else {
			month++
		}
		startDay = 1
	}

	v.CountedDays = counted
	v.VacantDays = vacant
	v.Partial = walkErr != nil
	if counted > 0 {
		v.Rate = float64(vacant) / float64(counted)
	}
	return v, walkErr
}

// scheduleResponse lists only the unavailable days; a day absent from the
// list is open.
type scheduleResponse struct {
	ScheduleList []struct {
		Date   string `json:"date"` // "2026-09-03"
		Status string `json:"status"`
	} `json:"schedule_list"`
}

func (c *Client) fetchMonth(ctx context.Context, client *http.Client, roomID string, year, month int) (booked, disabled map[int]bool, err error) {
	form := url.Values{}
	form.Set("rid", roomID)
	form.Set("year", strconv.Itoa(year))
	form.Set("month", strconv.Itoa(month))

	resp, err := c.postForm(ctx, client, c.endpoints.SchedulePath, c.RoomURL(roomID), form)
	if err != nil {
		return nil, nil, fmt.Errorf("schedule %d-%02d for %s: %w", year, month, roomID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("schedule %d-%02d for %s: status %d", year, month, roomID, resp.StatusCode)
	}

	var data scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, nil, fmt.Errorf("decode schedule %d-%02d for %s: %w", year, month, roomID, err)
	}

	booked = make(map[int]bool)
	disabled = make(map[int]bool)
	for _, item := range data.ScheduleList {
		parts := strings.Split(item.Date, "-")
		if len(parts) != 3 {
			continue
		}
		day, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		switch item.Status {
		case "booking":
			booked[day] = true
		case "disable":
			disabled[day] = true
		}
	}
	return booked, disabled, nil
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
