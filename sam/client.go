// Package sam is the client for the 33m2 short-term rental marketplace.
package sam

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"roomscout/config"
	"roomscout/httputil"
)

// Client talks to the marketplace. The client itself is stateless and safe
// for concurrent use; the stateful endpoints (booking, schedule, search)
// open their own cookie-jar session per operation so concurrently resolved
// rooms never share one.
type Client struct {
	endpoints config.SamEndpoints
	http      *http.Client
}

func NewClient(endpoints config.SamEndpoints) *Client {
	return &Client{
		endpoints: endpoints,
		http:      httputil.NewClient(),
	}
}

// RoomURL is the public detail page for a room, also used as the Referer the
// XHR endpoints expect.
func (c *Client) RoomURL(roomID string) string {
	return c.endpoints.BaseURL + c.endpoints.DetailPath + roomID
}

// postForm submits a form-encoded XHR the way the site's own frontend does.
func (c *Client) postForm(ctx context.Context, client *http.Client, path, referer string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoints.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Origin", c.endpoints.BaseURL)
	req.Header.Set("User-Agent", httputil.DesktopUA)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	return client.Do(req)
}
