package httputil

import (
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Browser user agents the target sites expect. The mobile UA gets the
// lightweight mobile markup; the desktop UA is what the booking and schedule
// XHR endpoints see in practice.
const (
	MobileUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 13_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/13.0 Mobile/15E148 Safari/604.1"
	DesktopUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.2 Safari/605.1.15"
)

const requestTimeout = 15 * time.Second

// NewClient returns a plain client for stateless page fetches. Redirects are
// followed; callers that care about the landing URL read resp.Request.URL.
func NewClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// NewSession returns a client with its own cookie jar. The marketplace's
// booking and schedule endpoints expect the cookies from one session to be
// carried across their sequential requests, and sessions must never be shared
// between concurrently resolved rooms.
func NewSession() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Timeout: requestTimeout,
		Jar:     jar,
	}
}
