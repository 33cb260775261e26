package httpclient

import (
	"net"
	"net/http"
	"time"
)

// New returns a client for outbound Bot API calls. A non-positive timeout
// falls back to 15s.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.MaxIdleConnsPerHost = 8

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
