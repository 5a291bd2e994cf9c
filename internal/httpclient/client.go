package httpclient

import (
	"net/http"
	"time"
)

// New returns an http.Client configured for outbound requests.
//
// The timeout bounds the whole exchange so a stalled Steam endpoint can
// never hang a poll cycle.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: Transport(),
	}
}

// Transport returns an http.Transport clone suitable for outbound calls.
func Transport() *http.Transport {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return &http.Transport{}
	}
	return base.Clone()
}
