package httpx

import (
	"net"
	"net/http"
	"time"
)

// Shared outbound client, used by the Open Library catalog lookups. Timeouts
// are short so a slow metadata API never delays startup noticeably.
var defaultClient = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		MaxConnsPerHost:     10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	},
}

func Client() *http.Client { return defaultClient }
