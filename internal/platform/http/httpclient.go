package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates the client used for provider calls.
//
// http.DefaultClient has no timeout, so the transport and overall deadline are set explicitly:
//   - Proxy honours HTTP_PROXY / HTTPS_PROXY
//   - dial timeout 5s, keep-alive 30s
//   - up to 100 idle connections kept for 90s
//   - TLS handshake timeout 5s
//   - timeout bounds the whole request, body included
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
