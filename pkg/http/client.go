package http

import (
	"net"
	"net/http"
	"time"
)

type TransportFunc func(http.RoundTripper) http.RoundTripper

type httpConfig struct {
	timeouts   Timeouts
	transports []TransportFunc
}

var defaultTimeouts = Timeouts{
	Request:        30 * time.Second,
	Dial:           10 * time.Second,
	KeepAlive:      90 * time.Second,
	IdleConn:       90 * time.Second,
	ResponseHeader: 30 * time.Second,
}

// NewClient builds an HTTP client for outbound calls to LLM providers.
// Proxy settings come from the environment.
func NewClient(opts ...HttpOpts) *http.Client {
	cfg := &httpConfig{timeouts: defaultTimeouts}
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := &net.Dialer{
		Timeout:   cfg.timeouts.Dial,
		KeepAlive: cfg.timeouts.KeepAlive,
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	base.DialContext = dialer.DialContext
	base.IdleConnTimeout = cfg.timeouts.IdleConn
	base.ResponseHeaderTimeout = cfg.timeouts.ResponseHeader

	var transport http.RoundTripper = base
	for _, wrap := range cfg.transports {
		transport = wrap(transport)
	}

	return &http.Client{
		Timeout:   cfg.timeouts.Request,
		Transport: transport,
	}
}
