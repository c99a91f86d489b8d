package http

import (
	"net/http"
	"time"
)

type HttpOpts func(*httpConfig)

// Timeouts groups the dial and transport limits of a client.
// Zero fields keep the defaults.
type Timeouts struct {
	Request        time.Duration
	Dial           time.Duration
	KeepAlive      time.Duration
	IdleConn       time.Duration
	ResponseHeader time.Duration
}

func WithTimeouts(t Timeouts) HttpOpts {
	return func(c *httpConfig) {
		c.timeouts = mergeTimeouts(c.timeouts, t)
	}
}

func mergeTimeouts(base, override Timeouts) Timeouts {
	if override.Request > 0 {
		base.Request = override.Request
	}
	if override.Dial > 0 {
		base.Dial = override.Dial
	}
	if override.KeepAlive > 0 {
		base.KeepAlive = override.KeepAlive
	}
	if override.IdleConn > 0 {
		base.IdleConn = override.IdleConn
	}
	if override.ResponseHeader > 0 {
		base.ResponseHeader = override.ResponseHeader
	}
	return base
}

// WithUserAgent sets the User-Agent of requests that have none.
func WithUserAgent(ua string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("User-Agent") != "" {
				return rt.RoundTrip(req)
			}
			clone := req.Clone(req.Context())
			clone.Header.Set("User-Agent", ua)
			return rt.RoundTrip(clone)
		})
	})
}

// WithTransport wraps the base transport. Wrappers apply in the order given,
// so the last one sees the request first.
func WithTransport(transport TransportFunc) HttpOpts {
	return func(c *httpConfig) {
		c.transports = append(c.transports, transport)
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
