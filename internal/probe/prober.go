// Package probe issues the HEAD requests used to decide whether an image URL
// is still reachable.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultUserAgent = "wxrcheck/1.0 (+image reference validator)"
	DefaultTimeout   = 30 * time.Second
	DefaultMaxHops   = 5
)

// Response is what a Prober learned about a URL. A nil Response with a nil
// error means the server gave nothing back.
type Response struct {
	StatusCode int
}

type Prober interface {
	Head(ctx context.Context, urlStr string) (*Response, error)
}

type Options struct {
	UserAgent string
	Timeout   time.Duration
	// MaxHops is the number of redirects followed. Zero disables redirects so
	// the 3xx status itself is reported.
	MaxHops int
}

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxHops < 0 {
		o.MaxHops = 0
	}
	return o
}

type HTTPProber struct {
	client    *http.Client
	userAgent string
}

func NewHTTPProber(opts Options) *HTTPProber {
	opts = opts.withDefaults()
	maxHops := opts.MaxHops

	return &HTTPProber{
		userAgent: opts.UserAgent,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:             http.ProxyFromEnvironment,
				DisableKeepAlives: true,
				MaxIdleConns:      0,
			},
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if maxHops == 0 {
					return http.ErrUseLastResponse
				}
				if len(via) > maxHops {
					return fmt.Errorf("stopped after %d redirects", maxHops)
				}
				return nil
			},
		},
	}
}

func (p *HTTPProber) Head(ctx context.Context, urlStr string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, urlStr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return &Response{StatusCode: resp.StatusCode}, nil
}
