package probe

import (
	"context"
	"net"
	"net/http"

	"github.com/gocolly/colly"
)

// CollyProber sends HEAD requests through a synchronous colly collector.
// Redirects follow colly's own policy (at most 10 hops).
type CollyProber struct {
	collector *colly.Collector
	last      *Response
}

func NewCollyProber(opts Options) *CollyProber {
	opts = opts.withDefaults()

	c := colly.NewCollector(
		colly.UserAgent(opts.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(opts.Timeout)
	c.IgnoreRobotsTxt = true
	c.ParseHTTPErrorResponse = true
	c.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
		TLSHandshakeTimeout:   opts.Timeout,
		ResponseHeaderTimeout: opts.Timeout,
		DisableKeepAlives:     true,
	})

	p := &CollyProber{collector: c}
	c.OnResponse(func(r *colly.Response) {
		p.last = &Response{StatusCode: r.StatusCode}
	})
	return p
}

// Head is not safe for concurrent use: the collector reports back through a
// single callback.
func (p *CollyProber) Head(ctx context.Context, urlStr string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.last = nil
	if err := p.collector.Head(urlStr); err != nil {
		return nil, err
	}
	return p.last, nil
}
