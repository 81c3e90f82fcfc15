package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds a single round trip of the default transport.
const DefaultTimeout = 15 * time.Second

// RestyClient adapts resty.Client to the Transport interface.
type RestyClient struct {
	client *resty.Client
}

// RestyOption tunes the underlying resty client.
type RestyOption func(*resty.Client)

// WithResponseBodyLimit makes Do fail with resty.ErrResponseBodyTooLarge once
// a response body grows past limit bytes, before the rest is read.
func WithResponseBodyLimit(limit int) RestyOption {
	return func(c *resty.Client) { c.SetResponseBodyLimit(limit) }
}

// NewRestyClient creates a new RestyClient with the specified timeout.
func NewRestyClient(timeout time.Duration, opts ...RestyOption) *RestyClient {
	c := newRestyBaseClient(timeout)
	for _, opt := range opts {
		opt(c)
	}
	return &RestyClient{client: c}
}

// DefaultTransport returns the resty-backed transport used by the binaries.
func DefaultTransport() Transport { return NewRestyClient(DefaultTimeout) }

// newRestyBaseClient creates a new resty.Client with the specified timeout.
// Retries stay disabled: one Do is one request on the wire.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetRetryCount(0)
	return c
}

// Do sends req as-is. Transport failures are returned unchanged.
func (r *RestyClient) Do(ctx context.Context, req *Request) (Response, error) {
	if req == nil || req.URL == nil {
		return nil, fmt.Errorf("httpclient: request has no url")
	}

	rr := r.client.R().SetContext(ctx)
	for _, h := range req.Header {
		rr.Header.Add(h.Key, h.Value)
	}
	if req.Body != nil {
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(req.Method, req.URL.String())
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the HTTPResponse interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
