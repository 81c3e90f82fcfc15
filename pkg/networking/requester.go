package networking

import (
	"context"
	"fmt"

	"github.com/samvad-hq/samvad-recipes/pkg/httpclient"
)

// Requester runs encode, build, send and classify for one descriptor at a time.
type Requester struct {
	transport httpclient.Transport
	encoder   Encoder
	log       Logger
}

// Option customizes a Requester.
type Option func(*Requester)

// WithEncoder replaces the JSON body encoder.
func WithEncoder(enc Encoder) Option {
	return func(r *Requester) {
		if enc != nil {
			r.encoder = enc
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log Logger) Option {
	return func(r *Requester) { r.log = ensureLogger(log) }
}

// NewRequester creates a Requester over transport.
func NewRequester(transport httpclient.Transport, opts ...Option) *Requester {
	r := &Requester{
		transport: transport,
		encoder:   JSONEncoder{},
		log:       noopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Perform sends exactly one request for d and classifies the reply with c.
// Transport errors are returned unchanged.
func Perform[S, E any](ctx context.Context, r *Requester, d Descriptor, c Classifier[S, E]) (Response[S, E], error) {
	var zero Response[S, E]
	if r == nil || r.transport == nil {
		return zero, fmt.Errorf("requester is not initialized")
	}
	if c == nil {
		return zero, fmt.Errorf("classifier must not be nil")
	}

	body, err := r.encodeBody(d)
	if err != nil {
		return zero, err
	}

	req, err := Build(d, body)
	if err != nil {
		r.log.ErrorObj("request build failed", "request_error", map[string]any{
			"path":  d.Path,
			"error": err.Error(),
		})
		return zero, err
	}
	r.log.DebugObj("performing request", "request", map[string]any{
		"method":     req.Method,
		"url":        req.URL.String(),
		"headers":    len(req.Header),
		"body_bytes": len(req.Body),
	})

	resp, err := r.transport.Do(ctx, req)
	if err != nil {
		return zero, err
	}

	httpResp, ok := resp.(httpclient.HTTPResponse)
	if !ok || httpResp == nil {
		r.log.ErrorObj("response is not an http response", "response_type", fmt.Sprintf("%T", resp))
		return zero, &NonHTTPResponseError{Response: resp}
	}

	r.log.DebugObj("response received", "response", map[string]any{
		"url":         req.URL.String(),
		"status_code": httpResp.StatusCode(),
		"body_bytes":  len(httpResp.Body()),
	})
	return c.Classify(httpResp.StatusCode(), httpResp.Body())
}

func (r *Requester) encodeBody(d Descriptor) ([]byte, error) {
	if d.Body == nil {
		return nil, nil
	}
	data, err := r.encoder.Encode(d.Body)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	return data, nil
}
