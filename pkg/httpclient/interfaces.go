package httpclient

import (
	"context"
	"net/url"
)

// Header is a single request header. A []Header keeps insertion order and
// may carry the same key more than once.
type Header struct {
	Key   string
	Value string
}

// Request is a transport-ready HTTP request.
type Request struct {
	Method string
	URL    *url.URL
	Header []Header
	Body   []byte
}

// Response is the raw payload returned by a Transport.
type Response interface {
	Body() []byte
}

// HTTPResponse is a Response that also exposes an HTTP status code.
type HTTPResponse interface {
	Response
	StatusCode() int
}

// Transport sends one request and returns the raw response. Implementations
// must not retry.
type Transport interface {
	Do(ctx context.Context, req *Request) (Response, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (Response, error)

func (f TransportFunc) Do(ctx context.Context, req *Request) (Response, error) { return f(ctx, req) }
