package networking

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samvad-hq/samvad-recipes/pkg/httpclient"
)

// Method is one of the HTTP verbs a Descriptor may use.
type Method int

const (
	GET Method = iota + 1
	POST
	PUT
	DELETE
)

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	case PUT:
		return "PUT"
	case DELETE:
		return "DELETE"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a verb to a Method, ignoring case.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GET":
		return GET, nil
	case "POST":
		return POST, nil
	case "PUT":
		return PUT, nil
	case "DELETE":
		return DELETE, nil
	default:
		return 0, fmt.Errorf("unsupported http method %q", s)
	}
}

// Header aliases the transport header pair.
type Header = httpclient.Header

// JSONContentType is the header most JSON bodies need.
var JSONContentType = Header{Key: "Content-Type", Value: "application/json"}

// Descriptor declares one HTTP call. Body is encoded by the Requester when
// non-nil.
type Descriptor struct {
	Method  Method
	Path    string
	Headers []Header
	Body    any
}

// Build turns a descriptor plus an already-encoded body into a transport
// request. It has no side effects.
func Build(d Descriptor, encodedBody []byte) (*httpclient.Request, error) {
	u, err := parseAbsoluteURL(d.Path)
	if err != nil {
		return nil, &InvalidURLError{Path: d.Path, Err: err}
	}
	switch d.Method {
	case GET, POST, PUT, DELETE:
	default:
		return nil, fmt.Errorf("build request for %s: unsupported method %s", d.Path, d.Method)
	}

	req := &httpclient.Request{
		Method: d.Method.String(),
		URL:    u,
	}
	if len(d.Headers) > 0 {
		req.Header = make([]Header, len(d.Headers))
		copy(req.Header, d.Headers)
	}
	if encodedBody != nil {
		req.Body = encodedBody
	}
	return req, nil
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("url %q is not absolute", raw)
	}
	return u, nil
}
