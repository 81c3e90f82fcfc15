package networking

import (
	"errors"
	"fmt"

	"github.com/samvad-hq/samvad-recipes/pkg/httpclient"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrInvalidURL      = errors.New("invalid request url")
	ErrEncoding        = errors.New("request body encoding failed")
	ErrNonHTTPResponse = errors.New("non-http response")
	ErrDecoding        = errors.New("response decoding failed")
)

// InvalidURLError is returned by Build when the descriptor path does not parse.
type InvalidURLError struct {
	Path string
	Err  error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("%v: %q: %v", ErrInvalidURL, e.Path, e.Err)
}

func (e *InvalidURLError) Unwrap() error        { return e.Err }
func (e *InvalidURLError) Is(target error) bool { return target == ErrInvalidURL }

// EncodingError wraps the encoder failure for a request body.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string        { return fmt.Sprintf("%v: %v", ErrEncoding, e.Err) }
func (e *EncodingError) Unwrap() error        { return e.Err }
func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

// NonHTTPResponseError carries a transport response that has no status code.
type NonHTTPResponseError struct {
	Response httpclient.Response
}

func (e *NonHTTPResponseError) Error() string {
	return fmt.Sprintf("%v: %T", ErrNonHTTPResponse, e.Response)
}

func (e *NonHTTPResponseError) Is(target error) bool { return target == ErrNonHTTPResponse }

// DecodingError reports a payload that did not match the type expected for
// its status code branch.
type DecodingError struct {
	StatusCode int
	Target     string
	Err        error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("%v: status %d as %s: %v", ErrDecoding, e.StatusCode, e.Target, e.Err)
}

func (e *DecodingError) Unwrap() error        { return e.Err }
func (e *DecodingError) Is(target error) bool { return target == ErrDecoding }
