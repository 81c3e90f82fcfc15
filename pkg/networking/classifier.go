package networking

import (
	"fmt"
	"net/http"
)

// Classifier turns a status code and raw body into a Response.
type Classifier[S, E any] interface {
	Classify(statusCode int, body []byte) (Response[S, E], error)
}

// StatusClassifier branches on the status code only: 2xx bodies decode as S,
// everything else decodes as E. A decode failure on either branch is a
// *DecodingError; the other type is never tried.
type StatusClassifier[S, E any] struct {
	decoder Decoder
	log     Logger
}

// NewStatusClassifier builds a classifier around decoder (JSON when nil).
func NewStatusClassifier[S, E any](decoder Decoder, log Logger) *StatusClassifier[S, E] {
	if decoder == nil {
		decoder = JSONDecoder{}
	}
	return &StatusClassifier[S, E]{decoder: decoder, log: ensureLogger(log)}
}

// IsSuccessStatus reports whether code is in [200,300).
func IsSuccessStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

func (c *StatusClassifier[S, E]) Classify(statusCode int, body []byte) (Response[S, E], error) {
	if !IsSuccessStatus(statusCode) {
		var payload E
		if err := c.decode(statusCode, body, &payload); err != nil {
			return Response[S, E]{}, err
		}
		return ErrorResponse[S](payload), nil
	}

	var payload S
	if err := c.decode(statusCode, body, &payload); err != nil {
		return Response[S, E]{}, err
	}
	return SuccessResponse[S, E](payload), nil
}

func (c *StatusClassifier[S, E]) decode(statusCode int, body []byte, v any) error {
	if err := c.decoder.Decode(body, v); err != nil {
		target := fmt.Sprintf("%T", v)
		c.log.ErrorObj("response decode failed", "decode_error", map[string]any{
			"status_code": statusCode,
			"target":      target,
			"error":       err.Error(),
		})
		return &DecodingError{StatusCode: statusCode, Target: target, Err: err}
	}
	return nil
}
