package networking

type responseKind uint8

const (
	kindInvalid responseKind = iota
	kindSuccess
	kindError
)

// Response holds exactly one of a success payload S or an error payload E.
// Construct it with SuccessResponse or ErrorResponse; the zero value holds
// neither and is never returned alongside a nil error.
type Response[S, E any] struct {
	kind    responseKind
	success S
	failure E
}

// SuccessResponse wraps a decoded success payload.
func SuccessResponse[S, E any](v S) Response[S, E] {
	return Response[S, E]{kind: kindSuccess, success: v}
}

// ErrorResponse wraps a decoded error payload.
func ErrorResponse[S, E any](v E) Response[S, E] {
	return Response[S, E]{kind: kindError, failure: v}
}

// IsSuccess reports whether the response carries the success payload.
func (r Response[S, E]) IsSuccess() bool { return r.kind == kindSuccess }

// IsError reports whether the response carries the error payload.
func (r Response[S, E]) IsError() bool { return r.kind == kindError }

// Success returns the success payload and true, or the zero S and false.
func (r Response[S, E]) Success() (S, bool) {
	if r.kind != kindSuccess {
		var zero S
		return zero, false
	}
	return r.success, true
}

// Failure returns the error payload and true, or the zero E and false.
func (r Response[S, E]) Failure() (E, bool) {
	if r.kind != kindError {
		var zero E
		return zero, false
	}
	return r.failure, true
}
