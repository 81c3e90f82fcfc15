package networking

import (
	"errors"
	"reflect"
	"testing"
)

type widget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type apiError struct {
	Message string `json:"message"`
}

type emptyError struct{}

func TestStatusClassifierDecodesSuccessOn2xx(t *testing.T) {
	c := NewStatusClassifier[widget, apiError](nil, nil)
	for _, code := range []int{200, 201, 204, 299} {
		resp, err := c.Classify(code, []byte(`{"name":"bolt","count":3}`))
		if err != nil {
			t.Fatalf("status %d: %v", code, err)
		}
		got, ok := resp.Success()
		if !ok || resp.IsError() {
			t.Fatalf("status %d: expected success response", code)
		}
		if !reflect.DeepEqual(got, widget{Name: "bolt", Count: 3}) {
			t.Fatalf("status %d: unexpected payload %+v", code, got)
		}
	}
}

func TestStatusClassifierDecodesErrorOutside2xx(t *testing.T) {
	c := NewStatusClassifier[widget, apiError](nil, nil)
	for _, code := range []int{100, 199, 300, 404, 500} {
		// The body also satisfies the success schema; only the status decides.
		resp, err := c.Classify(code, []byte(`{"name":"bolt","message":"nope"}`))
		if err != nil {
			t.Fatalf("status %d: %v", code, err)
		}
		if resp.IsSuccess() {
			t.Fatalf("status %d: decoded as success", code)
		}
		got, ok := resp.Failure()
		if !ok || got.Message != "nope" {
			t.Fatalf("status %d: unexpected error payload %+v", code, got)
		}
	}
}

func TestStatusClassifierEmptyErrorObject(t *testing.T) {
	c := NewStatusClassifier[widget, emptyError](nil, nil)
	resp, err := c.Classify(404, []byte(`{}`))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if _, ok := resp.Failure(); !ok {
		t.Fatalf("expected error response")
	}
}

func TestStatusClassifierDecodeFailuresAreFatal(t *testing.T) {
	c := NewStatusClassifier[widget, apiError](nil, nil)

	cases := []struct {
		name string
		code int
		body string
	}{
		{name: "success branch", code: 200, body: `{"count":"three"}`},
		{name: "error branch", code: 500, body: `<html>oops</html>`},
		{name: "empty body", code: 200, body: ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := c.Classify(tc.code, []byte(tc.body))
			if !errors.Is(err, ErrDecoding) {
				t.Fatalf("expected ErrDecoding, got %v", err)
			}
			var decErr *DecodingError
			if !errors.As(err, &decErr) || decErr.StatusCode != tc.code {
				t.Fatalf("expected DecodingError with status %d, got %v", tc.code, err)
			}
			if resp.IsSuccess() || resp.IsError() {
				t.Fatalf("expected empty response on failure")
			}
		})
	}
}

func TestStatusClassifierStrictDecoder(t *testing.T) {
	c := NewStatusClassifier[widget, apiError](JSONDecoder{Strict: true}, nil)
	if _, err := c.Classify(200, []byte(`{"name":"bolt","extra":true}`)); !errors.Is(err, ErrDecoding) {
		t.Fatalf("expected strict decoder to reject unknown field, got %v", err)
	}
}

func TestResponseZeroValueHoldsNeither(t *testing.T) {
	var r Response[widget, apiError]
	if r.IsSuccess() || r.IsError() {
		t.Fatal("zero response must hold neither payload")
	}
}
