package networking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samvad-hq/samvad-recipes/pkg/httpclient"
)

type fakeResponse struct {
	status int
	body   []byte
}

func (r fakeResponse) Body() []byte    { return r.body }
func (r fakeResponse) StatusCode() int { return r.status }

// rawResponse has a body but no status code.
type rawResponse struct{ body []byte }

func (r *rawResponse) Body() []byte { return r.body }

type fakeTransport struct {
	calls int
	last  *httpclient.Request
	resp  httpclient.Response
	err   error
}

func (f *fakeTransport) Do(_ context.Context, req *httpclient.Request) (httpclient.Response, error) {
	f.calls++
	f.last = req
	return f.resp, f.err
}

type failingEncoder struct{ err error }

func (f failingEncoder) Encode(any) ([]byte, error) { return nil, f.err }

func TestPerformSuccess(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{status: 200, body: []byte(`{"name":"x","count":1}`)}}
	r := NewRequester(tr)

	resp, err := Perform[widget, apiError](context.Background(), r, Descriptor{Method: GET, Path: "https://example.com/w"},
		NewStatusClassifier[widget, apiError](nil, nil))
	if err != nil {
		t.Fatalf("Perform: %v", err)
	}
	got, ok := resp.Success()
	if !ok || got.Name != "x" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if tr.calls != 1 {
		t.Fatalf("expected exactly one transport call, got %d", tr.calls)
	}
	if tr.last.Method != "GET" || tr.last.Body != nil {
		t.Fatalf("unexpected request %+v", tr.last)
	}
}

func TestPerformEncodesBody(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{status: 201, body: []byte(`{}`)}}
	r := NewRequester(tr)

	d := Descriptor{
		Method:  POST,
		Path:    "https://example.com/w",
		Headers: []Header{JSONContentType},
		Body:    widget{Name: "new", Count: 2},
	}
	if _, err := Perform[widget, apiError](context.Background(), r, d, NewStatusClassifier[widget, apiError](nil, nil)); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if string(tr.last.Body) != `{"name":"new","count":2}` {
		t.Fatalf("unexpected encoded body %q", tr.last.Body)
	}
	if len(tr.last.Header) != 1 || tr.last.Header[0] != JSONContentType {
		t.Fatalf("unexpected headers %#v", tr.last.Header)
	}
}

func TestPerformEncodingFailureSendsNothing(t *testing.T) {
	cause := errors.New("cannot encode")
	tr := &fakeTransport{resp: fakeResponse{status: 200}}
	r := NewRequester(tr, WithEncoder(failingEncoder{err: cause}))

	_, err := Perform[widget, apiError](context.Background(), r, Descriptor{Method: POST, Path: "https://example.com", Body: 1},
		NewStatusClassifier[widget, apiError](nil, nil))
	if !errors.Is(err, ErrEncoding) || !errors.Is(err, cause) {
		t.Fatalf("expected encoding error wrapping cause, got %v", err)
	}
	if tr.calls != 0 {
		t.Fatalf("transport must not be called on encoding failure")
	}
}

func TestPerformInvalidURLSendsNothing(t *testing.T) {
	tr := &fakeTransport{}
	_, err := Perform[widget, apiError](context.Background(), NewRequester(tr), Descriptor{Method: GET, Path: "::bad"},
		NewStatusClassifier[widget, apiError](nil, nil))
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	if tr.calls != 0 {
		t.Fatalf("transport must not be called for invalid url")
	}
}

func TestPerformPropagatesTransportErrorUnchanged(t *testing.T) {
	cause := errors.New("network is unreachable")
	tr := &fakeTransport{err: cause}

	_, err := Perform[widget, apiError](context.Background(), NewRequester(tr), Descriptor{Method: GET, Path: "https://example.com"},
		NewStatusClassifier[widget, apiError](nil, nil))
	if err != cause {
		t.Fatalf("expected transport error verbatim, got %v", err)
	}
	if tr.calls != 1 {
		t.Fatalf("expected no retry, got %d calls", tr.calls)
	}
}

func TestPerformNonHTTPResponse(t *testing.T) {
	raw := &rawResponse{body: []byte("ftp data")}
	tr := &fakeTransport{resp: raw}

	_, err := Perform[widget, apiError](context.Background(), NewRequester(tr), Descriptor{Method: GET, Path: "https://example.com"},
		NewStatusClassifier[widget, apiError](nil, nil))
	if !errors.Is(err, ErrNonHTTPResponse) {
		t.Fatalf("expected ErrNonHTTPResponse, got %v", err)
	}
	var nonHTTP *NonHTTPResponseError
	if !errors.As(err, &nonHTTP) || nonHTTP.Response != raw {
		t.Fatalf("expected raw response to be carried, got %v", err)
	}
}

func TestPerformErrorResponseOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	r := NewRequester(httpclient.NewRestyClient(2 * time.Second))
	resp, err := Perform[widget, emptyError](context.Background(), r, Descriptor{Method: GET, Path: srv.URL},
		NewStatusClassifier[widget, emptyError](nil, nil))
	if err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if !resp.IsError() {
		t.Fatalf("expected error response for 404")
	}
}

func TestPerformRequiresClassifier(t *testing.T) {
	_, err := Perform[widget, apiError](context.Background(), NewRequester(&fakeTransport{}),
		Descriptor{Method: GET, Path: "https://example.com"}, nil)
	if err == nil {
		t.Fatal("expected error for nil classifier")
	}
}
