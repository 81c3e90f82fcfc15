package publishers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samvad-hq/samvad-recipes/internal/domain"
)

func TestHTTPPublisherSuccess(t *testing.T) {
	var got CatalogEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if h := r.Header.Get("X-Test"); h != "1" {
			t.Errorf("missing header, got %q", h)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	pub, err := newHTTPPublisher(context.Background(), PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{
			URL:            srv.URL,
			Method:         http.MethodPut,
			Headers:        map[string]string{"X-Test": "1"},
			TimeoutSeconds: 2,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	evt := NewCatalogEvent("https://example.com/recipes.json", TriggerRefresh, []domain.Recipe{
		{Cuisine: "Italian", Name: "Pizza", UUID: "1"},
	})
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got.ID != evt.ID || got.RecipeCount != 1 || got.Trigger != TriggerRefresh {
		t.Fatalf("server received %+v", got)
	}
}

func TestHTTPPublisherErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	pub, err := newHTTPPublisher(context.Background(), PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{URL: srv.URL, Method: http.MethodPost, TimeoutSeconds: 1},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	err = pub.Publish(context.Background(), CatalogEvent{})
	if err == nil || !strings.Contains(err.Error(), "status 400") || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected status error with body snippet, got %v", err)
	}
}

func TestHTTPPublisherRejectsUnknownMethod(t *testing.T) {
	_, err := newHTTPPublisher(context.Background(), PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{URL: "https://example.com", Method: "PATCH"},
	}, nil)
	if err == nil {
		t.Fatal("expected error for unsupported method")
	}
}

func TestSortedHeadersKeepsExplicitContentType(t *testing.T) {
	headers := sortedHeaders(map[string]string{"b": "2", "content-type": "text/plain", "a": "1"})
	if len(headers) != 3 {
		t.Fatalf("unexpected headers %+v", headers)
	}
	if headers[0].Key != "a" || headers[1].Key != "b" || headers[2].Value != "text/plain" {
		t.Fatalf("headers not sorted: %+v", headers)
	}
}
