package publishers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-recipes/internal/logger"
	"github.com/samvad-hq/samvad-recipes/pkg/httpclient"
	"github.com/samvad-hq/samvad-recipes/pkg/networking"
)

type httpPublisher struct {
	id         string
	descriptor networking.Descriptor
	requester  *networking.Requester
	log        logger.Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}
	method, err := networking.ParseMethod(cfg.HTTP.Method)
	if err != nil {
		return nil, fmt.Errorf("publisher %q: %w", cfg.ID, err)
	}

	transport := httpclient.NewRestyClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)
	return &httpPublisher{
		id: cfg.ID,
		descriptor: networking.Descriptor{
			Method:  method,
			Path:    cfg.HTTP.URL,
			Headers: sortedHeaders(cfg.HTTP.Headers),
		},
		requester: networking.NewRequester(transport, networking.WithLogger(log)),
		log:       logger.Ensure(log),
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return TypeHTTP }

func (h *httpPublisher) Publish(ctx context.Context, evt CatalogEvent) error {
	d := h.descriptor
	d.Body = evt

	resp, err := networking.Perform[struct{}, string](ctx, h.requester, d, deliveryClassifier{})
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if reason, failed := resp.Failure(); failed {
		return fmt.Errorf("http response %s", reason)
	}
	h.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id": h.id,
		"event_id":     evt.ID,
	})
	return nil
}

// deliveryClassifier only looks at the status code; sink replies are not decoded.
type deliveryClassifier struct{}

func (deliveryClassifier) Classify(statusCode int, body []byte) (networking.Response[struct{}, string], error) {
	if networking.IsSuccessStatus(statusCode) {
		return networking.SuccessResponse[struct{}, string](struct{}{}), nil
	}
	return networking.ErrorResponse[struct{}](fmt.Sprintf("status %d: %s", statusCode, bodySnippet(body))), nil
}

func bodySnippet(body []byte) string {
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}

// sortedHeaders fixes header order so requests are reproducible, then adds
// the JSON content type unless the config overrides it.
func sortedHeaders(headers map[string]string) []networking.Header {
	keys := make([]string, 0, len(headers))
	hasContentType := false
	for k := range headers {
		keys = append(keys, k)
		if strings.EqualFold(k, "Content-Type") {
			hasContentType = true
		}
	}
	sort.Strings(keys)

	out := make([]networking.Header, 0, len(keys)+1)
	if !hasContentType {
		out = append(out, networking.JSONContentType)
	}
	for _, k := range keys {
		out = append(out, networking.Header{Key: k, Value: headers[k]})
	}
	return out
}
