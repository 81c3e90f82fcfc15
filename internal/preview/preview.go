package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/samvad-recipes/internal/domain"
	"github.com/samvad-hq/samvad-recipes/internal/logger"
	"github.com/samvad-hq/samvad-recipes/pkg/httpclient"
	"github.com/samvad-hq/samvad-recipes/pkg/networking"
	"golang.org/x/time/rate"
)

// MaxPageBytes caps how much of a source page the default transport reads.
const MaxPageBytes = 1 << 20 // 1 MiB

// ErrNoSourceURL is returned for recipes without a source page.
var ErrNoSourceURL = errors.New("recipe has no source url")

// Preview is the link card shown for a recipe's source page.
type Preview struct {
	RecipeUUID  string `json:"uuid" yaml:"uuid"`
	SourceURL   string `json:"source_url" yaml:"source_url"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Service fetches source pages and extracts OG metadata, never faster than
// its limiter allows.
type Service struct {
	requester *networking.Requester
	limiter   *rate.Limiter
	log       logger.Logger
}

// NewService builds a preview service allowing ratePerSecond page fetches
// with the given burst. A nil transport selects a resty transport that stops
// reading pages after MaxPageBytes.
func NewService(transport httpclient.Transport, ratePerSecond float64, burst int, log logger.Logger) *Service {
	if transport == nil {
		transport = PageTransport()
	}
	if burst < 1 {
		burst = 1
	}
	log = logger.Ensure(log)
	return &Service{
		requester: networking.NewRequester(transport, networking.WithLogger(log)),
		limiter:   rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		log:       log,
	}
}

// PageTransport returns the default transport with the page size cap applied.
func PageTransport() httpclient.Transport {
	return httpclient.NewRestyClient(httpclient.DefaultTimeout, httpclient.WithResponseBodyLimit(MaxPageBytes))
}

// Fetch builds the preview for one recipe.
func (s *Service) Fetch(ctx context.Context, recipe domain.Recipe) (Preview, error) {
	if recipe.SourceURL == nil {
		return Preview{}, fmt.Errorf("recipe %s: %w", recipe.UUID, ErrNoSourceURL)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return Preview{}, err
	}

	source := recipe.SourceURL.String()
	resp, err := networking.Perform[[]byte, string](ctx, s.requester, pageRequest(source), pageClassifier{})
	if err != nil {
		return Preview{}, fmt.Errorf("fetch %s: %w", source, err)
	}
	if reason, failed := resp.Failure(); failed {
		return Preview{}, fmt.Errorf("fetch %s: %s", source, reason)
	}
	body, _ := resp.Success()

	meta, err := parseMeta(body)
	if err != nil {
		return Preview{}, err
	}
	return Preview{
		RecipeUUID:  recipe.UUID,
		SourceURL:   source,
		Title:       meta.Title,
		Description: meta.Description,
		ImageURL:    resolveURL(meta.ImageURL, recipe.SourceURL),
	}, nil
}

// FetchAll previews recipes in order. Recipes that fail are logged and
// skipped; the previews gathered so far are returned when ctx ends.
func (s *Service) FetchAll(ctx context.Context, recipes []domain.Recipe) []Preview {
	out := make([]Preview, 0, len(recipes))
	for _, r := range recipes {
		if ctx.Err() != nil {
			return out
		}
		p, err := s.Fetch(ctx, r)
		if err != nil {
			s.log.WarnObj("recipe preview failed", "preview_error", map[string]any{
				"uuid":  r.UUID,
				"error": err.Error(),
			})
			continue
		}
		out = append(out, p)
	}
	return out
}

func pageRequest(source string) networking.Descriptor {
	return networking.Descriptor{
		Method:  networking.GET,
		Path:    source,
		Headers: []networking.Header{{Key: "Accept", Value: "text/html,application/xhtml+xml"}},
	}
}

// pageClassifier passes 2xx bodies through untouched and reduces anything
// else to a short reason.
type pageClassifier struct{}

func (pageClassifier) Classify(statusCode int, body []byte) (networking.Response[[]byte, string], error) {
	if networking.IsSuccessStatus(statusCode) {
		return networking.SuccessResponse[[]byte, string](body), nil
	}
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 256 {
		snippet = snippet[:256]
	}
	return networking.ErrorResponse[[]byte](fmt.Sprintf("status %d: %s", statusCode, snippet)), nil
}

type pageMeta struct {
	Title       string
	Description string
	ImageURL    string
}

func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	content := func(sel string) string {
		val, _ := doc.Find(sel).First().Attr("content")
		return strings.TrimSpace(val)
	}

	return pageMeta{
		Title: firstNonEmpty(
			content(`meta[property="og:title"]`),
			content(`meta[name="twitter:title"]`),
			doc.Find("title").First().Text(),
		),
		Description: firstNonEmpty(
			content(`meta[property="og:description"]`),
			content(`meta[name="description"]`),
		),
		ImageURL: firstNonEmpty(
			content(`meta[property="og:image"]`),
			content(`meta[name="twitter:image"]`),
		),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// resolveURL makes ref absolute against base; unparsable refs are dropped.
func resolveURL(ref string, base *url.URL) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}
