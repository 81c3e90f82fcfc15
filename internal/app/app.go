package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/samvad-hq/samvad-recipes/internal/api"
	"github.com/samvad-hq/samvad-recipes/internal/config"
	"github.com/samvad-hq/samvad-recipes/internal/domain"
	"github.com/samvad-hq/samvad-recipes/internal/logger"
	"github.com/samvad-hq/samvad-recipes/internal/preview"
	"github.com/samvad-hq/samvad-recipes/internal/recipes"
	"github.com/samvad-hq/samvad-recipes/internal/usecase"
	"github.com/samvad-hq/samvad-recipes/pkg/httpclient"
	"github.com/samvad-hq/samvad-recipes/pkg/networking"
	"github.com/samvad-hq/samvad-recipes/pkg/publishers"
)

const (
	shutdownTimeout       = 10 * time.Second
	defaultPublishTimeout = 30 * time.Second
)

// App wires the catalog pipeline, publishers and previews for the binaries.
type App struct {
	cfg      *config.Config
	log      logger.Logger
	fetch    *usecase.FetchRecipes
	refresh  *usecase.RefreshRecipes
	previews *preview.Service
	fanout   *publishers.Fanout

	publishTimeout time.Duration
	background     sync.WaitGroup
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	transport      httpclient.Transport
	registry       *publishers.Registry
	publishTimeout time.Duration
}

// WithTransport replaces the default HTTP transport.
func WithTransport(t httpclient.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithPublisherRegistry replaces the default publisher builders.
func WithPublisherRegistry(r *publishers.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithPublishTimeout bounds every catalog publish.
func WithPublishTimeout(d time.Duration) Option {
	return func(o *options) { o.publishTimeout = d }
}

// New builds the runtime from config. A zero WatchInterval is derived from
// WatchIntervalSeconds.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	cfg = withDerivedInterval(cfg)
	if ctx == nil {
		ctx = context.Background()
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	pageTransport := o.transport
	if pageTransport == nil {
		pageTransport = preview.PageTransport()
	}
	if o.transport == nil {
		o.transport = httpclient.DefaultTransport()
	}
	if o.registry == nil {
		o.registry = publishers.DefaultRegistry()
	}
	if o.publishTimeout <= 0 {
		o.publishTimeout = defaultPublishTimeout
	}

	requester := networking.NewRequester(o.transport, networking.WithLogger(log))
	fetcher := recipes.NewNetworkRequester(requester, cfg.RecipesURL, nil, log)
	repo := recipes.NewRepository(fetcher, recipes.NewMapper(), log)

	fanout, err := buildFanout(ctx, cfg, o.registry, log)
	if err != nil {
		return nil, err
	}

	log.InfoObj("recipes app initialized", "app_meta", map[string]any{
		"recipes_url":      cfg.RecipesURL,
		"publishers_count": fanout.Size(),
	})

	return &App{
		cfg:      cfg,
		log:      log,
		fetch:    usecase.NewFetchRecipes(repo, log),
		refresh:  usecase.NewRefreshRecipes(repo, log),
		previews: preview.NewService(pageTransport, cfg.PreviewRatePerSecond, cfg.PreviewBurst, log),
		fanout:   fanout,

		publishTimeout: o.publishTimeout,
	}, nil
}

func withDerivedInterval(cfg *config.Config) *config.Config {
	if cfg.WatchInterval > 0 || cfg.WatchIntervalSeconds <= 0 {
		return cfg
	}
	c := *cfg
	c.WatchInterval = time.Duration(c.WatchIntervalSeconds) * time.Second
	return &c
}

func buildFanout(ctx context.Context, cfg *config.Config, reg *publishers.Registry, log logger.Logger) (*publishers.Fanout, error) {
	if cfg.PublishersFile == "" {
		return publishers.NewFanout(nil), nil
	}

	cfgs, err := publishers.LoadConfigs(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers: %w", err)
	}
	enabled := publishers.Enabled(cfgs)

	pubs, err := reg.BuildAll(ctx, enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("publishers loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Fetch returns the catalog, from cache when one is held.
func (a *App) Fetch(ctx context.Context) ([]domain.Recipe, error) {
	return a.fetch.Fetch(ctx)
}

// Refresh reloads the catalog from the network.
func (a *App) Refresh(ctx context.Context) ([]domain.Recipe, error) {
	return a.refresh.Refresh(ctx)
}

// Preview builds link previews for the given recipe ids, or for every recipe
// when ids is empty.
func (a *App) Preview(ctx context.Context, ids ...string) ([]preview.Preview, error) {
	all, err := a.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return a.previews.FetchAll(ctx, all), nil
	}

	selected := make([]domain.Recipe, 0, len(ids))
	for _, id := range ids {
		r, ok := domain.FindByID(all, id)
		if !ok {
			return nil, fmt.Errorf("recipe %q not found", id)
		}
		selected = append(selected, r)
	}
	return a.previews.FetchAll(ctx, selected), nil
}

// Publish sends a catalog event to every configured sink, giving up after
// the publish timeout.
func (a *App) Publish(ctx context.Context, trigger string, list []domain.Recipe) error {
	if a.fanout.Size() == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.publishTimeout)
	defer cancel()
	evt := publishers.NewCatalogEvent(a.cfg.RecipesURL, trigger, list)
	sent, err := a.fanout.Publish(ctx, evt)
	a.log.InfoObj("catalog published", "publish_meta", map[string]any{
		"event_id":     evt.ID,
		"trigger":      trigger,
		"recipes":      evt.RecipeCount,
		"delivered_to": sent,
		"publishers":   a.fanout.Size(),
	})
	return err
}

// Watch refreshes the catalog every watch interval and publishes each
// fresh batch until ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	if a == nil || a.refresh == nil {
		return fmt.Errorf("app is not initialized")
	}
	if a.cfg.WatchInterval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", a.cfg.WatchInterval)
	}

	a.log.InfoObj("watch loop starting", "watch_state", map[string]any{
		"publishers_count": a.fanout.Size(),
		"watch_interval":   a.cfg.WatchInterval.String(),
	})

	if err := a.runOnce(ctx); err != nil {
		a.log.ErrorObj("initial refresh failed", "error", err.Error())
	}

	ticker := time.NewTicker(a.cfg.WatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.InfoObj("watch loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := a.runOnce(ctx); err != nil {
				a.log.ErrorObj("scheduled refresh failed", "error", err.Error())
			}
		}
	}
}

func (a *App) runOnce(ctx context.Context) error {
	start := time.Now()
	list, err := a.Refresh(ctx)
	if err != nil {
		return err
	}
	if err := a.Publish(ctx, publishers.TriggerWatch, list); err != nil {
		return fmt.Errorf("publish catalog: %w", err)
	}
	a.log.InfoObj("refresh completed", "refresh_meta", map[string]any{
		"recipes":    len(list),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// Handler returns the HTTP API bound to this app.
func (a *App) Handler() http.Handler {
	return api.NewRouter(api.Deps{
		Fetcher:   a.fetch,
		Refresher: a.refresh,
		Previewer: a.previews,
		OnRefresh: a.publishInBackground,
		Log:       a.log,
	})
}

// publishInBackground publishes an API-triggered refresh without holding the
// request open. Close waits for these publishes.
func (a *App) publishInBackground(ctx context.Context, list []domain.Recipe) {
	if a.fanout.Size() == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	a.background.Add(1)
	go func() {
		defer a.background.Done()
		if err := a.Publish(ctx, publishers.TriggerAPI, list); err != nil {
			a.log.ErrorObj("publish after api refresh failed", "error", err.Error())
		}
	}()
}

// Serve runs the HTTP API on the configured address until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.InfoObj("http api listening", "listen_addr", a.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http api shutdown: %w", err)
	}
	a.log.InfoObj("http api stopped", "listen_addr", a.cfg.ListenAddr)
	return nil
}

// Close waits for background publishes, then releases publisher connections.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	a.background.Wait()
	return a.fanout.Close()
}
