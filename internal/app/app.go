// Package app wires the application together: catalog, sessions, HTTP
// server, health probes, and graceful shutdown.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/menucart/internal/api"
	"github.com/xenking/menucart/internal/cartmetrics"
	"github.com/xenking/menucart/internal/docstore"
	"github.com/xenking/menucart/internal/domain/cart"
	"github.com/xenking/menucart/internal/domain/order"
	"github.com/xenking/menucart/internal/menu"
	"github.com/xenking/menucart/internal/promo"
	"github.com/xenking/menucart/internal/session"
	"github.com/xenking/menucart/pkg/health"
	"github.com/xenking/menucart/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	provider, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	lg.Info("Catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.Int("items", provider.Len()),
	)

	documents, err := docstore.NewFS(cfg.OrdersDir)
	if err != nil {
		return errors.Wrap(err, "create document store")
	}

	metrics, err := cartmetrics.New(m.MeterProvider().Meter("menucart"), lg)
	if err != nil {
		return errors.Wrap(err, "create metrics")
	}

	handoff := order.Handoff{
		Endpoint:        "https://wa.me/" + cfg.WhatsAppNumber,
		DocumentBaseURL: cfg.DocumentBaseURL,
	}
	sessions := session.NewManager(cfg.SessionTTL, func(store *cart.Store) *order.Workflow {
		store.Subscribe(metrics.CartObserver())
		return order.NewWorkflow(store, documents, handoff, lg.Named("workflow"))
	}, lg.Named("sessions"))

	rotator := promo.NewRotator(promo.DefaultOffers, cfg.PromoInterval)

	healthSvc := health.New()
	healthSvc.AddReadinessCheck("catalog", time.Second, func(context.Context) error {
		if provider.Len() == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	})
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	h := api.NewHandler(provider, sessions, rotator, metrics)

	mux := chi.NewRouter()
	mux.Get("/livez", healthSvc.LiveEndpoint)
	mux.Get("/readyz", healthSvc.ReadyEndpoint)
	mux.Mount("/api", h.Routes())
	// Generated order documents are served back under the same base URL the
	// handoff message references.
	mux.Handle("/orders/*", http.StripPrefix("/orders/",
		http.FileServer(http.Dir(cfg.OrdersDir))))

	handler := httpmiddleware.Wrap(mux,
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowOrigins: cfg.CORS.Origins,
			AllowHeaders: []string{"Content-Type"},
		}),
		httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.LogRequests(),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(handler, "menucart",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sessions.Run(ctx)
	})
	g.Go(func() error {
		return rotator.Run(ctx)
	})
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		return nil
	})
	return g.Wait()
}

// loadCatalog reads the catalog file when a path is configured, otherwise it
// falls back to the embedded menu.
func loadCatalog(path string) (*menu.Static, error) {
	if path == "" {
		return menu.Default()
	}
	return menu.Load(path)
}
