package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/profile-pages/internal/http/health"
	"github.com/janisto/profile-pages/internal/http/v1/routes"
	"github.com/janisto/profile-pages/internal/platform/auth"
	"github.com/janisto/profile-pages/internal/platform/config"
	"github.com/janisto/profile-pages/internal/platform/database"
	"github.com/janisto/profile-pages/internal/platform/firebase"
	applog "github.com/janisto/profile-pages/internal/platform/logging"
	appmiddleware "github.com/janisto/profile-pages/internal/platform/middleware"
	"github.com/janisto/profile-pages/internal/platform/respond"
	"github.com/janisto/profile-pages/internal/service/cachesync"
	displayinfosvc "github.com/janisto/profile-pages/internal/service/displayinfo"
	profilesvc "github.com/janisto/profile-pages/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	apiPrefix = "/v1"
	docsPath  = "/api-docs"
)

// application is everything the router needs, built once at start-up.
type application struct {
	store    string
	origins  []string
	health   health.Checker
	services routes.Services
	closers  []func() error
}

func (a *application) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			applog.LogError(ctx, "close failed", err)
		}
	}
}

// newApplication opens the identity provider, the record stores selected by
// cfg.StoreBackend and the cache-sync coordinator.
func newApplication(ctx context.Context, cfg config.Config) (*application, error) {
	clients, err := firebase.NewClients(ctx, firebase.Options{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsFile: cfg.GoogleApplicationCredentials,
		Firestore:       cfg.StoreBackend == config.BackendFirestore,
	})
	if err != nil {
		return nil, err
	}
	app := &application{
		store:   cfg.StoreBackend,
		origins: cfg.AllowedOrigins,
		closers: []func() error{clients.Close},
	}

	var (
		profiles profilesvc.Store
		pages    displayinfosvc.Store
	)
	switch cfg.StoreBackend {
	case config.BackendFirestore:
		pageStore := displayinfosvc.NewFirestoreStore(clients.Firestore)
		profiles = profilesvc.NewFirestoreStore(clients.Firestore, pageStore.DeleteOwned)
		pages = pageStore
		app.health = func(ctx context.Context) error {
			return clients.PingFirestore(ctx, profilesvc.Collection)
		}
	default:
		db, err := database.Open(ctx, cfg.StoreBackend, cfg.DatabaseURL)
		if err != nil {
			app.close(ctx)
			return nil, err
		}
		app.closers = append(app.closers, func() error { return database.Close(db) })

		pageStore := displayinfosvc.NewSQLStore(db)
		profileStore := profilesvc.NewSQLStore(db, pageStore.DeleteOwned)
		if err := errors.Join(profileStore.Migrate(ctx), pageStore.Migrate(ctx)); err != nil {
			app.close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		profiles, pages = profileStore, pageStore
		app.health = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	coordinator := cachesync.NewFromConfig(cfg.CacheWebhook)
	app.services = routes.Services{
		Verifier:      auth.NewFirebaseVerifier(clients.Auth),
		Profiles:      profilesvc.NewEnsurer(profiles),
		ProfileEditor: profilesvc.NewManager(profiles, coordinator),
		DisplayEditor: displayinfosvc.NewManager(pages, coordinator),
	}
	return app, nil
}

// addCBORContent advertises application/cbor next to every JSON body in the
// OpenAPI document.
func addCBORContent(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
}

func newRouter(app *application) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(apiPrefix+docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(app.origins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(app.store, app.health))

	router.Route(apiPrefix, func(r chi.Router) {
		cfg := huma.DefaultConfig("Profile Pages API", Version)
		cfg.DocsPath = docsPath
		cfg.Servers = []*huma.Server{{URL: apiPrefix}}
		cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
			"bearerAuth": {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
				Description:  "Firebase ID token",
			},
		}
		api := humachi.New(r, cfg)
		addCBORContent(api)
		routes.Register(api, app.services)
	})
	return router
}

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "configuration error", err)
	}
	applog.SetProjectID(cfg.FirebaseProjectID)

	ctx := context.Background()
	app, err := newApplication(ctx, cfg)
	if err != nil {
		applog.LogFatal(ctx, "startup failed", err, zap.String("store", cfg.StoreBackend))
	}
	defer app.close(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(app),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      cfg.CacheWebhook.Timeout + 10*time.Second, // saves may wait on the cache webhook
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		app.close(ctx)
		os.Exit(1)
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}
