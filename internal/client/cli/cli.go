// Package cli implements the procure terminal client commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	httpClient "github.com/iudanet/procure/internal/client/api"
	"github.com/iudanet/procure/internal/client/auth"
	"github.com/iudanet/procure/internal/client/cache"
	"github.com/iudanet/procure/internal/client/config"
	"github.com/iudanet/procure/internal/client/dashboard"
	"github.com/iudanet/procure/internal/client/storage/boltdb"
	"github.com/iudanet/procure/internal/client/storage/cookiejar"
	"github.com/iudanet/procure/internal/validation"
)

// App собирает зависимости клиента на время одной команды
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Bolt     *boltdb.Storage
	Tokens   *auth.TokenStore
	Session  *auth.Session
	API      *httpClient.Client
	Store    *cache.Store
	Dash     *dashboard.Dashboard
	Validate *validation.Validator
}

// newApp wires storage, API client, session and cache per the root
// flags. The caller owns Close.
func newApp(cmd *cobra.Command) (*App, error) {
	flags := cmd.Root().PersistentFlags()

	cfgPath, _ := flags.GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	// Флаги командной строки сильнее файла и окружения
	if server, _ := flags.GetString("server"); server != "" {
		cfg.ServerURL = server
	}
	if db, _ := flags.GetString("db"); db != "" {
		cfg.DatabasePath = db
	}
	if jar, _ := flags.GetString("cookie-jar"); jar != "" {
		cfg.CookieJarPath = jar
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	bolt, err := boltdb.New(cmd.Context(), cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	jar := cookiejar.New(cfg.CookieJarPath, cfg.CookieDomain)
	tokens := auth.NewTokenStore(bolt, jar, logger)

	client := httpClient.NewClient(cfg.ServerURL,
		httpClient.WithTokenSource(tokens),
		httpClient.WithTimeout(cfg.HTTPTimeout),
		httpClient.WithLogger(logger))

	session := auth.NewSession(client, tokens, &routeLogger{logger: logger}, logger)

	store := cache.New(
		cache.WithStaleAfter(cfg.Cache.StaleAfter),
		cache.WithEvictAfter(cfg.Cache.EvictAfter),
		cache.WithLogger(logger))

	validate, err := validation.New()
	if err != nil {
		store.Close()
		_ = bolt.Close()
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Bolt:     bolt,
		Tokens:   tokens,
		Session:  session,
		API:      client,
		Store:    store,
		Dash:     dashboard.New(store, client, validate, logger),
		Validate: validate,
	}, nil
}

// Close releases the cache janitor and the database
func (a *App) Close() {
	a.Store.Close()
	if err := a.Bolt.Close(); err != nil {
		a.Logger.Error("failed to close database", "error", err)
	}
}

// requireAuth validates the stored session before a dashboard command
func (a *App) requireAuth(ctx context.Context) error {
	if a.Session.CheckAuth(ctx) != auth.StateAuthenticated {
		return fmt.Errorf("not authenticated. Please run 'procure login' first")
	}
	return nil
}

// routeLogger implements auth.Navigator for the terminal client, where
// a navigation side effect is just a log line
type routeLogger struct {
	logger *slog.Logger
}

func (r *routeLogger) NavigateTo(route string) {
	r.logger.Debug("navigate", "route", route)
}
