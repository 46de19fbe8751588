// Package main runs the six-cities interactive client: it wires
// configuration, logging, token storage, the API transport, the state
// store and the operations, then hands control to the shell.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/SixCities/internal/apitest"
	"github.com/atinyakov/SixCities/internal/client/api"
	"github.com/atinyakov/SixCities/internal/client/service"
	"github.com/atinyakov/SixCities/internal/client/state"
	"github.com/atinyakov/SixCities/internal/client/token"
	"github.com/atinyakov/SixCities/internal/config"
	"github.com/atinyakov/SixCities/internal/db"
	"github.com/atinyakov/SixCities/internal/logger"
	"github.com/atinyakov/SixCities/internal/repository"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	fmt.Printf("Six Cities client %s (%s)\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := newTokenStore(options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init token storage", zap.Error(err))
	}

	baseURL := options.BaseURL
	if options.Demo {
		srv := apitest.NewServer(apitest.SampleSeed(), zapLogger.Named("demo-api"))
		defer srv.Close()
		baseURL = srv.URL
		zapLogger.Info("serving sample API", zap.String("url", baseURL))
	}

	httpClient, err := api.NewHTTPClient(options.CAFile, time.Duration(options.Timeout))
	if err != nil {
		zapLogger.Fatal("cannot build HTTP client", zap.Error(err))
	}
	client := api.NewClient(baseURL, httpClient, tokens,
		api.WithLogger(zapLogger.Named("api")),
		api.WithRateLimit(options.RPS, 1),
	)

	store := state.NewStore(zapLogger.Named("state"))
	svc := service.New(store, client, tokens, zapLogger.Named("service"))

	// Probe the stored session once, like the app does on start.
	if res := svc.CheckAuthorization(ctx); res.OK() {
		fmt.Printf("Signed in as %s\n", res.Value.Email)
	}

	done := service.StartAutoReconcile(ctx, svc, time.Duration(options.ReconcileInterval))

	sh := newShell(svc, os.Stdin, os.Stdout)
	sh.run(ctx)

	stop()
	<-done
}

// newTokenStore returns the PostgreSQL-backed store when a DSN is
// configured and the file store otherwise.
func newTokenStore(options *config.Options, zapLogger *zap.Logger) (token.Store, error) {
	if options.TokenDSN == "" {
		zapLogger.Debug("token storage: file", zap.String("path", options.TokenFile))
		return token.NewFileStore(options.TokenFile), nil
	}
	postgresDB, err := db.InitPostgres(options.TokenDSN)
	if err != nil {
		return nil, err
	}
	zapLogger.Debug("token storage: postgres")
	return repository.NewPostgresTokenRepository(postgresDB, token.Key), nil
}
