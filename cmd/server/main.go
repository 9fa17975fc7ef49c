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

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/eduforge/internal/completion"
	"github.com/tensorplex-labs/eduforge/internal/config"
	"github.com/tensorplex-labs/eduforge/internal/generator"
	"github.com/tensorplex-labs/eduforge/internal/server"
	"github.com/tensorplex-labs/eduforge/internal/store"
	"github.com/tensorplex-labs/eduforge/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

// openStore is swapped in tests to observe the store lifecycle.
var openStore = store.New

func main() {
	logger.Init()
	log.Info().Msg("Starting eduforge server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails. Setup errors are returned
// so deferred cleanup still runs.
func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load environment configuration: %w", err)
	}
	if cfg.OpenrouterAPIKey == "" {
		log.Warn().Msg("OPENROUTER_API_KEY is not set; generation requests will fail until it is")
	}

	client, err := completion.NewClient(&cfg.CompletionEnvConfig)
	if err != nil {
		return fmt.Errorf("init completion client: %w", err)
	}
	gen := generator.New(client, cfg.MaxRetries)

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("init content store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close content store")
		}
	}()

	srv, err := server.NewServer(&cfg.ServerEnvConfig, gen, st)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.Address()).Msg("listening")
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, stopping server")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
