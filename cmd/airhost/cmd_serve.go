package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/airhost/ops/internal/api"
	"github.com/airhost/ops/internal/infrastructure/storage"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer a.close(context.Background())

		if err := a.ensureIndexes(ctx); err != nil {
			return err
		}

		sc := a.cfg.Storage
		store, err := storage.New(ctx, storage.Config{
			Driver:    sc.Driver,
			Root:      sc.LocalRoot,
			BaseURL:   sc.LocalURL,
			Bucket:    sc.S3Bucket,
			Region:    sc.S3Region,
			Key:       sc.S3Key,
			Secret:    sc.S3Secret,
			Endpoint:  sc.S3Endpoint,
			PublicURL: sc.S3URL,
		})
		if err != nil {
			return err
		}

		e := api.NewRouter(api.NewDeps(a.cfg, a.db, a.redis, store, a.log))

		errCh := make(chan error, 1)
		go func() {
			a.log.Info().Str("port", a.cfg.Port).Str("storage", sc.Driver).Msg("http server starting")
			if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}
