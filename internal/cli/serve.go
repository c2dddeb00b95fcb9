package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"deptsite/internal/handlers"
	"deptsite/web"
)

func newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the website",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()
			if listen != "" {
				e.cfg.Listen = listen
			}
			return serve(cmd.Context(), e)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides config (e.g. :8080)")
	return cmd
}

// serve runs the HTTP server until SIGINT/SIGTERM, then shuts down gracefully.
func serve(parent context.Context, e *env) error {
	if parent == nil {
		parent = context.Background()
	}
	app, err := handlers.NewApp(web.FS, e.cache, e.cfg.SessionIdle)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              e.cfg.Listen,
		Handler:           app.Routes(web.Static()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.StartEviction(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", e.cfg.Listen, "source", e.cfg.Source, "cache", e.cfg.Cache.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
