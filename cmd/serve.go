package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dashboard/routes"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and the daily refresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sysConfigs.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	svc, cleanup, err := routes.Bootstrap(ctx, sysConfigs)
	if err != nil {
		return err
	}
	defer cleanup()

	go svc.Refresh.RunDaily(ctx, sysConfigs.Config.RefreshHour, sysConfigs.Config.RefreshMinute)

	server := &http.Server{
		Addr:              "0.0.0.0:" + sysConfigs.Config.Port,
		Handler:           routes.SetupRouter(sysConfigs, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", sysConfigs.Config.Port).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
