package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"portfolio-api/config"
	"portfolio-api/migrations"
	Logger "portfolio-api/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	if migrateOnStart {
		if err := migrations.Up(cfg.MigrationURL()); err != nil {
			return err
		}
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, db)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		Logger.Log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		stop()
		a.close()
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	Logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		Logger.Log.WithError(err).Warn("server shutdown")
	}
	a.close()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	return nil
}
