package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sumanurawat/phoenix-sub003/internal/api"
	"github.com/sumanurawat/phoenix-sub003/internal/app"
	"github.com/sumanurawat/phoenix-sub003/internal/config"
	"github.com/sumanurawat/phoenix-sub003/internal/db"
	"github.com/sumanurawat/phoenix-sub003/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "contactd",
		Short:         "Contact form submission service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default ./config.yaml if present)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), cfgFile)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the PostgreSQL schema",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context(), cfgFile)
			},
		},
	)
	return root
}

func serve(ctx context.Context, cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	/* ---------- core ---------- */
	a := &app.App{}
	if err := a.Init(ctx, cfg); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	log := a.Logger()

	/* ---------- HTTP layer ---------- */
	a.SetWebRouter(api.SetupRouter(a))

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()

	/* ---------- graceful shutdown ---------- */
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case sig := <-quit:
		log.Info("shutdown", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		log.Error("server stopped", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := a.Close(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func migrate(ctx context.Context, cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cfg.StorageDriver != "postgres" {
		return fmt.Errorf("migrate needs storage.driver=postgres, have %q", cfg.StorageDriver)
	}

	log, err := app.NewLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	conn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		log.Error("migrate", zap.Error(err))
		return err
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn); err != nil {
		log.Error("migrate", zap.Error(err))
		return err
	}
	log.Info("schema ready",
		zap.String("collection", storage.Collection),
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))
	return nil
}
