package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/config"
	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/hub"
	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/protocol"
	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/server"
)

var (
	servePort     string
	serveLogLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the collaboration sync server",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := config.Load()
	if servePort != "" {
		cfg.Port = servePort
	}
	if serveLogLevel != "" {
		cfg.LogLevel = config.ParseLevel(serveLogLevel)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	registry := hub.New()
	router := protocol.NewRouter(registry)
	srv := server.New(cfg, registry, router)

	if err := srv.Start(); err != nil {
		// Collaboration degrades to unavailable; the process keeps running so
		// the rest of the application is unaffected.
		slog.Error("collaboration unavailable", "port", cfg.Port, "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("sync server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
