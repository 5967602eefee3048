package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm/registry"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/backends"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/config"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/handler"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/router"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/pkg/logger"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "llmpanel-server",
	Short: "Dashboard backend for driving local LLM backends",
	Long: `llmpanel-server is the HTTP backend of the local LLM dashboard. It proxies
an AnythingLLM-style RAG server and an Ollama-style inference daemon, serves
the method catalog, and performs generic invocation for the browser UI.`,
	Version: version,
	Run:     runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (default configs/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	slog.Info("llmpanel server starting...",
		"version", version,
		"config", cfgFile,
	)

	// Route Hertz's own logging through slog
	hlog.SetLogger(logger.NewHertzSlogAdapter(slog.Default()))
	if cfg.Server.Mode == "debug" {
		hlog.SetLevel(hlog.LevelDebug)
	} else {
		hlog.SetLevel(hlog.LevelInfo)
	}

	// Registry/client drift is a startup failure, never skipped.
	if err := registry.Validate(); err != nil {
		slog.Error("method registry validation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("method registry validated", "operations", registry.Len())

	store, err := backends.NewStore(backends.Settings{
		AnythingLLM: anythingllm.Config{
			Host:   cfg.Backends.AnythingLLM.Host,
			Port:   cfg.Backends.AnythingLLM.Port,
			APIKey: cfg.Backends.AnythingLLM.APIKey,
		},
		OllamaURL:   cfg.Backends.Ollama.BaseURL,
		OllamaModel: cfg.Backends.Ollama.Model,
	})
	if err != nil {
		slog.Error("failed to build backend clients", "error", err)
		os.Exit(1)
	}

	// Connectivity is reported, not required: the dashboard starts even
	// when a backend is down and the UI renders the probe state.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if status := store.RAG().ValidateConnection(ctx); !status.Authenticated {
		slog.Warn("RAG backend not authenticated yet", "error", status.Error)
	}
	if err := store.Ollama().Ping(ctx); err != nil {
		slog.Warn("ollama daemon not reachable yet", "error", err)
	}
	cancel()

	healthHandler := handler.NewHealthHandler(store)
	settingsHandler := handler.NewSettingsHandler(store)
	workspaceHandler := handler.NewWorkspaceHandler(store)
	systemHandler := handler.NewSystemHandler(store)
	ollamaHandler := handler.NewOllamaHandler(store)
	catalogHandler := handler.NewCatalogHandler(store)

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
		server.WithTransport(netpoll.NewTransporter),
	)

	router.Setup(h, healthHandler, settingsHandler, workspaceHandler, systemHandler, ollamaHandler, catalogHandler)

	slog.Info("server started successfully",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
	)

	go func() {
		if err := h.Run(); err != nil {
			slog.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := h.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
