package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/tripgest/internal/api"
	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/generate"
	"github.com/dgallion1/tripgest/internal/logutil"
	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("load configuration", "error", err)
		os.Exit(1)
	}
	log := logutil.New(os.Stdout, logutil.Options{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.LogAddSource,
	})
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	st, err := store.Open(cfg)
	if err != nil {
		log.Error("open trip store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	llm, err := generate.NewClient(cfg)
	if err != nil {
		log.Error("create llm client", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	planner := generate.NewPlanner(llm, generate.NewLLMStats(time.Hour), log)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, planner, st, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, planner, st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		llm.Close()
		if err := st.Close(); err != nil {
			log.Error("close trip store", "error", err)
		}
	}()

	log.Info("starting tripgest",
		"port", cfg.Port,
		"llm_provider", cfg.LLMProvider,
		"model", llm.Model(),
		"store", cfg.StoreBackend,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}
