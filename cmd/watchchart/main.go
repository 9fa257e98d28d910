package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watchchart/internal/config"
	"watchchart/internal/fetcher"
	"watchchart/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to configuration file (YAML)")
		addr       = flag.String("addr", "", "address for the web server (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	catalog := cfg.Catalog()
	log.Printf("Loaded %d identifier(s), default %q", catalog.Len(), catalog.Default())

	source := fetcher.New(cfg.AggregatorBaseURL, cfg.SegmentsPath, fetcher.WithTimeout(cfg.RequestTimeout()))
	log.Printf("Fetching watch segments from %s", source.Endpoint())

	srv := server.New(cfg.ListenAddr, source, server.Options{
		Catalog:     catalog,
		Location:    cfg.Location(),
		LiveRefresh: cfg.LiveRefresh(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("watchchart listening on %s (display timezone %s)", cfg.ListenAddr, cfg.Location())
	if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
