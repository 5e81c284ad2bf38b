package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mr1hm/go-quake-analyser/internal/config"
	"github.com/mr1hm/go-quake-analyser/internal/geojson"
	"github.com/mr1hm/go-quake-analyser/internal/ingestion"
	"github.com/mr1hm/go-quake-analyser/internal/logging"
	"github.com/mr1hm/go-quake-analyser/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	url := flag.String("url", cfg.Sources.USGSURL, "GeoJSON feed to download")
	out := flag.String("out", "", "also write the feed to this GeoJSON file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, *url, *out)
	stop()
	if err != nil {
		logging.Fatalf("%v", err)
	}
}

// run fetches url, optionally mirrors it to out, and stores a snapshot.
// Resources are released before it returns.
func run(ctx context.Context, cfg *config.Config, url, out string) error {
	fetcher := ingestion.NewFetcher(cfg.Sources.USGSTimeout)
	defer fetcher.Close()

	fc, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	if out != "" {
		if err := geojson.WriteFile(out, fc); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		slog.Info("feed written", "path", out)
	}

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveSnapshot(ctx, url, fc.Features)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	slog.Info("snapshot saved", "id", id, "features", len(fc.Features), "db", cfg.DB.Path)
	return nil
}
