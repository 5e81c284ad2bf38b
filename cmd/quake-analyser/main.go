package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mr1hm/go-quake-analyser/internal/cli"
	"github.com/mr1hm/go-quake-analyser/internal/config"
	"github.com/mr1hm/go-quake-analyser/internal/geojson"
	"github.com/mr1hm/go-quake-analyser/internal/logging"
	"github.com/mr1hm/go-quake-analyser/internal/quakedata"
	"github.com/mr1hm/go-quake-analyser/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	fromDB := flag.Bool("db", false, "load the latest stored snapshot instead of a GeoJSON file")
	flag.Parse()

	// A positional argument overrides DATASET_PATH.
	path := cfg.Dataset.Path
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	var features []geojson.Feature
	if *fromDB {
		db, err := repository.NewSQLiteDB(cfg.DB.Path)
		if err != nil {
			logging.Fatalf("Failed to open database: %v", err)
		}
		features, err = db.LoadLatest(context.Background())
		db.Close()
		if err != nil {
			logging.Fatalf("Failed to load snapshot: %v", err)
		}
		slog.Info("dataset loaded", "source", "sqlite", "db", cfg.DB.Path, "features", len(features))
	} else {
		fc, err := geojson.ReadFile(path)
		if err != nil {
			logging.Fatalf("Failed to read dataset: %v", err)
		}
		features = fc.Features
		slog.Info("dataset loaded", "source", "file", "path", path, "features", len(features))
	}

	qd := quakedata.New(features, quakedata.WithAxisOrder(cfg.Dataset.AxisOrder))

	session := cli.NewSession(qd, cfg.Dataset.AxisOrder, os.Stdin, os.Stdout)
	if err := session.Run(); err != nil {
		logging.Fatalf("input error: %v", err)
	}
}
