package main

import (
	"flag"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/mr1hm/go-quake-analyser/internal/config"
	"github.com/mr1hm/go-quake-analyser/internal/generator"
	"github.com/mr1hm/go-quake-analyser/internal/geojson"
	"github.com/mr1hm/go-quake-analyser/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	count := flag.Int("n", cfg.Generator.Count, "number of features to generate")
	out := flag.String("out", cfg.Generator.Output, "output GeoJSON file")
	seed := flag.Uint64("seed", cfg.Generator.Seed, "random seed")
	flag.Parse()

	fc := generator.New(*seed, nil).Generate(*count)
	if err := geojson.WriteFile(*out, fc); err != nil {
		logging.Fatalf("Failed to write %s: %v", *out, err)
	}

	slog.Info("sample dataset written", "path", *out, "features", *count, "seed", *seed)
}
