package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mr1hm/go-quake-analyser/internal/geojson"
)

// Fetcher downloads a USGS GeoJSON summary feed once. It does not poll.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (geojson.FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return geojson.FeatureCollection{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return geojson.FeatureCollection{}, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geojson.FeatureCollection{}, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	fc, err := geojson.Decode(resp.Body)
	if err != nil {
		return geojson.FeatureCollection{}, fmt.Errorf("error decoding resp.Body: %w", err)
	}
	if fc.Type != geojson.TypeFeatureCollection {
		return geojson.FeatureCollection{}, fmt.Errorf("unexpected document type: %q", fc.Type)
	}

	slog.Info("feed fetched", "url", url, "features", len(fc.Features), "duration", time.Since(start))
	return fc, nil
}

// Close releases idle keep-alive connections.
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
}
