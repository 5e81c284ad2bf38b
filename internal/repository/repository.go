package repository

import (
	"context"
	"time"

	"github.com/mr1hm/go-quake-analyser/internal/geojson"
)

// Snapshot describes one stored copy of a feed.
type Snapshot struct {
	ID           int64
	Source       string
	FeatureCount int
	CreatedAt    time.Time
}

// FeatureStore keeps raw feed features so a dataset can be re-analysed
// offline. Features come back in the order they were saved.
type FeatureStore interface {
	SaveSnapshot(ctx context.Context, source string, features []geojson.Feature) (int64, error)
	LoadSnapshot(ctx context.Context, id int64) ([]geojson.Feature, error)
	LoadLatest(ctx context.Context) ([]geojson.Feature, error)
	ListSnapshots(ctx context.Context) ([]Snapshot, error)
}
