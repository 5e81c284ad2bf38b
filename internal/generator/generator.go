// Package generator builds random USGS-shaped feature collections for demos
// and manual testing of the analyser.
package generator

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-quake-analyser/internal/geojson"
)

const (
	maxMagnitude    = 10.0
	maxFelt         = 10000
	maxSignificance = 5000
	depthKm         = 0.1
)

type Generator struct {
	rng   *rand.Rand
	clock clockwork.Clock
}

// New returns a generator seeded with seed. A nil clock uses real time.
func New(seed uint64, clock clockwork.Clock) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		clock: clock,
	}
}

// Generate returns n features with coordinates written latitude first.
func (g *Generator) Generate(n int) geojson.FeatureCollection {
	now := g.clock.Now().UnixMilli()

	features := make([]geojson.Feature, 0, n)
	for i := 0; i < n; i++ {
		features = append(features, g.feature(now))
	}

	return geojson.FeatureCollection{
		Type: geojson.TypeFeatureCollection,
		Metadata: map[string]any{
			"generated": now,
			"title":     "Generated Earthquakes",
			"status":    200,
			"count":     n,
		},
		Features: features,
	}
}

func (g *Generator) feature(now int64) geojson.Feature {
	mag := round(g.rng.Float64()+float64(g.rng.IntN(11)), 2)
	if mag > maxMagnitude {
		mag = maxMagnitude
	}

	lat := round(float64(g.rng.IntN(181)-90)+g.rng.Float64(), 3+g.rng.IntN(4))
	lon := round(float64(g.rng.IntN(361)-180)+g.rng.Float64(), 3+g.rng.IntN(4))
	lat = math.Min(90, lat)
	lon = math.Min(180, lon)

	id, err := uuid.NewRandomFromReader(uuidSource{g.rng})
	if err != nil {
		id = uuid.New()
	}

	return geojson.Feature{
		Type: geojson.TypeFeature,
		ID:   id.String(),
		Properties: map[string]any{
			"mag":     mag,
			"time":    now - int64(g.rng.IntN(30*24*3600))*1000,
			"felt":    g.rng.IntN(maxFelt + 1),
			"sig":     1 + g.rng.IntN(maxSignificance),
			"type":    "earthquake",
			"status":  "automatic",
			"tsunami": 0,
			"magType": "ml",
		},
		Geometry: &geojson.Geometry{
			Type:        geojson.TypePoint,
			Coordinates: []any{lat, lon, depthKm},
		},
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// uuidSource feeds the seeded generator to uuid so IDs are reproducible.
type uuidSource struct {
	rng *rand.Rand
}

func (s uuidSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(s.rng.Uint32())
	}
	return len(p), nil
}
