package generator

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-quake-analyser/internal/quakedata"
)

var fixedNow = time.Date(2024, time.May, 9, 2, 21, 52, 0, time.UTC)

func TestGenerate_ShapeAndRanges(t *testing.T) {
	g := New(7, clockwork.NewFakeClockAt(fixedNow))
	fc := g.Generate(500)

	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Equal(t, fixedNow.UnixMilli(), fc.Metadata["generated"])
	require.Len(t, fc.Features, 500)

	for _, f := range fc.Features {
		mag := f.Properties["mag"].(float64)
		assert.GreaterOrEqual(t, mag, 0.0)
		assert.LessOrEqual(t, mag, 10.0)

		felt := f.Properties["felt"].(int)
		assert.GreaterOrEqual(t, felt, 0)
		assert.LessOrEqual(t, felt, 10000)

		sig := f.Properties["sig"].(int)
		assert.GreaterOrEqual(t, sig, 1)
		assert.LessOrEqual(t, sig, 5000)

		ts := f.Properties["time"].(int64)
		assert.LessOrEqual(t, ts, fixedNow.UnixMilli())

		coords := f.Geometry.Coordinates.([]any)
		require.Len(t, coords, 3)
		lat, lon := coords[0].(float64), coords[1].(float64)
		assert.True(t, lat >= -90 && lat <= 90, "lat %v", lat)
		assert.True(t, lon >= -180 && lon <= 180, "lon %v", lon)
		assert.NotEmpty(t, f.ID)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fixedNow)

	a := New(42, clock).Generate(20)
	b := New(42, clock).Generate(20)
	assert.Equal(t, a, b)

	c := New(43, clock).Generate(20)
	assert.NotEqual(t, a.Features[0].ID, c.Features[0].ID)
}

func TestGenerate_AllFeaturesValidate(t *testing.T) {
	fc := New(1, clockwork.NewFakeClockAt(fixedNow)).Generate(200)

	qd := quakedata.New(fc.Features)
	assert.Equal(t, 200, qd.Len())
	assert.Equal(t, 0, qd.Rejected())
}
