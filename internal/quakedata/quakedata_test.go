package quakedata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-quake-analyser/internal/geojson"
	"github.com/mr1hm/go-quake-analyser/internal/models"
)

func feature(mag, felt, sig float64, x, y float64) geojson.Feature {
	return geojson.Feature{
		Type: geojson.TypeFeature,
		Properties: map[string]any{
			"mag":  mag,
			"time": 1715221312431.0,
			"felt": felt,
			"sig":  sig,
			"type": "earthquake",
		},
		Geometry: &geojson.Geometry{
			Type:        geojson.TypePoint,
			Coordinates: []any{x, y, 0.1},
		},
	}
}

func mags(quakes []models.Quake) []float64 {
	out := make([]float64, len(quakes))
	for i, q := range quakes {
		out[i] = q.Mag()
	}
	return out
}

func TestNew_SkipsNullFelt(t *testing.T) {
	bad := feature(4.0, 0, 10, 1, 1)
	bad.Properties["felt"] = nil

	qd := New([]geojson.Feature{
		feature(3.0, 1, 10, 1, 1),
		bad,
		feature(5.0, 1, 10, 1, 1),
	})

	assert.Equal(t, 2, qd.Len())
	assert.Equal(t, 1, qd.Rejected())
	assert.Equal(t, []float64{3.0, 5.0}, mags(qd.Quakes()))
}

func TestNew_CountMatchesValidation(t *testing.T) {
	notFeature := feature(1, 1, 1, 0, 0)
	notFeature.Type = "Point"

	missingType := feature(1, 1, 1, 0, 0)
	delete(missingType.Properties, "type")

	notPoint := feature(1, 1, 1, 0, 0)
	notPoint.Geometry.Type = "LineString"

	twoCoords := feature(1, 1, 1, 0, 0)
	twoCoords.Geometry.Coordinates = []any{1.0, 2.0}

	textCoord := feature(1, 1, 1, 0, 0)
	textCoord.Geometry.Coordinates = []any{1.0, "2.0", 0.0}

	input := []geojson.Feature{
		feature(1, 1, 1, 0, 0),
		notFeature,
		missingType,
		notPoint,
		feature(2, 1, 1, 0, 0),
		twoCoords,
		textCoord,
	}

	qd := New(input)
	assert.Equal(t, 2, qd.Len())
	assert.Equal(t, len(input)-5, qd.Len())
	assert.Equal(t, 5, qd.Rejected())
}

func TestNew_AxisOrder(t *testing.T) {
	features := []geojson.Feature{feature(1, 1, 1, 10.0, 20.0)}

	latlon := New(features).Quakes()[0]
	assert.Equal(t, 10.0, latlon.Latitude())
	assert.Equal(t, 20.0, latlon.Longitude())

	lonlat := New(features, WithAxisOrder(models.AxisLonLat)).Quakes()[0]
	assert.Equal(t, 20.0, lonlat.Latitude())
	assert.Equal(t, 10.0, lonlat.Longitude())
}

func TestQuakes_ReturnsCopy(t *testing.T) {
	qd := New([]geojson.Feature{feature(1, 1, 1, 0, 0), feature(2, 1, 1, 0, 0)})

	got := qd.Quakes()
	got[0] = models.NewQuake(9, 0, 0, 0, "x", 0, 0)

	assert.Equal(t, []float64{1, 2}, mags(qd.Quakes()))
}

func TestSetPropertyFilter_MinMagnitude(t *testing.T) {
	qd := New([]geojson.Feature{
		feature(3.0, 0, 0, 0, 0),
		feature(5.0, 0, 0, 0, 0),
		feature(6.2, 0, 0, 0, 0),
	})

	require.NoError(t, qd.SetPropertyFilter(5.0, 0, 0))
	assert.Equal(t, []float64{5.0, 6.2}, mags(qd.FilteredView()))
}

func TestSetPropertyFilter_FeltAndSignificance(t *testing.T) {
	qd := New([]geojson.Feature{
		feature(1.0, 10, 100, 0, 0),
		feature(2.0, 5, 900, 0, 0),
		feature(3.0, 50, 50, 0, 0),
		feature(4.0, 50, 500, 0, 0),
	})

	require.NoError(t, qd.SetPropertyFilter(0, 10, 100))
	assert.Equal(t, []float64{1.0, 4.0}, mags(qd.FilteredView()))
}

func TestSetPropertyFilter_RejectsNoOp(t *testing.T) {
	qd := New([]geojson.Feature{feature(3.0, 0, 0, 0, 0)})
	require.NoError(t, qd.SetPropertyFilter(2.5, 1, 1))

	err := qd.SetPropertyFilter(0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, PropertyFilter{MinMagnitude: 2.5, MinFelt: 1, MinSignificance: 1}, qd.Filters().Property)
}

func TestLocationFilter_AtLeastDistance(t *testing.T) {
	qd := New([]geojson.Feature{
		feature(1, 0, 0, 0, 0),  // 0 km from origin
		feature(2, 0, 0, 0, 1),  // ~111 km
		feature(3, 0, 0, 0, 10), // ~1112 km
	})

	qd.SetLocationFilter(0, 0, 500)
	assert.Equal(t, []float64{3}, mags(qd.FilteredView()))

	qd.SetLocationFilter(0, 0, 100)
	assert.Equal(t, []float64{2, 3}, mags(qd.FilteredView()))
}

func TestLocationFilter_OwnCoordinatesZeroDistance(t *testing.T) {
	qd := New([]geojson.Feature{feature(4.2, 0, 0, 35.5, 139.7)})

	qd.SetLocationFilter(35.5, 139.7, 0)
	view := qd.FilteredView()
	require.Len(t, view, 1)
	assert.Equal(t, 0.0, view[0].DistanceTo(35.5, 139.7))
}

func TestClearFilters_RestoresFullCollection(t *testing.T) {
	qd := New([]geojson.Feature{
		feature(3.0, 1, 1, 0, 0),
		feature(6.0, 1, 1, 10, 10),
		feature(4.5, 1, 1, -5, 5),
	})

	qd.SetLocationFilter(0, 0, 1000)
	require.NoError(t, qd.SetPropertyFilter(5, 0, 0))
	require.Len(t, qd.FilteredView(), 1)

	for i := 0; i < 2; i++ {
		qd.ClearFilters()
		assert.Equal(t, Filters{}, qd.Filters())
		assert.Equal(t, qd.Quakes(), qd.FilteredView())
	}
}

func TestFilteredView_PreservesOrder(t *testing.T) {
	input := []float64{7.1, 2.0, 5.5, 9.0, 1.1, 5.0, 6.6}
	features := make([]geojson.Feature, len(input))
	for i, m := range input {
		features[i] = feature(m, 0, 0, 0, 0)
	}
	qd := New(features)

	require.NoError(t, qd.SetPropertyFilter(5.0, 0, 0))
	assert.Equal(t, []float64{7.1, 5.5, 9.0, 5.0, 6.6}, mags(qd.FilteredView()))
}

func TestFilteredView_EmptyIsNotAnError(t *testing.T) {
	qd := New([]geojson.Feature{feature(1.0, 0, 0, 0, 0)})
	require.NoError(t, qd.SetPropertyFilter(8.0, 0, 0))

	view := qd.FilteredView()
	assert.NotNil(t, view)
	assert.Empty(t, view)
}

func TestEngines_DoNotShareFilters(t *testing.T) {
	features := []geojson.Feature{feature(3.0, 0, 0, 0, 0), feature(6.0, 0, 0, 0, 0)}
	a := New(features)
	b := New(features)

	require.NoError(t, a.SetPropertyFilter(5.0, 0, 0))
	a.SetLocationFilter(10, 10, 1)

	assert.Equal(t, Filters{}, b.Filters())
	assert.Len(t, b.FilteredView(), 2)
	assert.Len(t, a.FilteredView(), 1)
}

func TestEngine_AnalyticsUseFilteredView(t *testing.T) {
	qd := New([]geojson.Feature{
		feature(1.5, 0, 0, 0, 0),
		feature(5.0, 0, 0, 0, 0),
		feature(5.0, 0, 0, 0, 0),
		feature(5.0, 0, 0, 0, 0),
	})
	require.NoError(t, qd.SetPropertyFilter(5.0, 0, 0))

	stats, err := qd.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 5.0, stats.Mean)

	assert.Len(t, qd.ExceptionalQuakes(), 3)
	assert.Equal(t, 3, qd.MagnitudeHistogram()[5])
	assert.Equal(t, 0, qd.MagnitudeHistogram()[1])
}

func TestNew_DecodedCollectionWithBadEntries(t *testing.T) {
	const doc = `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "id": "a", "properties": {"mag": 2.5, "time": 1, "felt": 1, "sig": 10, "type": "earthquake"}, "geometry": {"type": "Point", "coordinates": [1, 2, 0]}},
			{"type": "Feature", "id": 7, "properties": {"mag": 3.5, "time": 2, "felt": 1, "sig": 10, "type": "earthquake"}, "geometry": {"type": "Point", "coordinates": [3, 4, 0]}},
			{"type": "Feature", "id": "x1", "properties": {"mag": 9.9}, "geometry": "oops"},
			{"type": 5, "id": "x2", "properties": {"mag": 9.9, "time": 1, "felt": 1, "sig": 1, "type": "earthquake"}, "geometry": {"type": "Point", "coordinates": [0, 0, 0]}},
			{"type": "Feature", "id": "x3", "properties": [], "geometry": {"type": "Point", "coordinates": [0, 0, 0]}},
			"not a feature",
			{"type": "Feature", "id": "b", "properties": {"mag": 4.5, "time": 3, "felt": 1, "sig": 10, "type": "earthquake"}, "geometry": {"type": "Point", "coordinates": [5, 6, 0]}}
		]
	}`

	fc, err := geojson.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, fc.Features, 7)

	qd := New(fc.Features)
	assert.Equal(t, 3, qd.Len())
	assert.Equal(t, 4, qd.Rejected())
	assert.Equal(t, []float64{2.5, 3.5, 4.5}, mags(qd.Quakes()))
}
