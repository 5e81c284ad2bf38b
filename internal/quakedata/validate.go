package quakedata

import (
	"errors"
	"fmt"
	"math"

	"github.com/mr1hm/go-quake-analyser/internal/geojson"
	"github.com/mr1hm/go-quake-analyser/internal/models"
)

// Reasons a raw feature is kept out of the collection.
var (
	ErrNotFeature      = errors.New("not a feature")
	ErrMissingProperty = errors.New("missing required property")
	ErrNotPoint        = errors.New("geometry is not a point")
	ErrBadCoordinates  = errors.New("invalid coordinates")
)

// Required numeric properties, checked in this order before "type".
var numericProps = []string{"mag", "time", "felt", "sig"}

// Validate turns a raw feature into a quake, or reports the first check it
// failed. Checks run in order: feature kind, required properties, geometry
// kind, coordinate count, coordinate values.
func Validate(f geojson.Feature, order models.AxisOrder) (models.Quake, error) {
	if f.Type != geojson.TypeFeature {
		return models.Quake{}, fmt.Errorf("%w: kind %q", ErrNotFeature, f.Type)
	}

	nums := make(map[string]float64, len(numericProps))
	for _, key := range numericProps {
		v, ok := number(f.Properties[key])
		if !ok {
			return models.Quake{}, fmt.Errorf("%w: %s", ErrMissingProperty, key)
		}
		if !inRange(key, v) {
			return models.Quake{}, fmt.Errorf("%w: %s out of range", ErrMissingProperty, key)
		}
		nums[key] = v
	}
	eventType, ok := f.Properties["type"].(string)
	if !ok || eventType == "" {
		return models.Quake{}, fmt.Errorf("%w: type", ErrMissingProperty)
	}

	if f.Geometry == nil || f.Geometry.Type != geojson.TypePoint {
		return models.Quake{}, ErrNotPoint
	}

	coords, ok := f.Geometry.Coordinates.([]any)
	if !ok || len(coords) != 3 {
		return models.Quake{}, fmt.Errorf("%w: want 3 values", ErrBadCoordinates)
	}
	var xyz [3]float64
	for i, c := range coords {
		v, ok := number(c)
		if !ok {
			return models.Quake{}, fmt.Errorf("%w: index %d is not numeric", ErrBadCoordinates, i)
		}
		xyz[i] = v
	}

	// Depth (xyz[2]) is accepted but not kept.
	lat, long := xyz[0], xyz[1]
	if order == models.AxisLonLat {
		lat, long = long, lat
	}

	return models.NewQuake(
		nums["mag"],
		int64(nums["time"]),
		int(nums["felt"]),
		int(nums["sig"]),
		eventType,
		lat,
		long,
	), nil
}

// inRange reports whether an integer property truncates without overflow.
// The upper bounds are powers of two, exact as float64, so they are exclusive.
func inRange(key string, v float64) bool {
	switch key {
	case "time":
		return v >= math.MinInt64 && v < -math.MinInt64
	case "felt", "sig":
		return v >= math.MinInt && v < -math.MinInt
	default:
		return true
	}
}

// number accepts the numeric kinds a decoded or hand-built feature can hold.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
