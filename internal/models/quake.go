package models

import (
	"fmt"
	"math"
	"time"
)

// earthRadiusKm is the IUGG mean earth radius.
const earthRadiusKm = 6371.0088

// AxisOrder says how the first two entries of a GeoJSON coordinate array map
// onto latitude and longitude.
type AxisOrder int

const (
	// AxisLatLon binds coordinates[0] to latitude, coordinates[1] to longitude.
	AxisLatLon AxisOrder = iota
	// AxisLonLat is the RFC 7946 order used by live USGS feeds.
	AxisLonLat
)

func (o AxisOrder) String() string {
	if o == AxisLonLat {
		return "lonlat"
	}
	return "latlon"
}

// ParseAxisOrder accepts "latlon" or "lonlat".
func ParseAxisOrder(s string) (AxisOrder, error) {
	switch s {
	case "latlon":
		return AxisLatLon, nil
	case "lonlat":
		return AxisLonLat, nil
	default:
		return AxisLatLon, fmt.Errorf("invalid axis order: %q", s)
	}
}

// Quake is one validated seismic event. It is immutable once built.
type Quake struct {
	mag       float64
	felt      int
	sig       int
	eventType string
	time      int64 // unix millis
	lat       float64
	long      float64
}

func NewQuake(mag float64, timestamp int64, felt, sig int, eventType string, lat, long float64) Quake {
	return Quake{
		mag:       mag,
		felt:      felt,
		sig:       sig,
		eventType: eventType,
		time:      timestamp,
		lat:       lat,
		long:      long,
	}
}

func (q Quake) Mag() float64 { return q.mag }
func (q Quake) Felt() int { return q.felt }
func (q Quake) Sig() int { return q.sig }
func (q Quake) Type() string { return q.eventType }
func (q Quake) Time() int64 { return q.time }
func (q Quake) Latitude() float64 { return q.lat }
func (q Quake) Longitude() float64 { return q.long }

// OccurredAt interprets the timestamp as unix milliseconds.
func (q Quake) OccurredAt() time.Time {
	return time.UnixMilli(q.time).UTC()
}

func (q Quake) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  q.lat,
		Longitude: q.long,
	}
}

// DistanceTo returns the great-circle distance in kilometres between the
// quake and the given point.
func (q Quake) DistanceTo(lat, lon float64) float64 {
	return Haversine(q.Coordinates(), Coordinates{Latitude: lat, Longitude: lon})
}

func (q Quake) String() string {
	return fmt.Sprintf("%g Magnitude Earthquake, %d Significance, felt by %d people in (%g, %g)",
		q.mag, q.sig, q.felt, q.lat, q.long)
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Haversine returns the great-circle distance in kilometres between a and b.
func Haversine(a, b Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h a hair past 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
