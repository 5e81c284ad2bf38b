// Package quakedata holds a validated, fixed collection of quakes together
// with the filter state used to derive views and statistics from it.
//
// The location filter keeps quakes at least MaxDistance kilometres away from
// the reference point, not within it. The zero filter (0, 0, 0) therefore
// keeps every quake.
package quakedata

import (
	"errors"
	"log/slog"

	"github.com/mr1hm/go-quake-analyser/internal/geojson"
	"github.com/mr1hm/go-quake-analyser/internal/models"
)

var ErrInvalidFilter = errors.New("invalid filter: all property thresholds are zero")

type LocationFilter struct {
	Latitude    float64
	Longitude   float64
	MaxDistance float64 // km
}

type PropertyFilter struct {
	MinMagnitude    float64
	MinFelt         int
	MinSignificance int
}

type Filters struct {
	Location LocationFilter
	Property PropertyFilter
}

// Option configures a QuakeData at construction.
type Option func(*options)

type options struct {
	axisOrder models.AxisOrder
}

// WithAxisOrder sets how feature coordinates map onto latitude and longitude.
// The default is models.AxisLatLon.
func WithAxisOrder(order models.AxisOrder) Option {
	return func(o *options) {
		o.axisOrder = order
	}
}

// QuakeData is not safe for concurrent use.
type QuakeData struct {
	quakes   []models.Quake
	rejected int
	filters  Filters
}

// New validates every feature and keeps the ones that pass, in input order.
// Rejected features are logged and skipped.
func New(features []geojson.Feature, opts ...Option) *QuakeData {
	o := &options{axisOrder: models.AxisLatLon}
	for _, opt := range opts {
		opt(o)
	}

	qd := &QuakeData{
		quakes: make([]models.Quake, 0, len(features)),
	}
	for i, f := range features {
		q, err := Validate(f, o.axisOrder)
		if err != nil {
			qd.rejected++
			slog.Debug("skipping feature", "index", i, "id", f.ID, "reason", err)
			continue
		}
		qd.quakes = append(qd.quakes, q)
	}

	slog.Info("quake data loaded", "accepted", len(qd.quakes), "rejected", qd.rejected, "axis_order", o.axisOrder.String())
	return qd
}

func (qd *QuakeData) Len() int {
	return len(qd.quakes)
}

// Rejected is the number of input features that failed validation.
func (qd *QuakeData) Rejected() int {
	return qd.rejected
}

// Quakes returns a copy of the full collection.
func (qd *QuakeData) Quakes() []models.Quake {
	out := make([]models.Quake, len(qd.quakes))
	copy(out, qd.quakes)
	return out
}

func (qd *QuakeData) Filters() Filters {
	return qd.filters
}

// SetLocationFilter does no range checking on its arguments.
func (qd *QuakeData) SetLocationFilter(lat, lon, maxDistance float64) {
	qd.filters.Location = LocationFilter{
		Latitude:    lat,
		Longitude:   lon,
		MaxDistance: maxDistance,
	}
	slog.Debug("location filter set", "lat", lat, "lon", lon, "max_distance_km", maxDistance)
}

// SetPropertyFilter rejects an all-zero update with ErrInvalidFilter and
// leaves the current filter in place. Use ClearFilters to reset.
func (qd *QuakeData) SetPropertyFilter(minMag float64, minFelt, minSig int) error {
	if minMag == 0 && minFelt == 0 && minSig == 0 {
		return ErrInvalidFilter
	}
	qd.filters.Property = PropertyFilter{
		MinMagnitude:    minMag,
		MinFelt:         minFelt,
		MinSignificance: minSig,
	}
	slog.Debug("property filter set", "min_mag", minMag, "min_felt", minFelt, "min_sig", minSig)
	return nil
}

func (qd *QuakeData) ClearFilters() {
	qd.filters = Filters{}
}

// FilteredView returns the quakes matching the current filters, in
// collection order.
func (qd *QuakeData) FilteredView() []models.Quake {
	view := make([]models.Quake, 0, len(qd.quakes))
	for _, q := range qd.quakes {
		if qd.filters.match(q) {
			view = append(view, q)
		}
	}
	return view
}

func (f Filters) match(q models.Quake) bool {
	loc, prop := f.Location, f.Property

	if q.DistanceTo(loc.Latitude, loc.Longitude) < loc.MaxDistance {
		return false
	}
	return q.Mag() >= prop.MinMagnitude &&
		q.Sig() >= prop.MinSignificance &&
		q.Felt() >= prop.MinFelt
}

// Stats computes magnitude statistics over the current filtered view.
func (qd *QuakeData) Stats() (Stats, error) {
	return MagnitudeStats(qd.FilteredView())
}

func (qd *QuakeData) ExceptionalQuakes() []models.Quake {
	return Exceptional(qd.FilteredView())
}

func (qd *QuakeData) MagnitudeHistogram() map[int]int {
	return Histogram(qd.FilteredView())
}
