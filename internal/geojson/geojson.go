// Package geojson reads and writes the USGS-style GeoJSON feeds the analyser
// consumes. Types are loosely typed on purpose: properties and coordinates
// keep JSON nulls and wrong-kind values so record validation can reject them.
package geojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mr1hm/go-quake-analyser/internal/models"
)

const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePoint             = "Point"
)

type FeatureCollection struct {
	Type     string         `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Features []Feature      `json:"features"`
	BBox     []float64      `json:"bbox,omitempty"`
}

type Feature struct {
	Type       string         `json:"type"`
	ID         any            `json:"id,omitempty"` // string or number
	Properties map[string]any `json:"properties"`
	Geometry   *Geometry      `json:"geometry"`
}

// UnmarshalJSON never fails. Members with the wrong shape are left at their
// zero value, and a non-object entry decodes to the zero Feature, so one bad
// entry cannot abort the whole collection. Validation rejects what is left.
func (f *Feature) UnmarshalJSON(data []byte) error {
	*f = Feature{}

	var raw struct {
		Type       json.RawMessage `json:"type"`
		ID         json.RawMessage `json:"id"`
		Properties json.RawMessage `json:"properties"`
		Geometry   json.RawMessage `json:"geometry"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var kind string
	if json.Unmarshal(raw.Type, &kind) == nil {
		f.Type = kind
	}
	var id any
	if json.Unmarshal(raw.ID, &id) == nil {
		f.ID = id
	}
	var props map[string]any
	if json.Unmarshal(raw.Properties, &props) == nil {
		f.Properties = props
	}
	var geom *Geometry
	if json.Unmarshal(raw.Geometry, &geom) == nil {
		f.Geometry = geom
	}
	return nil
}

type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"` // [x, y, depth]
}

func Decode(r io.Reader) (FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return FeatureCollection{}, fmt.Errorf("error decoding feature collection: %w", err)
	}
	return fc, nil
}

func ReadFile(path string) (FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return FeatureCollection{}, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

func Encode(w io.Writer, fc FeatureCollection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("error encoding feature collection: %w", err)
	}
	return nil
}

func WriteFile(path string, fc FeatureCollection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := Encode(f, fc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FromQuakes turns validated quakes back into a feature collection, writing
// coordinates in the given axis order so the file round-trips through the
// same engine configuration.
func FromQuakes(quakes []models.Quake, order models.AxisOrder) FeatureCollection {
	features := make([]Feature, 0, len(quakes))

	for _, q := range quakes {
		x, y := q.Latitude(), q.Longitude()
		if order == models.AxisLonLat {
			x, y = y, x
		}

		f := Feature{
			Type: TypeFeature,
			Geometry: &Geometry{
				Type:        TypePoint,
				Coordinates: []any{x, y, 0.0},
			},
			Properties: map[string]any{
				"mag":  q.Mag(),
				"time": q.Time(),
				"felt": q.Felt(),
				"sig":  q.Sig(),
				"type": q.Type(),
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     TypeFeatureCollection,
		Features: features,
	}
}
