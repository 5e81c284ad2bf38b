package quakedata

import (
	"errors"
	"math"
	"slices"

	"github.com/mr1hm/go-quake-analyser/internal/models"
)

var ErrEmptyDataset = errors.New("empty dataset")

// Histogram bins cover floor(magnitude) 1 through 10.
const (
	histogramMin = 1
	histogramMax = 10
)

// Stats summarises a set of magnitudes. StdDev is the population standard
// deviation. Mode is taken over floored magnitudes; ties go to the lowest.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Mode   int
}

func MagnitudeStats(quakes []models.Quake) (Stats, error) {
	return describe(magnitudes(quakes))
}

// FlooredMagnitudeStats is MagnitudeStats over whole-number magnitudes.
func FlooredMagnitudeStats(quakes []models.Quake) (Stats, error) {
	mags := magnitudes(quakes)
	for i, m := range mags {
		mags[i] = math.Floor(m)
	}
	return describe(mags)
}

// Exceptional returns the quakes at or above one standard deviation over the
// median magnitude, in input order.
func Exceptional(quakes []models.Quake) []models.Quake {
	out := make([]models.Quake, 0)
	if len(quakes) == 0 {
		return out
	}

	mags := magnitudes(quakes)
	threshold := median(mags) + stdDev(mags, mean(mags))
	for _, q := range quakes {
		if q.Mag() >= threshold {
			out = append(out, q)
		}
	}
	return out
}

// Histogram counts quakes per whole-number magnitude. Keys 1 to 10 are always
// present; magnitudes flooring outside that range are left out.
func Histogram(quakes []models.Quake) map[int]int {
	bins := make(map[int]int, histogramMax-histogramMin+1)
	for b := histogramMin; b <= histogramMax; b++ {
		bins[b] = 0
	}
	for _, q := range quakes {
		b := int(math.Floor(q.Mag()))
		if b < histogramMin || b > histogramMax {
			continue
		}
		bins[b]++
	}
	return bins
}

func describe(mags []float64) (Stats, error) {
	if len(mags) == 0 {
		return Stats{}, ErrEmptyDataset
	}
	m := mean(mags)
	return Stats{
		Count:  len(mags),
		Mean:   m,
		Median: median(mags),
		StdDev: stdDev(mags, m),
		Mode:   mode(mags),
	}, nil
}

func magnitudes(quakes []models.Quake) []float64 {
	mags := make([]float64, len(quakes))
	for i, q := range quakes {
		mags[i] = q.Mag()
	}
	return mags
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	m := sum / float64(len(xs))

	// Second pass corrects rounding in the sum, so identical values give an
	// exact mean and a zero deviation.
	var resid float64
	for _, x := range xs {
		resid += x - m
	}
	return m + resid/float64(len(xs))
}

func median(xs []float64) float64 {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func stdDev(xs []float64, m float64) float64 {
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func mode(xs []float64) int {
	counts := make(map[int]int)
	for _, x := range xs {
		counts[int(math.Floor(x))]++
	}

	best, bestCount := 0, 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}
