// Package cli is the console front end of the analyser: a numbered menu that
// reads answers line by line and prints engine results as text.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mr1hm/go-quake-analyser/internal/geojson"
	"github.com/mr1hm/go-quake-analyser/internal/models"
	"github.com/mr1hm/go-quake-analyser/internal/quakedata"
)

const menu = `
==================================================================
|                   Earthquake Analyser Menu                     |
==================================================================
|  1) Set Location Filter         5) Display Exceptional Quakes  |
|  2) Set Property Filter         6) Display Magnitude Stats     |
|  3) Clear Filters               7) Export Quake Map            |
|  4) Display Quakes              8) Plot Magnitude Chart        |
|                                 9) Quit                        |
==================================================================
`

const defaultMapPath = "quake_map.geojson"

type Session struct {
	qd        *quakedata.QuakeData
	axisOrder models.AxisOrder
	in        *bufio.Scanner
	out       io.Writer
}

func NewSession(qd *quakedata.QuakeData, axisOrder models.AxisOrder, in io.Reader, out io.Writer) *Session {
	return &Session{
		qd:        qd,
		axisOrder: axisOrder,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run shows the menu until the user quits or input ends.
func (s *Session) Run() error {
	for {
		fmt.Fprint(s.out, menu)
		option, ok := s.prompt("Please select an option from the menu. (1-9)")
		if !ok {
			return s.in.Err()
		}

		switch option {
		case "1":
			s.setLocationFilter()
		case "2":
			s.setPropertyFilter()
		case "3":
			s.qd.ClearFilters()
			fmt.Fprintln(s.out, "Filters cleared.")
		case "4":
			s.printQuakes(s.qd.FilteredView())
		case "5":
			s.printQuakes(s.qd.ExceptionalQuakes())
		case "6":
			s.printStats()
		case "7":
			s.exportMap()
		case "8":
			s.printChart()
		case "9":
			return nil
		default:
			fmt.Fprintf(s.out, "Unknown option %q.\n", option)
		}
	}
}

func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprintf(s.out, "%s:\t", label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptFloat treats a blank answer as 0.
func (s *Session) promptFloat(label string) (float64, error) {
	v, _ := s.prompt(label)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", label, v)
	}
	return f, nil
}

func (s *Session) promptInt(label string) (int, error) {
	v, _ := s.prompt(label)
	if v == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a whole number", label, v)
	}
	return i, nil
}

func (s *Session) setLocationFilter() {
	lat, err := s.promptFloat("Please enter the Latitude")
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	lon, err := s.promptFloat("Please enter the Longitude")
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	dist, err := s.promptFloat("Please enter the Distance (km)")
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}

	s.qd.SetLocationFilter(lat, lon, dist)
	fmt.Fprintf(s.out, "Location filter: at least %g km from (%g, %g)\n", dist, lat, lon)
}

func (s *Session) setPropertyFilter() {
	mag, err := s.promptFloat("Please enter the Magnitude")
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	felt, err := s.promptInt("Please enter the Felt value")
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	sig, err := s.promptInt("Please enter the Significance")
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}

	if err := s.qd.SetPropertyFilter(mag, felt, sig); err != nil {
		if errors.Is(err, quakedata.ErrInvalidFilter) {
			fmt.Fprintln(s.out, "Property filter not changed: enter at least one non-zero value, or clear filters instead.")
			return
		}
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "Property filter: magnitude >= %g, felt >= %d, significance >= %d\n", mag, felt, sig)
}

func (s *Session) printQuakes(quakes []models.Quake) {
	if len(quakes) == 0 {
		fmt.Fprintln(s.out, "No quakes match the current filters.")
		return
	}
	for _, q := range quakes {
		fmt.Fprintln(s.out, q)
	}
}

func (s *Session) printStats() {
	view := s.qd.FilteredView()

	stats, err := quakedata.MagnitudeStats(view)
	if err != nil {
		s.printStatsError(err)
		return
	}
	floored, err := quakedata.FlooredMagnitudeStats(view)
	if err != nil {
		s.printStatsError(err)
		return
	}

	fmt.Fprintln(s.out, "-------------------------------------------------------------")
	fmt.Fprintln(s.out, "|            Earthquake Magnitude Statistics                |")
	fmt.Fprintln(s.out, "-------------------------------------------------------------")
	fmt.Fprintf(s.out, "| %-14s| %8s | %8s | %8s | %6s |\n", "", "Mean", "Median", "Std.Dev", "Mode")
	fmt.Fprintf(s.out, "| %-14s| %8.2f | %8.2f | %8.2f | %6d |\n", "Original", stats.Mean, stats.Median, stats.StdDev, stats.Mode)
	fmt.Fprintf(s.out, "| %-14s| %8.2f | %8.2f | %8.2f | %6d |\n", "Rounded Down", floored.Mean, floored.Median, floored.StdDev, floored.Mode)
	fmt.Fprintln(s.out, "-------------------------------------------------------------")
	fmt.Fprintf(s.out, "%d quakes\n", stats.Count)
}

func (s *Session) printStatsError(err error) {
	if errors.Is(err, quakedata.ErrEmptyDataset) {
		fmt.Fprintln(s.out, "No quakes match the current filters.")
		return
	}
	fmt.Fprintf(s.out, "Statistics unavailable: %v\n", err)
}

func (s *Session) exportMap() {
	path, _ := s.prompt(fmt.Sprintf("Output file [%s]", defaultMapPath))
	if path == "" {
		path = defaultMapPath
	}

	view := s.qd.FilteredView()
	if err := geojson.WriteFile(path, geojson.FromQuakes(view, s.axisOrder)); err != nil {
		fmt.Fprintf(s.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Wrote %d quakes to %s\n", len(view), path)
}

func (s *Session) printChart() {
	bins := s.qd.MagnitudeHistogram()

	fmt.Fprintln(s.out, "Earthquake Magnitude Analysis")
	for m := 1; m <= 10; m++ {
		fmt.Fprintf(s.out, "%2d | %s %d\n", m, strings.Repeat("#", barWidth(bins[m], bins)), bins[m])
	}
}

// barWidth scales counts so the largest bin is 50 characters wide.
func barWidth(count int, bins map[int]int) int {
	peak := 0
	for _, c := range bins {
		peak = max(peak, c)
	}
	if peak == 0 {
		return 0
	}
	return count * 50 / peak
}
