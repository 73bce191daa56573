package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// World holds the state-of-the-world time series a scenario runs against: the
// load series plus any number of named columns (typically capacity factors for
// intermittent sources), one value per time step.
type World struct {
	Load   []float64            `json:"load"`
	Series map[string][]float64 `json:"series,omitempty"`

	years []int
}

// LoadWorldCSV reads a world-state CSV file. The file must contain a `load`
// column; a `year` column enables selection with FilterYear; an `ix` column is
// ignored; every other column is kept as a named series.
func LoadWorldCSV(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseWorldCSV(f)
}

// ParseWorldCSV parses world-state CSV data from a reader.
func ParseWorldCSV(r io.Reader) (*World, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read world header: %w", err)
	}

	loadCol, yearCol := -1, -1
	seriesCols := make(map[int]string)
	for i, name := range header {
		switch name {
		case "load":
			loadCol = i
		case "year":
			yearCol = i
		case "ix":
			// Row index written by the ledger exporter; not data.
		default:
			seriesCols[i] = name
		}
	}
	if loadCol < 0 {
		return nil, fmt.Errorf("world data must contain a %q column", "load")
	}

	world := &World{Series: make(map[string][]float64)}

	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read world row %d: %w", row, err)
		}

		load, err := strconv.ParseFloat(record[loadCol], 64)
		if err != nil {
			return nil, fmt.Errorf("world row %d: bad load value %q", row, record[loadCol])
		}
		world.Load = append(world.Load, load)

		if yearCol >= 0 {
			year, err := strconv.Atoi(record[yearCol])
			if err != nil {
				return nil, fmt.Errorf("world row %d: bad year value %q", row, record[yearCol])
			}
			world.years = append(world.years, year)
		}

		for col, name := range seriesCols {
			value, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return nil, fmt.Errorf("world row %d: bad %s value %q", row, name, record[col])
			}
			world.Series[name] = append(world.Series[name], value)
		}
	}

	return world, nil
}

// Steps returns the number of time steps in the world data.
func (w *World) Steps() int { return len(w.Load) }

// HasYears reports whether the data carried a year column.
func (w *World) HasYears() bool { return w.years != nil }

// CapacityFactors returns the named series, or an error naming the missing
// column.
func (w *World) CapacityFactors(column string) ([]float64, error) {
	series, ok := w.Series[column]
	if !ok {
		return nil, fmt.Errorf("world data has no column %q", column)
	}
	return series, nil
}

// Limit returns a copy of the world data truncated to the first n steps. A
// non-positive or over-long n returns the data unchanged.
func (w *World) Limit(n int) *World {
	if n <= 0 || n >= w.Steps() {
		return w
	}
	limited := &World{Load: w.Load[:n], Series: make(map[string][]float64)}
	for name, series := range w.Series {
		limited.Series[name] = series[:n]
	}
	if w.years != nil {
		limited.years = w.years[:n]
	}
	return limited
}

// FilterYear returns a copy of the world data restricted to rows of the given
// year. It fails if the data has no year column or the selection is empty.
func (w *World) FilterYear(year int) (*World, error) {
	if !w.HasYears() {
		return nil, fmt.Errorf("world data has no %q column; cannot select year %d", "year", year)
	}

	filtered := &World{Series: make(map[string][]float64)}
	for i, y := range w.years {
		if y != year {
			continue
		}
		filtered.Load = append(filtered.Load, w.Load[i])
		filtered.years = append(filtered.years, y)
		for name, series := range w.Series {
			filtered.Series[name] = append(filtered.Series[name], series[i])
		}
	}
	if filtered.Steps() == 0 {
		return nil, fmt.Errorf("world data has no rows with year %d", year)
	}
	return filtered, nil
}
