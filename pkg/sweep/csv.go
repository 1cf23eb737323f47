package sweep

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// FromCSV loads sweep values from a CSV file, flattening all numeric fields
// in row order. A leading header row is skipped; empty fields are ignored.
// Non-finite values are rejected before they can reach the solver.
func FromCSV(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sweep file: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading sweep file %s: %v", path, err)
	}

	var vals []float64
	for row, record := range records {
		for _, field := range record {
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				if row == 0 {
					// Header row.
					break
				}
				return nil, fmt.Errorf("row %d of %s: parsing %q: %v", row+1, path, field, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &InvalidValueError{Index: len(vals), Value: v}
			}
			vals = append(vals, v)
		}
	}

	if len(vals) == 0 {
		return nil, fmt.Errorf("no sweep values in %s", path)
	}
	return vals, nil
}
