// Package output exports characteristic curves to CSV files and PNG plots.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gfet-sim/pkg/analysis"
)

// WriteCSV writes one row per point: the swept variable, Ids and Rds. Failed
// points keep their row but leave the Ids and Rds fields empty, so readers
// can tell an unconverged point from any numeric value.
func WriteCSV(path, xName string, points []analysis.Point) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %v", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{xName, "ids", "rds"}); err != nil {
		return fmt.Errorf("writing header: %v", err)
	}

	for _, p := range points {
		row := []string{formatFloat(p.X), "", ""}
		if !p.Failed() {
			row[1] = formatFloat(p.Ids)
			row[2] = formatFloat(p.Rds)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %v", err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 15, 64)
}
