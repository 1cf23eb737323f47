package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"gfet-sim/pkg/analysis"
)

// SaveTransferPlots renders Ids-Vgs and Rds-Vgs curves for a transfer sweep
// at fixed Vds. Failed points are left out of the polyline.
func SaveTransferPlots(dir string, vds float64, points []analysis.Point) error {
	name := fmt.Sprintf("transfer_Vds_%.2fV.png", vds)
	title := fmt.Sprintf("Transfer Characteristics at Vds = %g V", vds)
	if err := saveLinePlot(filepath.Join(dir, name), title, "Vgs (V)", "Ids (A)", xyPairs(points, ids)); err != nil {
		return err
	}

	name = fmt.Sprintf("resistance_Vds_%.2fV.png", vds)
	title = fmt.Sprintf("Channel Resistance at Vds = %g V", vds)
	return saveLinePlot(filepath.Join(dir, name), title, "Vgs (V)", "Rds (Ohm)", xyPairs(points, rds))
}

// SaveOutputPlot renders the Ids-Vds curve for an output sweep at fixed Vgs.
func SaveOutputPlot(dir string, vgs float64, points []analysis.Point) error {
	name := fmt.Sprintf("output_Vgs_%.2fV.png", vgs)
	title := fmt.Sprintf("I-V Characteristics at Vgs = %g V", vgs)
	return saveLinePlot(filepath.Join(dir, name), title, "Vds (V)", "Ids (A)", xyPairs(points, ids))
}

func ids(p analysis.Point) float64 { return p.Ids }
func rds(p analysis.Point) float64 { return p.Rds }

func xyPairs(points []analysis.Point, y func(analysis.Point) float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(points))
	for _, p := range points {
		if p.Failed() {
			continue
		}
		pts = append(pts, plotter.XY{X: p.X, Y: y(p)})
	}
	return pts
}

func saveLinePlot(path, title, xlabel, ylabel string, pts plotter.XYs) error {
	if len(pts) == 0 {
		return fmt.Errorf("no converged points to plot for %s", path)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line, scatter)

	return savePlotPNG(p, 6.0, 4.5, path)
}

func savePlotPNG(p *plot.Plot, widthIn, heightIn float64, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create plot directory: %v", err)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(300),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %v", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	defer bw.Flush()

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %v", err)
	}
	return nil
}
