package coincidence

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// WritePlot renders a corrected spectrum to a PNG file: a heat map with a
// color bar for cartesian spectra, a line plot for radial ones.
func WritePlot(spectrum *Spectrum, filename string) error {
	switch spectrum.Spec.Geometry {
	case Cartesian:
		return writeHeatMap(spectrum, filename)
	case Radial:
		return writeRadialLine(spectrum, filename)
	}
	return fmt.Errorf("unknown geometry %d", spectrum.Spec.Geometry)
}

// spectrumGrid adapts a cartesian spectrum to plotter.GridXYZ.
type spectrumGrid struct {
	spectrum *Spectrum
	xCenters []float64
	yCenters []float64
}

func newSpectrumGrid(s *Spectrum) *spectrumGrid {
	return &spectrumGrid{
		spectrum: s,
		xCenters: s.Spec.X.Centers(),
		yCenters: s.Spec.Y.Centers(),
	}
}

func (g *spectrumGrid) Dims() (int, int)   { return g.spectrum.Nx(), g.spectrum.Ny() }
func (g *spectrumGrid) Z(i, j int) float64 { return g.spectrum.At(i, j) }
func (g *spectrumGrid) X(i int) float64    { return g.xCenters[i] }
func (g *spectrumGrid) Y(j int) float64    { return g.yCenters[j] }

func writeHeatMap(spectrum *Spectrum, filename string) error {
	p := plot.New()
	p.Title.Text = "corrected coincidence spectrum"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	low, high := valueRange(spectrum.Values)
	if low == high {
		high = low + 1
	}

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(low)
	colorMap.SetMax(high)
	pal := colorMap.Palette(1000)
	heatMap := plotter.NewHeatMap(newSpectrumGrid(spectrum), pal)
	heatMap.Min = low
	heatMap.Max = high
	p.Add(heatMap)

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)
	p.Draw(dc0)

	p = plot.New()
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0
	p.Draw(dc1)

	w, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return err
	}
	return nil
}

func writeRadialLine(spectrum *Spectrum, filename string) error {
	p := plot.New()
	p.Title.Text = "corrected coincidence spectrum"
	p.X.Label.Text = "r"
	p.Y.Label.Text = "signal per shot"

	centers := spectrum.Spec.R.Centers()
	points := make(plotter.XYs, len(centers))
	for i, c := range centers {
		points[i].X = c
		points[i].Y = spectrum.Values[i]
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

func valueRange(values []float64) (float64, float64) {
	low, high := values[0], values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	return low, high
}
