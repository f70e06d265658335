// Package render draws sky frames as polar charts: azimuth is the compass
// angle (north up, clockwise east), radius is zenith distance, marker size
// follows brightness. Drawing uses the gonum/plot vg layer with a raster
// (vgimg) backend; animations are assembled with the standard GIF encoder.
package render

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ModernAmusements/night-sky/internal/observe"
	"github.com/ModernAmusements/night-sky/internal/transform"
)

// Options holds renderer settings.
type Options struct {
	Size vg.Length // canvas edge length; default 600pt
	DPI  int       // raster resolution; default 150
}

const (
	defaultSize = vg.Length(600)
	defaultDPI  = 150

	titleFontSize = vg.Length(16)
	labelFontSize = vg.Length(12)
	ringFontSize  = vg.Length(10)
)

var (
	gridColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 76}
	labelColor = color.White
	starColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	bodyColor  = color.NRGBA{R: 255, G: 230, B: 150, A: 255}
)

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = defaultSize
	}
	if o.DPI <= 0 {
		o.DPI = defaultDPI
	}
	return o
}

// chart is one polar sky chart being drawn onto a raster canvas.
type chart struct {
	canvas *vgimg.Canvas
	fonts  *font.Cache
	center vg.Point
	radius vg.Length
}

func newChart(opts Options) *chart {
	opts = opts.withDefaults()
	c := vgimg.NewWith(
		vgimg.UseWH(opts.Size, opts.Size),
		vgimg.UseDPI(opts.DPI),
		vgimg.UseBackgroundColor(color.Black),
	)

	// Leave headroom for the title block above the horizon circle.
	center := vg.Point{X: opts.Size / 2, Y: opts.Size/2 - opts.Size/24}
	radius := opts.Size/2 - opts.Size/7

	return &chart{
		canvas: c,
		fonts:  font.NewCache(liberation.Collection()),
		center: center,
		radius: radius,
	}
}

func (ch *chart) face(size vg.Length) font.Face {
	return ch.fonts.Lookup(font.Font{Typeface: "Liberation", Variant: "Sans"}, size)
}

// project maps a sky position onto the canvas: the zenith sits at the chart
// center, the horizon on the outer ring.
func (ch *chart) project(azDeg, altDeg float64) vg.Point {
	r := vg.Length((90-altDeg)/90) * ch.radius
	az := azDeg * math.Pi / 180.0
	return vg.Point{
		X: ch.center.X + r*vg.Length(math.Sin(az)),
		Y: ch.center.Y + r*vg.Length(math.Cos(az)),
	}
}

func circle(center vg.Point, r vg.Length) vg.Path {
	var p vg.Path
	p.Move(vg.Point{X: center.X + r, Y: center.Y})
	p.Arc(center, r, 0, 2*math.Pi)
	p.Close()
	return p
}

// drawGrid draws altitude rings every 30 degrees, the N-S and E-W spokes,
// and the ring labels along the north spoke.
func (ch *chart) drawGrid() {
	c := ch.canvas

	c.SetColor(gridColor)
	c.SetLineWidth(vg.Points(0.75))
	for _, alt := range []float64{0, 30, 60} {
		r := vg.Length((90-alt)/90) * ch.radius
		c.Stroke(circle(ch.center, r))
	}

	// Spokes through the cardinal directions.
	for _, az := range []float64{0, 90} {
		a := az * math.Pi / 180.0
		dx := ch.radius * vg.Length(math.Sin(a))
		dy := ch.radius * vg.Length(math.Cos(a))
		var p vg.Path
		p.Move(vg.Point{X: ch.center.X - dx, Y: ch.center.Y - dy})
		p.Line(vg.Point{X: ch.center.X + dx, Y: ch.center.Y + dy})
		c.Stroke(p)
	}

	// Altitude labels from the zenith outward.
	face := ch.face(ringFontSize)
	c.SetColor(labelColor)
	for _, alt := range []float64{90, 60, 30, 0} {
		r := vg.Length((90-alt)/90) * ch.radius
		pt := vg.Point{X: ch.center.X + vg.Points(3), Y: ch.center.Y + r + vg.Points(2)}
		c.FillString(face, pt, fmt.Sprintf("%.0f°", alt))
	}
}

// drawCompass labels the cardinal directions just outside the horizon ring.
func (ch *chart) drawCompass() {
	c := ch.canvas
	face := ch.face(labelFontSize)
	c.SetColor(labelColor)

	labels := []struct {
		name string
		az   float64
	}{
		{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270},
	}
	offset := ch.radius + vg.Points(10)
	for _, l := range labels {
		a := l.az * math.Pi / 180.0
		pt := vg.Point{
			X: ch.center.X + offset*vg.Length(math.Sin(a)) - labelFontSize*0.3,
			Y: ch.center.Y + offset*vg.Length(math.Cos(a)) - labelFontSize*0.35,
		}
		c.FillString(face, pt, l.name)
	}
}

// drawTitle writes title lines centered above the chart.
func (ch *chart) drawTitle(lines ...string) {
	c := ch.canvas
	face := ch.face(titleFontSize)
	c.SetColor(labelColor)

	y := ch.center.Y + ch.radius + vg.Points(46)
	for _, line := range lines {
		// Approximate centering; good enough for chart furniture.
		w := titleFontSize * vg.Length(len(line)) * 0.5
		c.FillString(face, vg.Point{X: ch.center.X - w/2, Y: y}, line)
		y -= titleFontSize * 1.3
	}
}

// drawEntry plots one object. Entries below the horizon are clipped: the
// chart only shows the visible hemisphere.
func (ch *chart) drawEntry(e observe.Entry, alpha float64) {
	if e.AltDeg < 0 {
		return
	}

	base := starColor
	if e.Body {
		base = bodyColor
	}
	c := ch.canvas
	c.SetColor(withAlpha(base, alpha))
	c.Fill(circle(ch.project(e.AzDeg, e.AltDeg), MarkerRadius(e.Magnitude)))
}

func withAlpha(base color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	base.A = uint8(alpha * 255)
	return base
}

// formatLocation renders an observer location as hemisphere-tagged degrees.
func formatLocation(obs transform.Observer) string {
	latH, lonH := "N", "E"
	lat, lon := obs.LatDeg, obs.LonDeg
	if lat < 0 {
		latH, lat = "S", -lat
	}
	if lon < 0 {
		lonH, lon = "W", -lon
	}
	return fmt.Sprintf("%.1f°%s, %.1f°%s", lat, latH, lon, lonH)
}

// writePNG encodes the canvas to path, overwriting any existing file.
func (ch *chart) writePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: ch.canvas}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
