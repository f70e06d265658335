package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"time"

	"github.com/ModernAmusements/night-sky/internal/metrics"
	"github.com/ModernAmusements/night-sky/internal/observe"
)

// Animate renders a frame sequence as an animated GIF at path, one GIF
// frame per sky frame, each shown for frameDelay. The animation loops.
func Animate(frames []*observe.SkyFrame, path string, frameDelay time.Duration, opts Options) error {
	if err := checkSequence(frames); err != nil {
		return fmt.Errorf("rendering animation: %w", err)
	}
	if frameDelay <= 0 {
		return fmt.Errorf("rendering animation: frame delay %v not positive", frameDelay)
	}
	start := time.Now()

	// GIF delays are in hundredths of a second.
	delayCS := int(frameDelay / (10 * time.Millisecond))
	if delayCS < 1 {
		delayCS = 1
	}

	g := &gif.GIF{LoopCount: 0}
	for _, f := range frames {
		ch := newChart(opts)
		ch.drawGrid()
		for _, e := range f.Entries {
			ch.drawEntry(e, 0.9)
		}
		ch.drawCompass()
		ch.drawTitle(
			fmt.Sprintf("Sky View - %s", f.Time.UTC().Format("2006-01-02 15:04 UTC")),
			fmt.Sprintf("Location: %s", formatLocation(f.Observer)),
		)

		g.Image = append(g.Image, toPaletted(ch.canvas.Image()))
		g.Delay = append(g.Delay, delayCS)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := gif.EncodeAll(out, g); err != nil {
		out.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	metrics.RecordRender("animation", time.Since(start))
	return nil
}

func toPaletted(src image.Image) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(b, palette.Plan9)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
