package render

import (
	"fmt"
	"time"

	"github.com/ModernAmusements/night-sky/internal/metrics"
	"github.com/ModernAmusements/night-sky/internal/observe"
)

// Trails composites a frame sequence into a single PNG: every frame's
// entries are drawn on one chart, with opacity ramping from faint for the
// oldest frame to full for the newest. The result shows each object's arc
// across the sky over the sampled span.
func Trails(frames []*observe.SkyFrame, path string, opts Options) error {
	if err := checkSequence(frames); err != nil {
		return fmt.Errorf("rendering trails: %w", err)
	}
	start := time.Now()

	ch := newChart(opts)
	ch.drawGrid()

	n := len(frames)
	for i, f := range frames {
		alpha := 0.1 + 0.9*float64(i)/float64(n)
		for _, e := range f.Entries {
			ch.drawEntry(e, alpha)
		}
	}

	first, last := frames[0], frames[n-1]
	span := last.Time.Sub(first.Time).Hours()
	ch.drawCompass()
	ch.drawTitle(
		fmt.Sprintf("Star Trails - %.1f hours", span),
		fmt.Sprintf("Start: %s", first.Time.UTC().Format("2006-01-02 15:04 UTC")),
		fmt.Sprintf("Location: %s", formatLocation(first.Observer)),
	)

	if err := ch.writePNG(path); err != nil {
		return err
	}
	metrics.RecordRender("trails", time.Since(start))
	return nil
}
