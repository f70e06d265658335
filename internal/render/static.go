package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/ModernAmusements/night-sky/internal/metrics"
	"github.com/ModernAmusements/night-sky/internal/observe"
)

// Static renders a single sky frame to a PNG file at path.
func Static(frame *observe.SkyFrame, path string, opts Options) error {
	if frame == nil {
		return errors.New("nil sky frame")
	}
	start := time.Now()

	ch := newChart(opts)
	ch.drawGrid()
	for _, e := range frame.Entries {
		ch.drawEntry(e, 0.9)
	}
	ch.drawCompass()
	ch.drawTitle(
		fmt.Sprintf("Sky View - %s", frame.Time.UTC().Format("2006-01-02 15:04 UTC")),
		fmt.Sprintf("Location: %s", formatLocation(frame.Observer)),
	)

	if err := ch.writePNG(path); err != nil {
		return err
	}
	metrics.RecordRender("static", time.Since(start))
	return nil
}

// checkSequence validates a frame sequence for composite rendering: it must
// be non-empty and strictly ordered in time.
func checkSequence(frames []*observe.SkyFrame) error {
	if len(frames) == 0 {
		return errors.New("empty frame sequence")
	}
	for i, f := range frames {
		if f == nil {
			return fmt.Errorf("nil frame at index %d", i)
		}
		if i > 0 && !f.Time.After(frames[i-1].Time) {
			return fmt.Errorf("frame %d not after frame %d", i, i-1)
		}
	}
	return nil
}
