// Package observe turns a catalog plus an observer frame into sky frames:
// the altitude/azimuth/magnitude tuples everything downstream renders.
package observe

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/ModernAmusements/night-sky/internal/catalog"
	"github.com/ModernAmusements/night-sky/internal/ephemeris"
	"github.com/ModernAmusements/night-sky/internal/metrics"
	"github.com/ModernAmusements/night-sky/internal/transform"
)

// Config holds evaluator settings.
type Config struct {
	Workers int // concurrent star transforms (default: runtime.NumCPU())
}

// BodySource supplies solar-system body positions per timestamp.
// *ephemeris.Set satisfies it.
type BodySource interface {
	BodiesAt(t time.Time) []ephemeris.Body
}

// Evaluator computes sky frames. Stateless apart from configuration; the
// same inputs always produce the same frame.
type Evaluator struct {
	workers int
	logger  *slog.Logger
}

// NewEvaluator creates an evaluator.
func NewEvaluator(cfg Config, logger *slog.Logger) *Evaluator {
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Evaluator{workers: workers, logger: logger}
}

// Evaluate transforms every star and body into the frame's horizontal
// coordinates. Star entries keep catalog order; body entries follow in the
// order given. Blocks until the whole frame is computed.
//
// Stars are drained from a job channel by a fixed pool of workers, each
// writing its result by index, so the output is identical to a sequential
// evaluation.
func (e *Evaluator) Evaluate(frame transform.Frame, stars []catalog.Star, bodies []ephemeris.Body) *SkyFrame {
	start := time.Now()

	entries := make([]Entry, len(stars), len(stars)+len(bodies))
	years := (frame.JD() - catalog.HipparcosEpochJD) / 365.25

	if len(stars) > 0 {
		workers := e.workers
		if workers > len(stars) {
			workers = len(stars)
		}

		jobs := make(chan int, workers*2)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for idx := range jobs {
					s := stars[idx]
					ra, dec := s.PropagatedTo(years)
					az, alt := frame.EqToHorizontal(ra, dec)
					entries[idx] = Entry{
						ID:        s.ID(),
						AzDeg:     az,
						AltDeg:    alt,
						Magnitude: s.Magnitude,
					}
				}
			}()
		}
		for i := range stars {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	// Bodies are few; computed sequentially, independent of the star entries.
	for _, b := range bodies {
		az, alt := frame.EqToHorizontal(b.RADeg, b.DecDeg)
		entries = append(entries, Entry{
			ID:        b.Name,
			AzDeg:     az,
			AltDeg:    alt,
			Magnitude: b.Magnitude,
			Body:      true,
		})
	}

	metrics.RecordEvaluation(time.Since(start), len(entries))
	e.logger.Debug("sky frame evaluated",
		"time", frame.Time().Format(time.RFC3339),
		"stars", len(stars),
		"bodies", len(bodies),
	)

	return &SkyFrame{
		Time:     frame.Time(),
		Observer: frame.Observer(),
		Entries:  entries,
	}
}

// EvaluateRange evaluates duration/interval frames at start, start+interval,
// start+2·interval, ... in strictly ascending order: a 2 hour span at 15
// minute intervals yields 8 frames, the first at start and the last one
// interval before the end. A nil bodies source evaluates stars only.
//
// The context is checked between frames, so a long run aborts promptly when
// cancelled; a partial result is never returned.
func (e *Evaluator) EvaluateRange(ctx context.Context, obs transform.Observer, stars []catalog.Star, bodies BodySource, start time.Time, duration, interval time.Duration) ([]*SkyFrame, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration %v not positive", duration)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval %v not positive", interval)
	}
	n := int(duration / interval)
	if n < 1 {
		return nil, fmt.Errorf("interval %v longer than duration %v", interval, duration)
	}

	frames := make([]*SkyFrame, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("evaluating frame %d of %d: %w", i+1, n, err)
		}
		t := start.Add(time.Duration(i) * interval)
		var b []ephemeris.Body
		if bodies != nil {
			b = bodies.BodiesAt(t)
		}
		frames = append(frames, e.Evaluate(transform.BuildFrame(obs, t), stars, b))
	}
	return frames, nil
}
