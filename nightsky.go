// Package nightsky plots the night sky as seen from a point on Earth.
//
// A star catalog is loaded once and filtered by magnitude; a Sky binds that
// catalog to an observer and produces charts: single-moment PNG views,
// long-exposure style trail composites, and GIF animations. Solar system
// bodies and Earth satellites can be overlaid on the stellar background.
package nightsky

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ModernAmusements/night-sky/internal/catalog"
	"github.com/ModernAmusements/night-sky/internal/ephemeris"
	"github.com/ModernAmusements/night-sky/internal/observe"
	"github.com/ModernAmusements/night-sky/internal/render"
	"github.com/ModernAmusements/night-sky/internal/satellites"
	"github.com/ModernAmusements/night-sky/internal/transform"
)

const defaultFrameDelay = 500 * time.Millisecond

// SkyOptions configures optional overlays and rendering behavior for a Sky.
// The zero value plots stars only.
type SkyOptions struct {
	// Bodies selects which solar system bodies to overlay.
	Bodies ephemeris.Config

	// Satellites are TLE records to track and overlay.
	Satellites []satellites.Entry

	// Workers bounds evaluation parallelism; 0 uses GOMAXPROCS.
	Workers int

	// Render controls canvas geometry.
	Render render.Options

	// FrameDelay is the GIF per-frame display time; default 500ms.
	FrameDelay time.Duration

	Logger *slog.Logger
}

// Sky is an immutable view configuration: a catalog snapshot bound to one
// observer. All plotting methods take the observation time explicitly, so a
// single Sky can render any moment and is safe for concurrent use.
type Sky struct {
	stars      []catalog.Star
	observer   transform.Observer
	bodies     *ephemeris.Set
	tracker    *satellites.Tracker
	eval       *observe.Evaluator
	renderOpts render.Options
	frameDelay time.Duration
	logger     *slog.Logger
}

// NewSky binds a star dataset to an observer.
func NewSky(dataset *catalog.Dataset, observer transform.Observer, opts SkyOptions) (*Sky, error) {
	if dataset == nil {
		return nil, errors.New("nil dataset")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bodies, err := ephemeris.NewSet(opts.Bodies)
	if err != nil {
		return nil, fmt.Errorf("loading ephemeris: %w", err)
	}

	var tracker *satellites.Tracker
	if len(opts.Satellites) > 0 {
		tracker = satellites.NewTracker(opts.Satellites, logger)
	}

	delay := opts.FrameDelay
	if delay <= 0 {
		delay = defaultFrameDelay
	}

	return &Sky{
		stars:      dataset.Stars,
		observer:   observer,
		bodies:     bodies,
		tracker:    tracker,
		eval:       observe.NewEvaluator(observe.Config{Workers: opts.Workers}, logger),
		renderOpts: opts.Render,
		frameDelay: delay,
		logger:     logger,
	}, nil
}

// FrameAt evaluates every star and overlay object at t. Entries keep
// catalog order, with bodies and then satellites appended after the stars.
func (s *Sky) FrameAt(t time.Time) *observe.SkyFrame {
	frame := transform.BuildFrame(s.observer, t)
	sf := s.eval.Evaluate(frame, s.stars, s.bodies.BodiesAt(t))
	s.overlaySatellites(sf)
	return sf
}

func (s *Sky) overlaySatellites(sf *observe.SkyFrame) {
	if s.tracker == nil {
		return
	}
	for _, p := range s.tracker.PositionsAt(s.observer, sf.Time) {
		sf.Entries = append(sf.Entries, observe.Entry{
			ID:        p.Name,
			AzDeg:     p.AzDeg,
			AltDeg:    p.AltDeg,
			Magnitude: satellites.NominalMagnitude,
			Body:      true,
		})
	}
}

// PlotSky renders the sky at t to a PNG file.
func (s *Sky) PlotSky(t time.Time, path string) error {
	s.logger.Info("rendering sky view",
		"time", t.UTC().Format(time.RFC3339),
		"output", path)
	return render.Static(s.FrameAt(t), path, s.renderOpts)
}

// CreateStarTrails renders a trail composite to a PNG file: the sky is
// sampled every intervalMinutes across durationHours starting at start, and
// all samples are drawn on one chart with older samples fading out. The
// context cancels evaluation between samples.
func (s *Sky) CreateStarTrails(ctx context.Context, start time.Time, durationHours, intervalMinutes float64, path string) error {
	frames, err := s.framesRange(ctx, start, durationHours, intervalMinutes)
	if err != nil {
		return fmt.Errorf("creating star trails: %w", err)
	}
	s.logger.Info("rendering star trails",
		"start", start.UTC().Format(time.RFC3339),
		"duration_hours", durationHours,
		"frames", len(frames),
		"output", path)
	return render.Trails(frames, path, s.renderOpts)
}

// AnimateSky renders a GIF animation to path, one frame per sample. The
// context cancels evaluation between samples.
func (s *Sky) AnimateSky(ctx context.Context, start time.Time, durationHours, intervalMinutes float64, path string) error {
	frames, err := s.framesRange(ctx, start, durationHours, intervalMinutes)
	if err != nil {
		return fmt.Errorf("animating sky: %w", err)
	}
	s.logger.Info("rendering animation",
		"start", start.UTC().Format(time.RFC3339),
		"duration_hours", durationHours,
		"frames", len(frames),
		"output", path)
	return render.Animate(frames, path, s.frameDelay, s.renderOpts)
}

func (s *Sky) framesRange(ctx context.Context, start time.Time, durationHours, intervalMinutes float64) ([]*observe.SkyFrame, error) {
	duration := time.Duration(durationHours * float64(time.Hour))
	interval := time.Duration(intervalMinutes * float64(time.Minute))

	frames, err := s.eval.EvaluateRange(ctx, s.observer, s.stars, s.bodies, start, duration, interval)
	if err != nil {
		return nil, err
	}
	for _, sf := range frames {
		s.overlaySatellites(sf)
	}
	return frames, nil
}
