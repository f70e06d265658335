package satellites

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/ModernAmusements/night-sky/internal/transform"
)

// NominalMagnitude is the marker-sizing magnitude assigned to satellites.
// Actual satellite brightness varies with phase and range; for charting a
// bright fixed value keeps them visible among the stars.
const NominalMagnitude = 1.5

// Position is a satellite's look angles from the observer at one instant.
type Position struct {
	NoradID int
	Name    string
	AzDeg   float64
	AltDeg  float64
	RangeKm float64
}

type sat struct {
	entry Entry
	model satellite.Satellite
}

// Tracker propagates a fixed set of satellites. Immutable after
// construction.
type Tracker struct {
	sats   []sat
	logger *slog.Logger
}

// NewTracker initializes an SGP4 model per entry. Entries whose TLEs fail
// validation or SGP4 init are skipped with a warning log.
func NewTracker(entries []Entry, logger *slog.Logger) *Tracker {
	tr := &Tracker{logger: logger}
	for _, e := range entries {
		model, err := newModel(e)
		if err != nil {
			logger.Warn("sgp4 init failed", "norad_id", e.NoradID, "error", err)
			continue
		}
		tr.sats = append(tr.sats, sat{entry: e, model: model})
	}
	return tr
}

// Count returns the number of satellites with a working SGP4 model.
func (tr *Tracker) Count() int { return len(tr.sats) }

// newModel validates TLE lines and initializes the SGP4 propagator.
// Pre-validation matters because go-satellite calls log.Fatal on malformed
// input, which would kill the process.
func newModel(e Entry) (satellite.Satellite, error) {
	if err := validateTLELines(e.Line1, e.Line2); err != nil {
		return satellite.Satellite{}, fmt.Errorf("invalid TLE for NORAD %d: %w", e.NoradID, err)
	}

	model := satellite.TLEToSat(e.Line1, e.Line2, satellite.GravityWGS84)
	if model.Error != 0 {
		return satellite.Satellite{}, fmt.Errorf("sgp4 init failed for NORAD %d: code=%d %s", e.NoradID, model.Error, model.ErrorStr)
	}
	return model, nil
}

func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got '%c'", line2[0])
	}
	return nil
}

// PositionsAt propagates every satellite to time t (UTC) and returns look
// angles from the observer. Satellites whose propagation degenerates are
// skipped with a warning log.
func (tr *Tracker) PositionsAt(obs transform.Observer, t time.Time) []Position {
	if len(tr.sats) == 0 {
		return nil
	}

	t = t.UTC()
	site := transform.ECEFFromObserver(obs)

	positions := make([]Position, 0, len(tr.sats))
	for _, s := range tr.sats {
		teme, err := propagate(s.model, s.entry.NoradID, t)
		if err != nil {
			tr.logger.Warn("propagation failed", "norad_id", s.entry.NoradID, "error", err)
			continue
		}

		x, y, z := transform.TEMEToECEF(teme, t)
		la := transform.ECEFToLookAngles(site, x, y, z)
		positions = append(positions, Position{
			NoradID: s.entry.NoradID,
			Name:    s.entry.Name,
			AzDeg:   la.AzDeg,
			AltDeg:  la.AltDeg,
			RangeKm: la.RangeKm,
		})
	}
	return positions
}

// propagate runs SGP4 and sanity-checks the output. go-satellite reports
// errors only through NaN/Inf output or unreasonable magnitudes.
func propagate(model satellite.Satellite, noradID int, t time.Time) (transform.TEMEPosition, error) {
	pos, _ := satellite.Propagate(model, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())

	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsNaN(pos.Z) ||
		math.IsInf(pos.X, 0) || math.IsInf(pos.Y, 0) || math.IsInf(pos.Z, 0) {
		return transform.TEMEPosition{}, fmt.Errorf("sgp4 propagation failed for NORAD %d: output is NaN/Inf", noradID)
	}

	// Position magnitude should fall between LEO and high orbit.
	mag := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if mag < 6200.0 || mag > 50000.0 {
		return transform.TEMEPosition{}, fmt.Errorf("sgp4 propagation failed for NORAD %d: unreasonable position magnitude %.1f km", noradID, mag)
	}

	return transform.TEMEPosition{X: pos.X, Y: pos.Y, Z: pos.Z}, nil
}
