// Package ephemeris supplies equatorial positions for solar-system bodies so
// they can be drawn alongside the star catalog. Solar, lunar, and planetary
// theory comes entirely from the meeus library; magnitudes are fixed nominal
// values used only for marker sizing.
package ephemeris

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/elliptic"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solar"
)

// Body is a solar-system object's equatorial position at one instant.
type Body struct {
	Name      string
	RADeg     float64
	DecDeg    float64
	Magnitude float64
}

// Nominal visual magnitudes for marker sizing.
const (
	sunMagnitude  = -26.74
	moonMagnitude = -12.74
)

// Config selects which bodies to compute.
type Config struct {
	Sun  bool
	Moon bool
	// VSOP87Dir is the directory holding VSOP87 B files. When empty, the
	// naked-eye planets are skipped.
	VSOP87Dir string
}

type planet struct {
	name      string
	magnitude float64
	v87       *pp.V87Planet
}

// Set computes body positions for a fixed configuration. Immutable after
// construction; safe for concurrent use.
type Set struct {
	cfg     Config
	earth   *pp.V87Planet
	planets []planet
}

// nakedEyePlanets lists the planets visible without optics, with nominal
// mean visual magnitudes.
var nakedEyePlanets = []struct {
	name string
	ib   int
	mag  float64
}{
	{"Mercury", pp.Mercury, 0.23},
	{"Venus", pp.Venus, -4.14},
	{"Mars", pp.Mars, 0.71},
	{"Jupiter", pp.Jupiter, -2.20},
	{"Saturn", pp.Saturn, 0.46},
}

// NewSet builds a body set. Planetary VSOP87 data is loaded up front so a
// bad data directory fails here rather than mid-render.
func NewSet(cfg Config) (*Set, error) {
	s := &Set{cfg: cfg}

	if cfg.VSOP87Dir == "" {
		return s, nil
	}

	earth, err := pp.LoadPlanetPath(pp.Earth, cfg.VSOP87Dir)
	if err != nil {
		return nil, fmt.Errorf("loading VSOP87 data for Earth: %w", err)
	}
	s.earth = earth

	for _, p := range nakedEyePlanets {
		v87, err := pp.LoadPlanetPath(p.ib, cfg.VSOP87Dir)
		if err != nil {
			return nil, fmt.Errorf("loading VSOP87 data for %s: %w", p.name, err)
		}
		s.planets = append(s.planets, planet{name: p.name, magnitude: p.mag, v87: v87})
	}

	return s, nil
}

// BodiesAt returns equatorial positions for the configured bodies at time t
// (interpreted as UTC). The order is fixed: Sun, Moon, then planets.
func (s *Set) BodiesAt(t time.Time) []Body {
	jd := julian.TimeToJD(t.UTC())
	var bodies []Body

	if s.cfg.Sun {
		ra, dec := solar.ApparentEquatorial(jd)
		bodies = append(bodies, Body{
			Name:      "Sun",
			RADeg:     ra.Deg(),
			DecDeg:    dec.Deg(),
			Magnitude: sunMagnitude,
		})
	}

	if s.cfg.Moon {
		lon, lat, _ := moonposition.Position(jd)
		obl := coord.NewObliquity(nutation.MeanObliquity(jd))
		eq := new(coord.Equatorial).EclToEq(&coord.Ecliptic{Lon: lon, Lat: lat}, obl)
		bodies = append(bodies, Body{
			Name:      "Moon",
			RADeg:     eq.RA.Deg(),
			DecDeg:    eq.Dec.Deg(),
			Magnitude: moonMagnitude,
		})
	}

	for _, p := range s.planets {
		ra, dec := elliptic.Position(p.v87, s.earth, jd)
		bodies = append(bodies, Body{
			Name:      p.name,
			RADeg:     ra.Deg(),
			DecDeg:    dec.Deg(),
			Magnitude: p.magnitude,
		})
	}

	return bodies
}
