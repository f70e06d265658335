// Package transform converts catalog (ICRS equatorial) coordinates into an
// observer's local altitude-azimuth frame.
//
// Sidereal time and the equatorial-to-horizontal rotation are delegated to
// the meeus library; this package only fixes conventions: geographic
// longitude is positive east, azimuth is compass bearing (0 = North,
// clockwise) in [0, 360), altitude is degrees above the horizon in [-90, 90].
package transform

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// Observer is a ground location in geodetic coordinates.
type Observer struct {
	LatDeg float64 // positive north
	LonDeg float64 // positive east
	ElevM  float64 // meters above the ellipsoid
}

// NewObserver validates and returns an observer location.
func NewObserver(latDeg, lonDeg, elevM float64) (Observer, error) {
	if latDeg < -90 || latDeg > 90 {
		return Observer{}, fmt.Errorf("latitude %.4f out of range [-90, 90]", latDeg)
	}
	if lonDeg < -180 || lonDeg > 180 {
		return Observer{}, fmt.Errorf("longitude %.4f out of range [-180, 180]", lonDeg)
	}
	return Observer{LatDeg: latDeg, LonDeg: lonDeg, ElevM: elevM}, nil
}

// Frame is the transform from ICRS equatorial coordinates to one observer's
// horizontal frame at one instant. Immutable once built.
type Frame struct {
	obs   Observer
	t     time.Time
	jd    float64
	st    unit.Time // apparent sidereal time at Greenwich
	coord *globe.Coord
}

// BuildFrame captures the sidereal rotation for the observer at time t.
// The time is interpreted as UTC.
func BuildFrame(obs Observer, t time.Time) Frame {
	t = t.UTC()
	jd := julian.TimeToJD(t)
	return Frame{
		obs: obs,
		t:   t,
		jd:  jd,
		st:  sidereal.Apparent(jd),
		// Meeus convention: geographic longitude positive west.
		coord: &globe.Coord{
			Lat: unit.AngleFromDeg(obs.LatDeg),
			Lon: unit.AngleFromDeg(-obs.LonDeg),
		},
	}
}

// Observer returns the frame's ground location.
func (f Frame) Observer() Observer { return f.obs }

// Time returns the frame's instant in UTC.
func (f Frame) Time() time.Time { return f.t }

// JD returns the frame's Julian Date.
func (f Frame) JD() float64 { return f.jd }

// EqToHorizontal transforms ICRS right ascension and declination (degrees)
// into compass azimuth [0, 360) and altitude [-90, 90] for this frame.
func (f Frame) EqToHorizontal(raDeg, decDeg float64) (azDeg, altDeg float64) {
	eq := &coord.Equatorial{
		RA:  unit.RAFromDeg(raDeg),
		Dec: unit.AngleFromDeg(decDeg),
	}
	hz := new(coord.Horizontal).EqToHz(eq, f.coord, f.st)

	// Meeus measures azimuth westward from south; compass bearing is
	// measured eastward from north.
	azDeg = normalizeAz(hz.Az.Deg() + 180)
	altDeg = hz.Alt.Deg()
	return azDeg, altDeg
}

// normalizeAz wraps an azimuth into [0, 360). The transform degenerates at
// the celestial poles; a non-finite azimuth collapses to 0 so callers always
// see a usable bearing.
func normalizeAz(az float64) float64 {
	if math.IsNaN(az) || math.IsInf(az, 0) {
		return 0
	}
	az = math.Mod(az, 360)
	if az < 0 {
		az += 360
	}
	return az
}
