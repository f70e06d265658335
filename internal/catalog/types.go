package catalog

import (
	"fmt"
	"math"
	"time"
)

// HipparcosEpochJD is the Julian Date of J1991.25, the catalog position epoch.
const HipparcosEpochJD = 2448349.0625

// Star is a single catalog entry in ICRS equatorial coordinates at epoch J1991.25.
type Star struct {
	HIP       int     // Hipparcos identifier
	RADeg     float64 // right ascension, degrees
	DecDeg    float64 // declination, degrees
	Magnitude float64 // visual magnitude (smaller = brighter)
	PMRA      float64 // proper motion in RA*cos(dec), mas/yr
	PMDec     float64 // proper motion in Dec, mas/yr
}

// ID returns the star's catalog designation.
func (s Star) ID() string {
	return fmt.Sprintf("HIP %d", s.HIP)
}

// PropagatedTo returns RA/Dec in degrees with proper motion applied linearly
// over the given number of Julian years since the catalog epoch.
func (s Star) PropagatedTo(years float64) (raDeg, decDeg float64) {
	raDeg = s.RADeg
	decDeg = s.DecDeg + s.PMDec*years/3.6e6

	// PMRA already carries the cos(dec) factor; divide it back out before
	// adding to RA. Skip near the poles where the factor degenerates.
	cosDec := cosDeg(s.DecDeg)
	if cosDec > 1e-6 {
		raDeg += s.PMRA * years / 3.6e6 / cosDec
	}
	return raDeg, decDeg
}

func cosDeg(d float64) float64 {
	return math.Cos(d * math.Pi / 180.0)
}

// Dataset is a loaded, magnitude-filtered star catalog.
type Dataset struct {
	Source    string
	FetchedAt time.Time
	MagLimit  float64
	Stars     []Star
}
