package transform

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// TEMEPosition is a satellite position in the True Equator Mean Equinox
// frame, as produced by SGP4 (kilometers).
type TEMEPosition struct {
	X, Y, Z float64
}

// TEMEToECEF rotates a TEME position into the Earth-fixed frame at the given
// UTC time, returning ECEF meters.
//
// The rotation uses Greenwich mean sidereal time only (TEME → PEF ≈ ECEF),
// ignoring polar motion and the equation of the equinoxes. The error is tens
// of meters, far below what a sky chart can resolve.
func TEMEToECEF(teme TEMEPosition, t time.Time) (x, y, z float64) {
	gmst := sidereal.Mean(julian.TimeToJD(t.UTC())).Rad()
	cosG := math.Cos(gmst)
	sinG := math.Sin(gmst)

	x = (teme.X*cosG + teme.Y*sinG) * 1000.0
	y = (-teme.X*sinG + teme.Y*cosG) * 1000.0
	z = teme.Z * 1000.0
	return x, y, z
}
