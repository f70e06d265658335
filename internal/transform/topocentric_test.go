package transform

import (
	"math"
	"testing"
	"time"
)

func ecefMag(p ECEFPosition) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

func TestECEFFromObserver_Magnitude(t *testing.T) {
	// Sea-level observer at the equator sits at the WGS-84 equatorial radius.
	eq := ECEFFromObserver(Observer{LatDeg: 0, LonDeg: 0})
	if math.Abs(ecefMag(eq)-6378137.0) > 1.0 {
		t.Errorf("equatorial ECEF magnitude = %.1f m, want ~6378137 m", ecefMag(eq))
	}

	// At the pole the magnitude is the polar radius.
	pole := ECEFFromObserver(Observer{LatDeg: 90, LonDeg: 0})
	if math.Abs(ecefMag(pole)-6356752.3) > 1.0 {
		t.Errorf("polar ECEF magnitude = %.1f m, want ~6356752 m", ecefMag(pole))
	}
}

func TestECEFFromObserver_Elevation(t *testing.T) {
	low := ECEFFromObserver(Observer{LatDeg: 0, LonDeg: 0, ElevM: 0})
	high := ECEFFromObserver(Observer{LatDeg: 0, LonDeg: 0, ElevM: 100})

	diff := ecefMag(high) - ecefMag(low)
	if math.Abs(diff-100.0) > 0.01 {
		t.Errorf("elevation difference = %.3f m, want 100 m", diff)
	}
}

func TestECEFToLookAngles_Overhead(t *testing.T) {
	obs := ECEFFromObserver(Observer{LatDeg: 0, LonDeg: 0})

	// Target straight up from the equator/prime meridian at 400 km.
	la := ECEFToLookAngles(obs, obs.X+400000, obs.Y, obs.Z)

	if math.Abs(la.AltDeg-90.0) > 0.1 {
		t.Errorf("overhead altitude = %.2f deg, want ~90", la.AltDeg)
	}
	if math.Abs(la.RangeKm-400.0) > 1.0 {
		t.Errorf("overhead range = %.2f km, want ~400", la.RangeKm)
	}
}

func TestECEFToLookAngles_Directions(t *testing.T) {
	obs := ECEFFromObserver(Observer{LatDeg: 0, LonDeg: 0})

	tests := []struct {
		name   string
		target Observer
		wantAz float64
		tol    float64
	}{
		{"north", Observer{LatDeg: 10, LonDeg: 0, ElevM: 400000}, 0, 30},
		{"east", Observer{LatDeg: 0, LonDeg: 10, ElevM: 400000}, 90, 30},
		{"south", Observer{LatDeg: -10, LonDeg: 0, ElevM: 400000}, 180, 30},
		{"west", Observer{LatDeg: 0, LonDeg: -10, ElevM: 400000}, 270, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ECEFFromObserver(tt.target)
			la := ECEFToLookAngles(obs, p.X, p.Y, p.Z)

			diff := math.Abs(la.AzDeg - tt.wantAz)
			if diff > 180 {
				diff = 360 - diff
			}
			if diff > tt.tol {
				t.Errorf("azimuth = %.2f deg, want near %.0f", la.AzDeg, tt.wantAz)
			}
			if la.AzDeg < 0 || la.AzDeg >= 360 {
				t.Errorf("azimuth %.2f not normalized to [0, 360)", la.AzDeg)
			}
		})
	}
}

func TestTEMEToECEF_PreservesMagnitude(t *testing.T) {
	teme := TEMEPosition{X: 4000, Y: -5000, Z: 1500} // km
	tm := time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC)

	x, y, z := TEMEToECEF(teme, tm)

	wantMag := math.Sqrt(teme.X*teme.X+teme.Y*teme.Y+teme.Z*teme.Z) * 1000
	gotMag := math.Sqrt(x*x + y*y + z*z)
	if math.Abs(gotMag-wantMag) > 1e-3 {
		t.Errorf("rotation changed magnitude: got %.3f m, want %.3f m", gotMag, wantMag)
	}

	// The GMST rotation is about the Z axis.
	if math.Abs(z-teme.Z*1000) > 1e-6 {
		t.Errorf("z changed under Z-axis rotation: got %.6f, want %.6f", z, teme.Z*1000)
	}
}
