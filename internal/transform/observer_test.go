package transform

import (
	"math"
	"testing"
	"time"
)

func TestNewObserver_Validation(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"new york", 40.7128, -74.0060, false},
		{"north pole", 90, 0, false},
		{"south pole", -90, 0, false},
		{"date line east", 0, 180, false},
		{"date line west", 0, -180, false},
		{"latitude too high", 90.01, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 180.5, true},
		{"longitude too low", 0, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewObserver(tt.lat, tt.lon, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewObserver(%.2f, %.2f) error = %v, wantErr %v", tt.lat, tt.lon, err, tt.wantErr)
			}
		})
	}
}

// TestEqToHorizontal_Ranges checks that every combination of location, time,
// and sky position produces altitude in [-90, 90] and azimuth in [0, 360).
func TestEqToHorizontal_Ranges(t *testing.T) {
	lats := []float64{-90, -45, 0, 40.7128, 89, 90}
	lons := []float64{-180, -74.006, 0, 139.65, 180}
	times := []time.Time{
		time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 21, 3, 30, 0, 0, time.UTC),
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	positions := [][2]float64{
		{0, 0}, {101.287, -16.716}, {279.235, 38.784}, {37.946, 89.264}, {180, -89.9},
	}

	for _, lat := range lats {
		for _, lon := range lons {
			obs, err := NewObserver(lat, lon, 0)
			if err != nil {
				t.Fatalf("NewObserver(%.1f, %.1f): %v", lat, lon, err)
			}
			for _, tm := range times {
				frame := BuildFrame(obs, tm)
				for _, pos := range positions {
					az, alt := frame.EqToHorizontal(pos[0], pos[1])
					if alt < -90 || alt > 90 || math.IsNaN(alt) {
						t.Errorf("lat=%.1f lon=%.1f ra=%.1f dec=%.1f: altitude %v out of [-90, 90]",
							lat, lon, pos[0], pos[1], alt)
					}
					if az < 0 || az >= 360 || math.IsNaN(az) {
						t.Errorf("lat=%.1f lon=%.1f ra=%.1f dec=%.1f: azimuth %v out of [0, 360)",
							lat, lon, pos[0], pos[1], az)
					}
				}
			}
		}
	}
}

// TestEqToHorizontal_PoleAltitudeEqualsDeclination exploits the geometry of
// the celestial pole: seen from the north pole, a star's altitude equals its
// declination at any time of day.
func TestEqToHorizontal_PoleAltitudeEqualsDeclination(t *testing.T) {
	obs, _ := NewObserver(90, 0, 0)
	decs := []float64{-60, -10, 0, 25, 89.264}

	for hour := 0; hour < 24; hour += 6 {
		frame := BuildFrame(obs, time.Date(2024, 6, 15, hour, 0, 0, 0, time.UTC))
		for _, dec := range decs {
			az, alt := frame.EqToHorizontal(123.4, dec)
			if math.Abs(alt-dec) > 0.01 {
				t.Errorf("hour=%d dec=%.3f: altitude = %.4f, want declination", hour, dec, alt)
			}
			if math.IsNaN(az) || az < 0 || az >= 360 {
				t.Errorf("hour=%d dec=%.3f: degenerate azimuth %v not normalized", hour, dec, az)
			}
		}
	}
}

// TestEqToHorizontal_CompassConvention places stars next to the celestial
// poles: from the equator the north celestial pole sits due north on the
// horizon, the south celestial pole due south.
func TestEqToHorizontal_CompassConvention(t *testing.T) {
	obs, _ := NewObserver(0, 0, 0)
	frame := BuildFrame(obs, time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC))

	azN, altN := frame.EqToHorizontal(50, 89.9)
	if azN > 5 && azN < 355 {
		t.Errorf("near-pole star azimuth = %.2f, want near 0 (north)", azN)
	}
	if math.Abs(altN) > 1 {
		t.Errorf("near-pole star altitude from equator = %.2f, want near horizon", altN)
	}

	azS, _ := frame.EqToHorizontal(50, -89.9)
	if math.Abs(azS-180) > 5 {
		t.Errorf("southern near-pole star azimuth = %.2f, want near 180", azS)
	}
}

// TestEqToHorizontal_Circumpolar checks that Polaris never sets for a
// mid-northern observer over a full day.
func TestEqToHorizontal_Circumpolar(t *testing.T) {
	obs, _ := NewObserver(40.7128, -74.006, 0)
	for hour := 0; hour < 24; hour++ {
		frame := BuildFrame(obs, time.Date(2024, 6, 15, hour, 0, 0, 0, time.UTC))
		_, alt := frame.EqToHorizontal(37.946, 89.264)
		if alt <= 0 {
			t.Errorf("hour=%d: Polaris altitude = %.2f, should be circumpolar from 40.7N", hour, alt)
		}
	}
}

func TestEqToHorizontal_Deterministic(t *testing.T) {
	obs, _ := NewObserver(40.7128, -74.006, 10)
	tm := time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC)

	f1 := BuildFrame(obs, tm)
	f2 := BuildFrame(obs, tm)

	az1, alt1 := f1.EqToHorizontal(101.287, -16.716)
	az2, alt2 := f2.EqToHorizontal(101.287, -16.716)
	if az1 != az2 || alt1 != alt2 {
		t.Errorf("repeated transform differs: (%v, %v) vs (%v, %v)", az1, alt1, az2, alt2)
	}
}

func TestNormalizeAz(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359.9, 359.9},
		{360, 0},
		{-90, 270},
		{540, 180},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := normalizeAz(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeAz(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
