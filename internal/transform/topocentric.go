package transform

import "math"

// WGS-84 ellipsoid parameters.
const (
	wgs84A  = 6378137.0             // semi-major axis (meters)
	wgs84F  = 1.0 / 298.257223563   // flattening
	wgs84E2 = wgs84F * (2 - wgs84F) // first eccentricity squared
)

// ECEFPosition is an observer location in Earth-centered Earth-fixed
// coordinates, precomputed once so it can be reused across many satellite
// lookups at different times.
type ECEFPosition struct {
	LatRad, LonRad float64
	X, Y, Z        float64 // meters
}

// LookAngles holds azimuth, altitude, and range from an observer to a
// nearby object such as a satellite.
type LookAngles struct {
	AzDeg   float64 // compass bearing, 0 = North, clockwise
	AltDeg  float64 // 0 = horizon, 90 = zenith
	RangeKm float64
}

// ECEFFromObserver converts a geodetic observer location to ECEF meters.
func ECEFFromObserver(obs Observer) ECEFPosition {
	lat := obs.LatDeg * math.Pi / 180.0
	lon := obs.LonDeg * math.Pi / 180.0

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Radius of curvature in the prime vertical.
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return ECEFPosition{
		LatRad: lat,
		LonRad: lon,
		X:      (n + obs.ElevM) * cosLat * math.Cos(lon),
		Y:      (n + obs.ElevM) * cosLat * math.Sin(lon),
		Z:      (n*(1-wgs84E2) + obs.ElevM) * sinLat,
	}
}

// ECEFToLookAngles computes azimuth, altitude, and range from an observer to
// a target given in ECEF meters, via the SEZ (South-East-Zenith) topocentric
// rotation. Unlike the star transform this accounts for the finite distance
// of the target.
func ECEFToLookAngles(obs ECEFPosition, x, y, z float64) LookAngles {
	rx := x - obs.X
	ry := y - obs.Y
	rz := z - obs.Z

	sinLat := math.Sin(obs.LatRad)
	cosLat := math.Cos(obs.LatRad)
	sinLon := math.Sin(obs.LonRad)
	cosLon := math.Cos(obs.LonRad)

	south := sinLat*cosLon*rx + sinLat*sinLon*ry - cosLat*rz
	east := -sinLon*rx + cosLon*ry
	zenith := cosLat*cosLon*rx + cosLat*sinLon*ry + sinLat*rz

	rangeMag := math.Sqrt(south*south + east*east + zenith*zenith)

	alt := math.Asin(zenith / rangeMag)

	// In SEZ, North is the -South direction.
	az := math.Atan2(east, -south)

	return LookAngles{
		AzDeg:   normalizeAz(az * 180.0 / math.Pi),
		AltDeg:  alt * 180.0 / math.Pi,
		RangeKm: rangeMag / 1000.0,
	}
}
