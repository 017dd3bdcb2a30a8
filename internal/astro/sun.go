package astro

import (
	"math"
	"time"
)

// Position is an equatorial (J2000) sky position in degrees.
type Position struct {
	RA  float64
	Dec float64
}

// SunPosition returns the apparent equatorial position of the Sun at t.
// Low-precision almanac series, good to about 0.01 degrees, which is plenty
// for avoidance angles.
func SunPosition(t time.Time) Position {
	T := (julianDate(t) - 2451545.0) / 36525.0

	// Mean longitude and mean anomaly
	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := degToRad(normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T))

	// Equation of center
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	// Apparent longitude, corrected for aberration and nutation
	omega := degToRad(125.04 - 1934.136*T)
	lambda := degToRad(L0 + C - 0.00569 - 0.00478*math.Sin(omega))

	// Obliquity of the ecliptic
	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	eps := degToRad(eps0 + 0.00256*math.Cos(omega))

	ra := normalizeAngle360(radToDeg(math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))))
	dec := radToDeg(math.Asin(math.Sin(eps) * math.Sin(lambda)))

	return Position{RA: ra, Dec: dec}
}

// SunSeparation returns the angle in degrees between the Sun and a target at t.
func SunSeparation(ra, dec float64, t time.Time) float64 {
	sun := SunPosition(t)
	return AngularSeparation(sun.RA, sun.Dec, ra, dec)
}

// AngularSeparation returns the great-circle distance in degrees between two
// sky positions given in degrees.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	d1, d2 := degToRad(dec1), degToRad(dec2)
	dRA := degToRad(ra2 - ra1)
	dDec := d2 - d1

	// Haversine
	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(d1)*math.Cos(d2)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if a > 1 {
		a = 1
	}

	return radToDeg(2 * math.Asin(math.Sqrt(a)))
}

// SunSeparationTier categorizes sun separation for display.
type SunSeparationTier int

const (
	SunSepSafe    SunSeparationTier = iota // at least 45 degrees
	SunSepCaution                          // 20-45 degrees
	SunSepWarning                          // under 20 degrees
)

// GetSunSeparationTier returns the tier for a separation angle. The
// thresholds bracket the Sun avoidance angles of the X-ray missions
// served by ACROSS (Swift 46, NuSTAR and NICER near 45).
func GetSunSeparationTier(sepDeg float64) SunSeparationTier {
	switch {
	case sepDeg < 20:
		return SunSepWarning
	case sepDeg < 45:
		return SunSepCaution
	default:
		return SunSepSafe
	}
}

func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
