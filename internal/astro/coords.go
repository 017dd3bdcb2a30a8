// Package astro provides the angle and sky math shared by the ACROSS client.
package astro

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// AngleUnit identifies the unit attached to an angular magnitude.
type AngleUnit int

const (
	Degree AngleUnit = iota
	Radian
	HourAngle // 1h = 15 degrees
	ArcMinute
	ArcSecond
)

func (u AngleUnit) String() string {
	switch u {
	case Degree:
		return "deg"
	case Radian:
		return "rad"
	case HourAngle:
		return "hourangle"
	case ArcMinute:
		return "arcmin"
	case ArcSecond:
		return "arcsec"
	default:
		return "unknown"
	}
}

// ParseAngleUnit parses a unit name such as "deg", "rad" or "hourangle".
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees", "d":
		return Degree, nil
	case "rad", "radian", "radians":
		return Radian, nil
	case "hourangle", "hour", "hours", "h":
		return HourAngle, nil
	case "arcmin", "arcminute", "arcminutes":
		return ArcMinute, nil
	case "arcsec", "arcsecond", "arcseconds":
		return ArcSecond, nil
	default:
		return Degree, fmt.Errorf("unknown angle unit %q", s)
	}
}

// ToDegrees converts v expressed in u to degrees.
func (u AngleUnit) ToDegrees(v float64) float64 {
	switch u {
	case Radian:
		return radToDeg(v)
	case HourAngle:
		return v * 15
	case ArcMinute:
		return v / 60
	case ArcSecond:
		return v / 3600
	default:
		return v
	}
}

// julianDate calculates the Julian Date for a given time.
func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
