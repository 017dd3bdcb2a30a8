package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-across/internal/astro"
)

// Angle is an angular magnitude tagged with its unit.
type Angle struct {
	Value float64
	Unit  astro.AngleUnit
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return a.Unit.ToDegrees(a.Value)
}

func (a Angle) String() string {
	return fmt.Sprintf("%g %s", a.Value, a.Unit)
}

// Longitude is an angle in degrees measured along the celestial equator.
type Longitude float64

// Latitude is an angle in degrees measured from the celestial equator.
type Latitude float64

// Unit is a unit of elapsed time.
type Unit int

const (
	Day Unit = iota
	Hour
	Minute
	Second
)

func (u Unit) String() string {
	switch u {
	case Day:
		return "days"
	case Hour:
		return "hours"
	case Minute:
		return "minutes"
	case Second:
		return "seconds"
	default:
		return "unknown"
	}
}

// Seconds returns the length of one u in seconds.
func (u Unit) Seconds() float64 {
	switch u {
	case Day:
		return 86400
	case Hour:
		return 3600
	case Minute:
		return 60
	default:
		return 1
	}
}

// ParseUnit parses a time unit name such as "d", "hours" or "s".
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "day", "days":
		return Day, nil
	case "h", "hr", "hour", "hours":
		return Hour, nil
	case "m", "min", "minute", "minutes":
		return Minute, nil
	case "s", "sec", "second", "seconds":
		return Second, nil
	default:
		return Day, fmt.Errorf("unknown time unit %q", s)
	}
}

// Quantity is a span of time tagged with its unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// Days returns the quantity as a day count.
func (q Quantity) Days() float64 {
	return q.Value * q.Unit.Seconds() / 86400
}

// MissionTime is implemented by spacecraft clock values that map onto UTC.
type MissionTime interface {
	Time() time.Time
}

// SwiftMETEpoch is the zero point of the Swift mission elapsed time clock.
var SwiftMETEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// MET is a mission elapsed time: seconds counted from a mission epoch.
type MET struct {
	Epoch   time.Time
	Seconds float64
}

// SwiftMET returns a MET on the Swift clock.
func SwiftMET(seconds float64) MET {
	return MET{Epoch: SwiftMETEpoch, Seconds: seconds}
}

// Time returns the UTC instant of m.
func (m MET) Time() time.Time {
	return m.Epoch.Add(time.Duration(m.Seconds * float64(time.Second))).UTC()
}
