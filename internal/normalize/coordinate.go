package normalize

import (
	"strconv"
	"strings"
)

// RangeMessage is the problem reported for an out-of-range coordinate.
const RangeMessage = "RA/Dec not in valid range."

// Coordinate converts a right ascension or declination given as a number,
// numeric string, Angle, Longitude or Latitude to degrees. A nil input
// yields a nil result.
func Coordinate(v any) (*float64, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *float64:
		if x == nil {
			return nil, nil
		}
		f = *x
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case Angle:
		f = x.Degrees()
	case *Angle:
		if x == nil {
			return nil, nil
		}
		f = x.Degrees()
	case Longitude:
		f = float64(x)
	case Latitude:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, &TypeConversionError{Value: v, Msg: "Coordinate " + strconv.Quote(x) + " is not a number or angle"}
		}
		f = parsed
	default:
		return nil, &TypeConversionError{Value: v, Msg: "Coordinate should be a number, numeric string or angle"}
	}
	return &f, nil
}

// InRange reports whether ra and dec lie in 0 <= ra < 360, -90 <= dec <= 90.
func InRange(ra, dec float64) bool {
	return ra >= 0 && ra < 360 && dec >= -90 && dec <= 90
}

// CheckCoordinate validates an RA/Dec pair. The check is skipped when either
// component is unset.
func CheckCoordinate(ra, dec *float64) error {
	if ra == nil || dec == nil {
		return nil
	}
	if !InRange(*ra, *dec) {
		return NewValidationError(RangeMessage)
	}
	return nil
}
