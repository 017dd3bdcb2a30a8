package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// secondser is satisfied by elapsed-time values that report total seconds.
type secondser interface {
	Seconds() float64
}

// Duration converts v to a span of time. Plain numbers and numeric strings
// are taken as a count of unit. time.Duration values and values with a
// Seconds method are divided by 86400 when unit is Day and used as-is
// otherwise, and the result is then read as a day count, so non-day units
// only make sense with plain numbers. Quantity values are converted through
// their own unit. Strings like "36h" or "1d12h" are read as durations.
func Duration(v any, unit Unit) (time.Duration, error) {
	divisor := 1.0
	if unit == Day {
		divisor = 86400
	}

	var days float64
	switch x := v.(type) {
	case Quantity:
		days = x.Days()
	case time.Duration:
		days = x.Seconds() / divisor
	case float64:
		days = x
	case float32:
		days = float64(x)
	case int:
		days = float64(x)
	case int8:
		days = float64(x)
	case int16:
		days = float64(x)
	case int32:
		days = float64(x)
	case int64:
		days = float64(x)
	case uint:
		days = float64(x)
	case uint8:
		days = float64(x)
	case uint16:
		days = float64(x)
	case uint32:
		days = float64(x)
	case uint64:
		days = float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err == nil {
			days = f
			break
		}
		d, derr := str2duration.ParseDuration(strings.TrimSpace(x))
		if derr != nil {
			return 0, durationError(v, unit)
		}
		days = d.Seconds() / divisor
	case secondser:
		days = x.Seconds() / divisor
	default:
		return 0, durationError(v, unit)
	}

	if math.IsNaN(days) || math.IsInf(days, 0) {
		return 0, durationError(v, unit)
	}
	if math.Abs(days) > maxDays {
		return 0, &TypeConversionError{
			Value: v,
			Msg:   fmt.Sprintf("Length of time should be at most %.0f days", math.Floor(maxDays)),
		}
	}
	return time.Duration(math.Round(days * float64(24*time.Hour))), nil
}

// maxDays is the longest span a time.Duration holds.
var maxDays = float64(math.MaxInt64) / float64(24*time.Hour)

func durationError(v any, unit Unit) error {
	return &TypeConversionError{
		Value: v,
		Msg:   "Length of time should be given as a duration, quantity or as a number of " + unit.String(),
	}
}
