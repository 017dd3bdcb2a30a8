package schema

import (
	"fmt"
	"strconv"
	"time"
)

// QueryTimeLayout is the layout of timestamps in query strings.
const QueryTimeLayout = "2006-01-02 15:04:05.999999"

// FormatFloat renders f in the shortest form that round-trips.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatTime renders t in UTC for a query string.
func FormatTime(t time.Time) string {
	return t.UTC().Format(QueryTimeLayout)
}

// FormatValue renders a scalar query value. It reports false for nil and
// nil pointers.
func FormatValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return FormatFloat(x), true
	case float32:
		return FormatFloat(float64(x)), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case time.Time:
		return FormatTime(x), true
	case time.Duration:
		return FormatFloat(x.Seconds()), true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case *bool:
		if x == nil {
			return "", false
		}
		return strconv.FormatBool(*x), true
	case *int:
		if x == nil {
			return "", false
		}
		return strconv.Itoa(*x), true
	case *float64:
		if x == nil {
			return "", false
		}
		return FormatFloat(*x), true
	case *time.Time:
		if x == nil {
			return "", false
		}
		return FormatTime(*x), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(v), true
	}
}
