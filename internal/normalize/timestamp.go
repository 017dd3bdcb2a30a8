package normalize

import (
	"errors"
	"regexp"
	"time"

	"cloud.google.com/go/civil"

	"github.com/litescript/ls-across/internal/logging"
)

// NaiveZoneWarning is logged when an ISO 8601 string has no zone designator.
const NaiveZoneWarning = "ISO8601 formatted dates should be supplied with timezone. " +
	"ISO8601 dates with no timezone will be assumed to be localtime and then converted to UTC."

// AcceptedFormats lists the textual timestamp formats, in match order.
var AcceptedFormats = []string{"YYYY-MM-DD HH:MM:SS[.ffffff]", "YYYY-MM-DD", "ISO8601"}

var (
	datetimePattern = regexp.MustCompile(`^[0-2]\d{3}-(0?[1-9]|1[012])-([0][1-9]|[1-2][0-9]|3[0-1]) ([0-9]:|[0-1][0-9]:|2[0-3]:)[0-5][0-9]:[0-5][0-9]+(\.\d+)?$`)
	datePattern     = regexp.MustCompile(`^[0-2]\d{3}-(0?[1-9]|1[012])-([0][1-9]|[1-2][0-9]|3[0-1])$`)
)

// Fractional seconds after the seconds field are accepted by time.Parse
// without being named in the layout.
const (
	datetimeLayout = "2006-1-2 15:04:05"
	dateLayout     = "2006-1-2"
)

var defaultLogger = logging.New(logging.LevelWarn)

// TimeParser converts timestamp inputs to UTC. The zero value interprets
// zone-less ISO 8601 strings in time.Local and warns on stderr.
type TimeParser struct {
	// Location is the zone assumed for ISO 8601 strings without one.
	Location *time.Location
	// Logger receives the naive-zone warning.
	Logger *logging.Logger
}

// Timestamp normalizes v with the zero TimeParser.
func Timestamp(v any) (time.Time, error) {
	return TimeParser{}.Timestamp(v)
}

// Timestamp converts v to a UTC time truncated to the microsecond.
//
// Strings are tried against, in order, "YYYY-MM-DD HH:MM:SS[.f]",
// "YYYY-MM-DD" and ISO 8601. civil.Date values become midnight,
// civil.DateTime values are taken as UTC wall clocks, time.Time values are
// converted to UTC and MissionTime values yield their instant.
func (p TimeParser) Timestamp(v any) (time.Time, error) {
	var t time.Time
	switch x := v.(type) {
	case string:
		parsed, err := p.parseString(x)
		if err != nil {
			return time.Time{}, err
		}
		t = parsed
	case civil.Date:
		t = x.In(time.UTC)
	case civil.DateTime:
		t = x.In(time.UTC)
	case time.Time:
		t = x
	case *time.Time:
		if x == nil {
			return time.Time{}, &TypeConversionError{Value: v, Msg: "DateTime should not be nil"}
		}
		t = *x
	case MissionTime:
		t = x.Time()
	default:
		return time.Time{}, &TypeConversionError{
			Value: v,
			Msg:   `DateTime should be given as a time.Time, date, mission time, or as string of format "YYYY-MM-DD HH:MM:SS"`,
		}
	}
	return t.UTC().Truncate(time.Microsecond), nil
}

func (p TimeParser) parseString(s string) (time.Time, error) {
	switch {
	case datetimePattern.MatchString(s):
		t, err := time.Parse(datetimeLayout, s)
		if err != nil {
			return time.Time{}, &FormatError{Input: s, Accepted: AcceptedFormats, Err: err}
		}
		return t, nil
	case datePattern.MatchString(s):
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, &FormatError{Input: s, Accepted: AcceptedFormats, Err: err}
		}
		return t, nil
	}

	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	res, err := parseISO8601(s, loc)
	if errors.Is(err, errNoMatch) {
		return time.Time{}, &FormatError{Input: s, Accepted: AcceptedFormats}
	}
	if err != nil {
		return time.Time{}, &FormatError{Input: s, Accepted: AcceptedFormats, Err: err}
	}
	if !res.zoned {
		p.logger().Warn(NaiveZoneWarning)
	}
	return res.t, nil
}

func (p TimeParser) logger() *logging.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return defaultLogger
}
