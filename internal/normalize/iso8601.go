package normalize

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// isoPattern covers ISO 8601 calendar (extended and basic), week and ordinal
// dates with an optional time of day, fraction and zone designator.
var isoPattern = regexp.MustCompile(`^(?P<year>[+-]?\d{4})` +
	`(?:` +
	`(?:-(?P<month>0[1-9]|1[0-2])(?:-(?P<day>0[1-9]|[12]\d|3[01]))?` +
	`|(?P<bmonth>0[1-9]|1[0-2])(?P<bday>0[1-9]|[12]\d|3[01])` +
	`|-?W(?P<week>[0-4]\d|5[0-3])(?:-?(?P<wday>[1-7]))?` +
	`|-?(?P<ordinal>00[1-9]|0[1-9]\d|[12]\d{2}|3(?:[0-5]\d|6[0-6])))` +
	`(?:[T\s]` +
	`(?:(?P<hour>[01]\d|2[0-3])(?::?(?P<minute>[0-5]\d)(?::?(?P<second>[0-5]\d))?)?(?:[.,](?P<frac>\d+))?` +
	`|(?P<midnight>24)(?::?00(?::?00)?)?(?:[.,]0+)?)` +
	`(?P<zone>[zZ]|(?P<sign>[+-])(?P<zh>[01]\d|2[0-3])(?::?(?P<zm>[0-5]\d))?)?` +
	`)?` +
	`)?$`)

var errNoMatch = errors.New("not an ISO 8601 date")

type isoResult struct {
	t     time.Time
	zoned bool
}

// parseISO8601 parses s. When s carries no zone designator the wall clock is
// interpreted in loc and zoned is false.
func parseISO8601(s string, loc *time.Location) (isoResult, error) {
	m := isoPattern.FindStringSubmatch(s)
	if m == nil {
		return isoResult{}, errNoMatch
	}
	g := func(name string) string {
		return m[isoPattern.SubexpIndex(name)]
	}
	num := func(name string) int {
		n, _ := strconv.Atoi(g(name))
		return n
	}

	year := num("year")
	zone, zoned := loc, false
	switch {
	case g("zone") == "":
	case g("sign") == "":
		zone, zoned = time.UTC, true
	default:
		offset := num("zh")*3600 + num("zm")*60
		if g("sign") == "-" {
			offset = -offset
		}
		zone, zoned = time.FixedZone("", offset), true
	}

	var date time.Time
	switch {
	case g("week") != "":
		week := num("week")
		wday := 1
		if g("wday") != "" {
			wday = num("wday")
		}
		_, weeks := time.Date(year, 12, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
		if week < 1 || week > weeks {
			return isoResult{}, fmt.Errorf("week %d out of range for %d", week, year)
		}
		jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, time.UTC)
		monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
		date = monday.AddDate(0, 0, (week-1)*7+wday-1)
	case g("ordinal") != "":
		ordinal := num("ordinal")
		if days := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC).YearDay(); ordinal > days {
			return isoResult{}, fmt.Errorf("day %d out of range for %d", ordinal, year)
		}
		date = time.Date(year, 1, ordinal, 0, 0, 0, 0, time.UTC)
	default:
		month, day := 1, 1
		switch {
		case g("bmonth") != "":
			month, day = num("bmonth"), num("bday")
		case g("month") != "":
			month = num("month")
			if g("day") != "" {
				day = num("day")
			}
		}
		date = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if date.Day() != day {
			return isoResult{}, fmt.Errorf("day %d out of range for %d-%02d", day, year, month)
		}
	}

	var clock time.Duration
	switch {
	case g("midnight") != "":
		clock = 24 * time.Hour
	case g("hour") != "":
		clock = time.Duration(num("hour")) * time.Hour
		unit := time.Hour
		if g("minute") != "" {
			clock += time.Duration(num("minute")) * time.Minute
			unit = time.Minute
		}
		if g("second") != "" {
			clock += time.Duration(num("second")) * time.Second
			unit = time.Second
		}
		if frac := g("frac"); frac != "" {
			f, _ := strconv.ParseFloat("0."+frac, 64)
			clock += time.Duration(math.Round(f * float64(unit)))
		}
	}

	y, mo, d := date.Date()
	h := int(clock / time.Hour)
	clock -= time.Duration(h) * time.Hour
	mi := int(clock / time.Minute)
	clock -= time.Duration(mi) * time.Minute
	sec := int(clock / time.Second)
	clock -= time.Duration(sec) * time.Second

	// time.Date carries hour 24 into the next day.
	t := time.Date(y, mo, d, h, mi, sec, int(clock), zone)
	return isoResult{t: t, zoned: zoned}, nil
}
