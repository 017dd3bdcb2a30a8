package normalize

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-across/internal/logging"
)

func utc(y int, m time.Month, d, h, mi, s, ns int) time.Time {
	return time.Date(y, m, d, h, mi, s, ns, time.UTC)
}

func assertUTC(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
	assert.Equal(t, time.UTC, got.Location())
}

// testParser fixes the local zone at UTC+3 and captures warnings.
func testParser() (TimeParser, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logging.New(logging.LevelWarn)
	l.SetOutput(&buf)
	return TimeParser{Location: time.FixedZone("TEST", 3*3600), Logger: l}, &buf
}

func TestTimestampStrings(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  time.Time
		warns bool
	}{
		{"date and time", "2023-06-15 12:30:00", utc(2023, 6, 15, 12, 30, 0, 0), false},
		{"fractional seconds", "2023-06-15 12:30:00.123456", utc(2023, 6, 15, 12, 30, 0, 123456000), false},
		{"fraction truncated to microseconds", "2023-06-15 12:30:00.1234569", utc(2023, 6, 15, 12, 30, 0, 123456000), false},
		{"short fraction", "2023-06-15 12:30:00.5", utc(2023, 6, 15, 12, 30, 0, 500000000), false},
		{"single digit month and hour", "2023-6-05 9:05:07", utc(2023, 6, 5, 9, 5, 7, 0), false},
		{"date only", "2023-06-15", utc(2023, 6, 15, 0, 0, 0, 0), false},
		{"iso with offset", "2023-06-15T12:30:00+02:00", utc(2023, 6, 15, 10, 30, 0, 0), false},
		{"iso zulu", "2023-06-15T12:30:00Z", utc(2023, 6, 15, 12, 30, 0, 0), false},
		{"iso negative hour offset", "2023-06-15T12:30-05", utc(2023, 6, 15, 17, 30, 0, 0), false},
		{"iso basic", "20230615T123000Z", utc(2023, 6, 15, 12, 30, 0, 0), false},
		{"iso comma fraction", "2023-06-15T12:30:00,25Z", utc(2023, 6, 15, 12, 30, 0, 250000000), false},
		{"iso fractional hour", "2023-06-15T12.5Z", utc(2023, 6, 15, 12, 30, 0, 0), false},
		{"iso week date", "2023-W24-4T00:00Z", utc(2023, 6, 15, 0, 0, 0, 0), false},
		{"iso ordinal date", "2023-166T06:00Z", utc(2023, 6, 15, 6, 0, 0, 0), false},
		{"iso naive in local zone", "2023-06-15T12:30:00", utc(2023, 6, 15, 9, 30, 0, 0), true},
		{"iso naive midnight end of day", "2023-06-15T24:00", utc(2023, 6, 15, 21, 0, 0, 0), true},
		{"iso month only", "2023-06", utc(2023, 5, 31, 21, 0, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, buf := testParser()
			got, err := p.Timestamp(tt.in)
			require.NoError(t, err)
			assertUTC(t, tt.want, got)
			if tt.warns {
				assert.Contains(t, buf.String(), "ISO8601 formatted dates should be supplied with timezone")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestTimestampRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"garbage", "not-a-date"},
		{"empty", ""},
		{"month 13", "2023-13-01"},
		{"february 30", "2023-02-30"},
		{"february 30 with time", "2023-02-30 10:00:00"},
		{"week 53 in a 52 week year", "2023-W53-1"},
		{"day 366 in a common year", "2023-366"},
		{"24:30", "2023-06-15T24:30"},
		{"year and month without separator", "202306"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := testParser()
			_, err := p.Timestamp(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat), "got %v", err)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, AcceptedFormats, fe.Accepted)
		})
	}
}

func TestTimestampLongWeekAndLeapYears(t *testing.T) {
	p, _ := testParser()

	got, err := p.Timestamp("2020-W53-7T00:00Z")
	require.NoError(t, err)
	assertUTC(t, utc(2021, 1, 3, 0, 0, 0, 0), got)

	got, err = p.Timestamp("2024-366T00:00Z")
	require.NoError(t, err)
	assertUTC(t, utc(2024, 12, 31, 0, 0, 0, 0), got)
}

func TestTimestampTyped(t *testing.T) {
	aware := time.Date(2023, 6, 15, 12, 30, 0, 0, time.FixedZone("", 2*3600))
	withNanos := utc(2023, 6, 15, 12, 30, 0, 123456789)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"civil date", civil.Date{Year: 2023, Month: 6, Day: 15}, utc(2023, 6, 15, 0, 0, 0, 0)},
		{"civil datetime", civil.DateTime{
			Date: civil.Date{Year: 2023, Month: 6, Day: 15},
			Time: civil.Time{Hour: 12, Minute: 30},
		}, utc(2023, 6, 15, 12, 30, 0, 0)},
		{"aware time", aware, utc(2023, 6, 15, 10, 30, 0, 0)},
		{"utc time", utc(2023, 6, 15, 12, 30, 0, 0), utc(2023, 6, 15, 12, 30, 0, 0)},
		{"time pointer", &aware, utc(2023, 6, 15, 10, 30, 0, 0)},
		{"nanoseconds truncated", withNanos, utc(2023, 6, 15, 12, 30, 0, 123456000)},
		{"swift met epoch", SwiftMET(0), utc(2001, 1, 1, 0, 0, 0, 0)},
		{"swift met", SwiftMET(86400.5), utc(2001, 1, 2, 0, 0, 0, 500000000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Timestamp(tt.in)
			require.NoError(t, err)
			assertUTC(t, tt.want, got)
		})
	}
}

func TestTimestampTypeErrors(t *testing.T) {
	var nilTime *time.Time
	for _, in := range []any{nil, nilTime, 12345, 3.5, []string{"2023-06-15"}} {
		_, err := Timestamp(in)
		require.Error(t, err, "%v", in)
		assert.True(t, errors.Is(err, ErrTypeConversion), "%T: %v", in, err)
	}
}
