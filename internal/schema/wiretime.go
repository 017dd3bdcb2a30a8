package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// WireTimeLayout is the layout of timestamps in JSON bodies.
const WireTimeLayout = "2006-01-02T15:04:05.999999"

var wireLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Time is a timestamp as the ACROSS API sends it. Timestamps without a zone
// are UTC.
type Time struct {
	time.Time
}

// NewTime wraps t in UTC.
func NewTime(t time.Time) Time {
	return Time{Time: t.UTC()}
}

// ParseWireTime parses s with the layouts the API uses.
func ParseWireTime(s string) (time.Time, error) {
	for _, layout := range wireLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse time %q", s)
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time should be a string: %w", err)
	}
	parsed, err := ParseWireTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(WireTimeLayout))
}

func (t Time) String() string {
	return t.UTC().Format(WireTimeLayout)
}
