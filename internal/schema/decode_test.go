package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-across/internal/astro"
	"github.com/litescript/ls-across/internal/logging"
	"github.com/litescript/ls-across/internal/normalize"
)

type sampleRequest struct {
	Target
	OptionalDateRange
	Length   time.Duration `json:"length"`
	Exposure float64       `json:"exposure" validate:"gt=0"`
	HiRes    bool          `json:"hires"`
	Limit    int           `json:"limit" validate:"gte=0,lte=100"`
	Mode     string        `json:"mode,omitempty" validate:"omitempty,oneof=WT PC"`
	Roll     float64       `json:"roll" validate:"ra"`
}

func TestDecode(t *testing.T) {
	var req sampleRequest
	err := Decode(map[string]any{
		"name":     "Crab",
		"ra":       normalize.Angle{Value: 5.5, Unit: astro.HourAngle},
		"dec":      "22.0145",
		"begin":    "2023-06-15",
		"end":      "2023-06-15T12:30:00+02:00",
		"length":   "1.5",
		"exposure": "200",
		"hires":    "true",
		"limit":    10,
		"mode":     "WT",
	}, &req)
	require.NoError(t, err)

	assert.Equal(t, "Crab", req.Name)
	require.NotNil(t, req.RA)
	assert.InDelta(t, 82.5, *req.RA, 1e-9)
	assert.InDelta(t, 22.0145, *req.Dec, 1e-9)
	require.NotNil(t, req.Begin)
	assert.True(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC).Equal(*req.Begin))
	assert.True(t, time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC).Equal(*req.End))
	assert.Equal(t, 36*time.Hour, req.Length)
	assert.Equal(t, 200.0, req.Exposure)
	assert.True(t, req.HiRes)
	assert.Equal(t, 10, req.Limit)
}

func TestDecodeLeavesOptionalFieldsNil(t *testing.T) {
	var req sampleRequest
	require.NoError(t, Decode(map[string]any{"name": "Crab", "ra": nil}, &req))
	assert.Nil(t, req.RA)
	assert.Nil(t, req.Begin)
	assert.Nil(t, req.End)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		kind  error
	}{
		{"bad timestamp", map[string]any{"begin": "yesterday"}, normalize.ErrFormat},
		{"bad coordinate", map[string]any{"ra": "north"}, normalize.ErrTypeConversion},
		{"bad length", map[string]any{"length": "a while"}, normalize.ErrTypeConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req sampleRequest
			err := Decode(tt.input, &req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	var req sampleRequest
	err := Decode(map[string]any{"colour": "blue"}, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestDecoderUsesItsTimeParser(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.LevelWarn)
	l.SetOutput(&buf)
	d := Decoder{Times: normalize.TimeParser{Location: time.FixedZone("", -4*3600), Logger: l}}

	var req sampleRequest
	require.NoError(t, d.Decode(map[string]any{"begin": "2023-06-15T08:00:00", "end": "2023-06-15T09:00:00"}, &req))
	assert.True(t, time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC).Equal(*req.Begin))
	assert.Contains(t, buf.String(), "ISO8601 formatted dates should be supplied with timezone")
}

type wireEntry struct {
	Begin Time    `json:"begin"`
	End   Time    `json:"end"`
	RA    float64 `json:"ra"`
}

func TestDecodeWireTime(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.LevelWarn)
	l.SetOutput(&buf)
	d := Decoder{Times: normalize.TimeParser{Location: time.FixedZone("", 3*3600), Logger: l}}

	var e wireEntry
	require.NoError(t, d.Decode(map[string]any{
		"begin": "2023-06-15T12:30:00",
		"end":   "2023-W24-4T10:00Z",
		"ra":    83.6,
	}, &e))
	assert.True(t, time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC).Equal(e.Begin.Time))
	assert.True(t, time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC).Equal(e.End.Time))
	assert.Equal(t, time.UTC, e.Begin.Location())
	assert.Contains(t, buf.String(), "ISO8601 formatted dates should be supplied with timezone")

	var bad wireEntry
	err := d.Decode(map[string]any{"begin": "soon"}, &bad)
	assert.True(t, errors.Is(err, normalize.ErrFormat), "%v", err)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		req  sampleRequest
		want []string
	}{
		{"valid", sampleRequest{Exposure: 1, Limit: 5, Mode: "PC", Roll: 10}, nil},
		{"exposure", sampleRequest{Exposure: 0}, []string{"exposure should be greater than 0."}},
		{"limit", sampleRequest{Exposure: 1, Limit: 101}, []string{"limit should be at most 100."}},
		{"mode", sampleRequest{Exposure: 1, Mode: "IM"}, []string{"mode should be one of WT, PC."}},
		{"roll", sampleRequest{Exposure: 1, Roll: 400}, []string{normalize.RangeMessage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, problemsOf(t, err))
		})
	}
}

func TestWireTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2023-06-15T12:30:00"`, time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC)},
		{`"2023-06-15T12:30:00.123456"`, time.Date(2023, 6, 15, 12, 30, 0, 123456000, time.UTC)},
		{`"2023-06-15T12:30:00+02:00"`, time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)},
		{`"2023-06-15 01:02:03"`, time.Date(2023, 6, 15, 1, 2, 3, 0, time.UTC)},
		{`"2023-06-15"`, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Time
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.True(t, tt.want.Equal(got.Time), "got %s", got)
		})
	}

	var null Time
	require.NoError(t, json.Unmarshal([]byte("null"), &null))
	assert.True(t, null.IsZero())

	var bad Time
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`12`), &bad))

	out, err := json.Marshal(struct {
		At   Time `json:"at"`
		Zero Time `json:"zero"`
	}{At: NewTime(time.Date(2023, 6, 15, 12, 30, 0, 500000000, time.FixedZone("", 3600)))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2023-06-15T11:30:00.5","zero":null}`, string(out))
}
