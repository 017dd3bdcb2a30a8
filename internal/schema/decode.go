package schema

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/litescript/ls-across/internal/normalize"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	wireTimeType = reflect.TypeOf(Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	float64Type  = reflect.TypeOf(float64(0))
)

// Decoder turns destructured mappings (CLI flags, request files) into typed
// requests, running every field through the matching normalizer.
type Decoder struct {
	Times normalize.TimeParser
}

// Decode decodes input into out with a zero Decoder.
func Decode(input map[string]any, out any) error {
	return Decoder{}.Decode(input, out)
}

// Decode fills out, a pointer to a struct with json tags, from input.
// time.Time and Time fields go through the timestamp normalizer, time.Duration fields
// through the duration normalizer in days, and float64 fields accept angles
// and numeric strings. Embedded structs are flattened. Unknown keys are an
// error.
func (d Decoder) Decode(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			d.timeHook,
			d.wireTimeHook,
			durationHook,
			coordinateHook,
		),
		ErrorUnused:      true,
		Squash:           true,
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func (d Decoder) timeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType || data == nil {
		return data, nil
	}
	return d.Times.Timestamp(data)
}

func (d Decoder) wireTimeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != wireTimeType || data == nil {
		return data, nil
	}
	if t, ok := data.(Time); ok {
		return t, nil
	}
	t, err := d.Times.Timestamp(data)
	if err != nil {
		return nil, err
	}
	return NewTime(t), nil
}

func durationHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType || data == nil {
		return data, nil
	}
	return normalize.Duration(data, normalize.Day)
}

func coordinateHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != float64Type {
		return data, nil
	}
	switch data.(type) {
	case string, normalize.Angle, *normalize.Angle, normalize.Longitude, normalize.Latitude:
		f, err := normalize.Coordinate(data)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, nil
		}
		return *f, nil
	}
	return data, nil
}
