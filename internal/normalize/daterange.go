package normalize

import "time"

// Date range problems.
const (
	OrderMessage     = "End date should not be before begin."
	PresenceMessage  = "Begin/End should both be set, or both not set."
	OverspecifiedMsg = "Cannot set both begin and end and length."
)

// CheckDateRange requires end to be no earlier than begin. Equal endpoints
// are allowed.
func CheckDateRange(begin, end time.Time) error {
	if end.Before(begin) {
		return NewValidationError(OrderMessage)
	}
	return nil
}

// CheckOptionalDateRange requires begin and end to be both set or both nil,
// and ordered when set.
func CheckOptionalDateRange(begin, end *time.Time) error {
	switch {
	case begin == nil && end == nil:
		return nil
	case begin == nil || end == nil:
		return NewValidationError(PresenceMessage)
	}
	return CheckDateRange(*begin, *end)
}

// ApplyLength fills in a range from a length of time. With a begin and no
// end, end becomes begin+length. With neither, the range is the length of
// time up to now. A nil length returns the inputs unchanged. Setting begin,
// end and length together is an error.
func ApplyLength(begin, end *time.Time, length any, now time.Time) (*time.Time, *time.Time, error) {
	if length == nil {
		return begin, end, nil
	}
	if begin != nil && end != nil {
		return nil, nil, NewValidationError(OverspecifiedMsg)
	}

	d, err := Duration(length, Day)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case begin != nil:
		e := begin.Add(d)
		return begin, &e, nil
	case end != nil:
		b := end.Add(-d)
		return &b, end, nil
	default:
		e := now.UTC().Truncate(time.Microsecond)
		b := e.Add(-d)
		return &b, &e, nil
	}
}
