// Package schema builds validated ACROSS requests out of composable parts.
//
// A request is a list of Parts. Build checks every part, collects all the
// problems into one normalize.ValidationError and only then encodes the
// query, so nothing reaches the network until the whole request is valid.
package schema

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/litescript/ls-across/internal/normalize"
)

// Problem messages reported by parts.
const (
	CoordPresenceMessage = "RA/Dec should both be set, or both not set."
	CredentialsMessage   = "api_key required if username is set."
	TargetMessage        = "Target name or RA/Dec should be given."
)

// AnonymousUser is the username that needs no api_key.
const AnonymousUser = "anonymous"

// Problems accumulates validation failures. The zero value is ready to use.
type Problems struct {
	list []string
}

// Add records msg unless it is already recorded.
func (p *Problems) Add(msg string) {
	for _, m := range p.list {
		if m == msg {
			return
		}
	}
	p.list = append(p.list, msg)
}

// Addf records a formatted problem.
func (p *Problems) Addf(format string, args ...any) {
	p.Add(fmt.Sprintf(format, args...))
}

// AddErr records err. The individual problems of a ValidationError are
// recorded separately.
func (p *Problems) AddErr(err error) {
	if err == nil {
		return
	}
	var ve *normalize.ValidationError
	if errors.As(err, &ve) {
		for _, m := range ve.Problems {
			p.Add(m)
		}
		return
	}
	p.Add(err.Error())
}

// Len returns the number of recorded problems.
func (p *Problems) Len() int {
	return len(p.list)
}

// Err returns the recorded problems as a ValidationError, or nil.
func (p *Problems) Err() error {
	if len(p.list) == 0 {
		return nil
	}
	return normalize.NewValidationError(p.list...)
}

// Part is one piece of a request.
type Part interface {
	Check(p *Problems)
	Encode(q url.Values)
}

// Build checks parts and, if they are all valid, encodes them into one query.
func Build(parts ...Part) (url.Values, error) {
	var p Problems
	for _, part := range parts {
		if part != nil {
			part.Check(&p)
		}
	}
	if err := p.Err(); err != nil {
		return nil, err
	}

	q := url.Values{}
	for _, part := range parts {
		if part != nil {
			part.Encode(q)
		}
	}
	return q, nil
}

// Coord is a required sky position in degrees.
type Coord struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
}

func (c Coord) Check(p *Problems) {
	p.AddErr(normalize.CheckCoordinate(&c.RA, &c.Dec))
}

func (c Coord) Encode(q url.Values) {
	q.Set("ra", FormatFloat(c.RA))
	q.Set("dec", FormatFloat(c.Dec))
}

// OptionalCoord is a sky position that may be left out entirely.
type OptionalCoord struct {
	RA  *float64 `json:"ra,omitempty"`
	Dec *float64 `json:"dec,omitempty"`
}

// Set reports whether both components are present.
func (c OptionalCoord) Set() bool {
	return c.RA != nil && c.Dec != nil
}

func (c OptionalCoord) Check(p *Problems) {
	if (c.RA == nil) != (c.Dec == nil) {
		p.Add(CoordPresenceMessage)
		return
	}
	p.AddErr(normalize.CheckCoordinate(c.RA, c.Dec))
}

func (c OptionalCoord) Encode(q url.Values) {
	if c.RA != nil {
		q.Set("ra", FormatFloat(*c.RA))
	}
	if c.Dec != nil {
		q.Set("dec", FormatFloat(*c.Dec))
	}
}

// Target names a source by name, position or both. The name is only used to
// resolve a missing position; the query carries the position.
type Target struct {
	Name string   `json:"name,omitempty"`
	RA   *float64 `json:"ra,omitempty"`
	Dec  *float64 `json:"dec,omitempty"`
}

// NeedsResolve reports whether the target has a name but no position.
func (t Target) NeedsResolve() bool {
	return t.Name != "" && t.RA == nil && t.Dec == nil
}

func (t Target) Check(p *Problems) {
	c := OptionalCoord{RA: t.RA, Dec: t.Dec}
	switch {
	case t.RA == nil && t.Dec == nil && t.Name == "":
		p.Add(TargetMessage)
	case t.RA == nil && t.Dec == nil:
		p.Addf("Target %q has not been resolved to RA/Dec.", t.Name)
	default:
		c.Check(p)
	}
}

func (t Target) Encode(q url.Values) {
	OptionalCoord{RA: t.RA, Dec: t.Dec}.Encode(q)
}

// DateRange is a required time window.
type DateRange struct {
	Begin time.Time `json:"begin"`
	End   time.Time `json:"end"`
}

func (r DateRange) Check(p *Problems) {
	if r.Begin.IsZero() || r.End.IsZero() {
		p.Add("Begin and End are required.")
		return
	}
	p.AddErr(normalize.CheckDateRange(r.Begin, r.End))
}

func (r DateRange) Encode(q url.Values) {
	q.Set("begin", FormatTime(r.Begin))
	q.Set("end", FormatTime(r.End))
}

// OptionalDateRange is a time window that may be left out entirely.
type OptionalDateRange struct {
	Begin *time.Time `json:"begin,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

func (r OptionalDateRange) Check(p *Problems) {
	p.AddErr(normalize.CheckOptionalDateRange(r.Begin, r.End))
}

func (r OptionalDateRange) Encode(q url.Values) {
	if r.Begin != nil {
		q.Set("begin", FormatTime(*r.Begin))
	}
	if r.End != nil {
		q.Set("end", FormatTime(*r.End))
	}
}

// Credentials identify an ACROSS user.
type Credentials struct {
	Username string `json:"username,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

func (c Credentials) Check(p *Problems) {
	if c.Username != "" && c.Username != AnonymousUser && c.APIKey == "" {
		p.Add(CredentialsMessage)
	}
}

func (c Credentials) Encode(q url.Values) {
	if c.Username != "" {
		q.Set("username", c.Username)
	}
	if c.APIKey != "" {
		q.Set("api_key", c.APIKey)
	}
}

// Fields carries extra scalar query parameters. Nil values are skipped.
type Fields map[string]any

func (f Fields) Check(*Problems) {}

func (f Fields) Encode(q url.Values) {
	for k, v := range f {
		if s, ok := FormatValue(v); ok {
			q.Set(k, s)
		}
	}
}
