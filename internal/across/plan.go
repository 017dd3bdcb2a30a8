package across

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/litescript/ls-across/internal/normalize"
	"github.com/litescript/ls-across/internal/schema"
)

// PlanEntry is one scheduled (or, for observations, executed) pointing.
// The mission-specific fields are omitted when unset: Swift uses roll,
// obsid, targetid, segment, the instrument modes, merit and slew; NICER uses
// targetid, obsid and mode; NuSTAR uses obsid and comment.
type PlanEntry struct {
	Begin    schema.Time `json:"begin"`
	End      schema.Time `json:"end"`
	TargName string      `json:"targname"`
	RA       float64     `json:"ra" validate:"ra"`
	Dec      float64     `json:"dec" validate:"dec"`
	Exposure float64     `json:"exposure" validate:"gte=0"`

	Roll     *float64 `json:"roll,omitempty" validate:"omitempty,gte=0,lt=360"`
	ObsID    string   `json:"obsid,omitempty"`
	TargetID *int     `json:"targetid,omitempty"`
	Segment  *int     `json:"segment,omitempty"`
	XRTMode  *int     `json:"xrtmode,omitempty"`
	UVOTMode *int     `json:"uvotmode,omitempty"`
	BATMode  *int     `json:"batmode,omitempty"`
	Merit    *int     `json:"merit,omitempty"`
	Slew     *int     `json:"slew,omitempty"`
	Mode     string   `json:"mode,omitempty"`
	Comment  string   `json:"comment,omitempty"`
}

// PlanQuery selects plan entries. A name with no coordinates is resolved
// first; Radius then limits the search around the position.
type PlanQuery struct {
	Name string `json:"name,omitempty"`
	schema.OptionalCoord
	schema.OptionalDateRange
	Radius   *float64 `json:"radius,omitempty" validate:"omitempty,gt=0"`
	ObsID    string   `json:"obsid,omitempty"`
	TargetID *int     `json:"targetid,omitempty"`
}

// PlanResult lists plan entries.
type PlanResult struct {
	Entries []PlanEntry `json:"entries"`
	Status  JobInfo     `json:"status"`
}

type entriesPayload struct {
	Entries []PlanEntry `json:"entries"`
}

// Plan returns the planned observations of mission matching q.
func (c *Client) Plan(ctx context.Context, mission Mission, q PlanQuery) (PlanResult, error) {
	return c.getEntries(ctx, mission, APIPlan, q)
}

// PutPlan uploads plan entries for mission.
func (c *Client) PutPlan(ctx context.Context, mission Mission, cred schema.Credentials, entries []PlanEntry) (PlanResult, error) {
	return c.putEntries(ctx, mission, APIPlan, cred, entries)
}

// Observations returns executed observations matching q. Only Swift
// publishes them.
func (c *Client) Observations(ctx context.Context, mission Mission, q PlanQuery) (PlanResult, error) {
	return c.getEntries(ctx, mission, APIObservations, q)
}

// PutObservations uploads executed observations.
func (c *Client) PutObservations(ctx context.Context, mission Mission, cred schema.Credentials, entries []PlanEntry) (PlanResult, error) {
	return c.putEntries(ctx, mission, APIObservations, cred, entries)
}

func (c *Client) getEntries(ctx context.Context, mission Mission, api API, q PlanQuery) (PlanResult, error) {
	if err := mission.check(api, http.MethodGet); err != nil {
		return PlanResult{}, err
	}

	var p schema.Problems
	schema.Check(q, &p)
	q.OptionalCoord.Check(&p)
	q.OptionalDateRange.Check(&p)
	if err := p.Err(); err != nil {
		return PlanResult{}, err
	}

	if q.Name != "" && !q.Set() {
		t := schema.Target{Name: q.Name}
		if err := c.ResolveTarget(ctx, &t); err != nil {
			return PlanResult{}, err
		}
		q.RA, q.Dec = t.RA, t.Dec
	}

	query, err := schema.Build(q.OptionalCoord, q.OptionalDateRange, schema.Fields{
		"radius":   q.Radius,
		"obsid":    optString(q.ObsID),
		"targetid": q.TargetID,
	})
	if err != nil {
		return PlanResult{}, err
	}

	var out PlanResult
	if err := c.do(ctx, call{mission: mission, api: api, method: http.MethodGet, query: query}, &out); err != nil {
		return PlanResult{}, err
	}
	c.logJob(api, out.Status)
	return out, nil
}

func (c *Client) putEntries(ctx context.Context, mission Mission, api API, cred schema.Credentials, entries []PlanEntry) (PlanResult, error) {
	if err := mission.check(api, http.MethodPut); err != nil {
		return PlanResult{}, err
	}

	var p schema.Problems
	CheckEntries(entries, &p)
	query, err := buildWith(&p, cred)
	if err != nil {
		return PlanResult{}, err
	}

	var out PlanResult
	err = c.do(ctx, call{
		mission: mission,
		api:     api,
		method:  http.MethodPut,
		query:   query,
		body:    entriesPayload{Entries: entries},
	}, &out)
	if err != nil {
		return PlanResult{}, err
	}
	c.logJob(api, out.Status)
	return out, nil
}

// CheckEntries validates plan entries, prefixing each problem with the
// entry's index.
func CheckEntries(entries []PlanEntry, p *schema.Problems) {
	if len(entries) == 0 {
		p.Add("entries should not be empty.")
		return
	}
	for i, e := range entries {
		var ep schema.Problems
		schema.Check(e, &ep)
		schema.DateRange{Begin: e.Begin.Time, End: e.End.Time}.Check(&ep)
		if err := ep.Err(); err != nil {
			p.AddErr(prefixProblems(fmt.Sprintf("entries[%d]: ", i), err))
		}
	}
}

func prefixProblems(prefix string, err error) error {
	ve, ok := err.(*normalize.ValidationError)
	if !ok {
		return fmt.Errorf("%s%w", prefix, err)
	}
	out := make([]string, len(ve.Problems))
	for i, m := range ve.Problems {
		out[i] = prefix + m
	}
	return normalize.NewValidationError(out...)
}

// buildWith checks parts on top of problems already found in p and builds
// the query when everything is valid.
func buildWith(p *schema.Problems, parts ...schema.Part) (url.Values, error) {
	for _, part := range parts {
		part.Check(p)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return schema.Build(parts...)
}
