package across

import (
	"context"
	"net/http"
	"time"

	"github.com/litescript/ls-across/internal/schema"
)

// VisibilityRequest asks when a target can be observed.
type VisibilityRequest struct {
	schema.Target
	schema.DateRange
	HiRes bool `json:"hires"`
}

// VisibilityResult lists observable windows.
type VisibilityResult struct {
	Entries []Window `json:"entries"`
	Status  JobInfo  `json:"status"`
}

// Total returns the summed length of all windows.
func (r VisibilityResult) Total() time.Duration {
	var d time.Duration
	for _, w := range r.Entries {
		d += w.Length()
	}
	return d
}

// Visibility returns the windows in which mission can observe the target.
// A target given only by name is resolved first.
func (c *Client) Visibility(ctx context.Context, mission Mission, req VisibilityRequest) (VisibilityResult, error) {
	if err := mission.check(APIVisibility, http.MethodGet); err != nil {
		return VisibilityResult{}, err
	}
	q, err := c.prepare(ctx, nil, &req.Target, req.DateRange, schema.Fields{"hires": req.HiRes})
	if err != nil {
		return VisibilityResult{}, err
	}

	var out VisibilityResult
	if err := c.do(ctx, call{mission: mission, api: APIVisibility, method: http.MethodGet, query: q}, &out); err != nil {
		return VisibilityResult{}, err
	}
	c.logJob(APIVisibility, out.Status)
	return out, nil
}

// SAARequest asks for South Atlantic Anomaly passages.
type SAARequest struct {
	schema.DateRange
}

// Passage is one transit of the South Atlantic Anomaly.
type Passage struct {
	Begin schema.Time `json:"begin"`
	End   schema.Time `json:"end"`
}

// Length returns the duration of the passage.
func (p Passage) Length() time.Duration {
	return p.End.Sub(p.Begin.Time)
}

// SAAResult lists SAA passages.
type SAAResult struct {
	Entries []Passage `json:"entries"`
	Status  JobInfo   `json:"status"`
}

// SAA returns the SAA passages of mission over the range.
func (c *Client) SAA(ctx context.Context, mission Mission, req SAARequest) (SAAResult, error) {
	if err := mission.check(APISAA, http.MethodGet); err != nil {
		return SAAResult{}, err
	}
	q, err := schema.Build(req.DateRange)
	if err != nil {
		return SAAResult{}, err
	}

	var out SAAResult
	if err := c.do(ctx, call{mission: mission, api: APISAA, method: http.MethodGet, query: q}, &out); err != nil {
		return SAAResult{}, err
	}
	c.logJob(APISAA, out.Status)
	return out, nil
}
