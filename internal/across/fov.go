package across

import (
	"context"
	"net/http"

	"github.com/litescript/ls-across/internal/schema"
)

// FOVCheckRequest asks whether a target falls inside an instrument's field
// of view over a time range.
type FOVCheckRequest struct {
	schema.Target
	schema.DateRange
	StepSize    int    `json:"stepsize,omitempty" validate:"omitempty,gte=1"`
	EarthOccult *bool  `json:"earthoccult,omitempty"`
	Instrument  string `json:"instrument,omitempty"`
}

// Pointing is the spacecraft attitude at one sample time.
type Pointing struct {
	Timestamp schema.Time `json:"timestamp"`
	RA        *float64    `json:"ra"`
	Dec       *float64    `json:"dec"`
	Roll      *float64    `json:"roll,omitempty"`
	Observing bool        `json:"observing"`
	InFOV     *bool       `json:"infov,omitempty"`
}

// FOVCheckResult lists pointings with their in-FOV flags.
type FOVCheckResult struct {
	Entries []Pointing `json:"entries"`
	Status  JobInfo    `json:"status"`
}

// Visible returns the pointings during which the target was in view.
func (r FOVCheckResult) Visible() []Pointing {
	var out []Pointing
	for _, p := range r.Entries {
		if p.InFOV != nil && *p.InFOV {
			out = append(out, p)
		}
	}
	return out
}

// FOVCheck samples mission's pointing and reports when the target is in the
// field of view. Earth occultation is considered unless disabled.
func (c *Client) FOVCheck(ctx context.Context, mission Mission, req FOVCheckRequest) (FOVCheckResult, error) {
	if err := mission.check(APIFOVCheck, http.MethodGet); err != nil {
		return FOVCheckResult{}, err
	}
	if req.StepSize == 0 {
		req.StepSize = DefaultStepSize
	}
	earthOccult := true
	if req.EarthOccult != nil {
		earthOccult = *req.EarthOccult
	}

	var p schema.Problems
	schema.Check(req, &p)
	q, err := c.prepare(ctx, &p, &req.Target, req.DateRange, schema.Fields{
		"stepsize":    req.StepSize,
		"earthoccult": earthOccult,
		"instrument":  optString(req.Instrument),
	})
	if err != nil {
		return FOVCheckResult{}, err
	}

	var out FOVCheckResult
	if err := c.do(ctx, call{mission: mission, api: APIFOVCheck, method: http.MethodGet, query: q}, &out); err != nil {
		return FOVCheckResult{}, err
	}
	c.logJob(APIFOVCheck, out.Status)
	return out, nil
}
