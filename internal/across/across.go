package across

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/litescript/ls-across/internal/schema"
)

// JobInfo is the status block attached to every ACROSS response.
type JobInfo struct {
	Status    string      `json:"status,omitempty"`
	JobNumber *int        `json:"jobnumber,omitempty"`
	Created   schema.Time `json:"created"`
	Expires   schema.Time `json:"expires"`
	Completed schema.Time `json:"completed"`
	Warnings  []string    `json:"warnings,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
}

// Hello is the response of the hello endpoint.
type Hello struct {
	Hello  string  `json:"hello"`
	Status JobInfo `json:"status"`
}

// Hello asks the API to greet name. An empty name is allowed.
func (c *Client) Hello(ctx context.Context, name string) (Hello, error) {
	q, err := schema.Build(schema.Fields{"name": optString(name)})
	if err != nil {
		return Hello{}, err
	}
	var out Hello
	if err := c.do(ctx, call{mission: ACROSS, api: APIHello, method: http.MethodGet, query: q}, &out); err != nil {
		return Hello{}, err
	}
	c.logJob(APIHello, out.Status)
	return out, nil
}

// Resolution is a target name resolved to a sky position.
type Resolution struct {
	RA       float64 `json:"ra"`
	Dec      float64 `json:"dec"`
	Resolver string  `json:"resolver"`
	Status   JobInfo `json:"status"`
}

// Resolve returns the position of a named target. Results are cached by
// name for the life of the client.
func (c *Client) Resolve(ctx context.Context, name string) (Resolution, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Resolution{}, validation("name is required.")
	}
	key := strings.ToLower(name)
	if r, ok := c.resolved.Get(key); ok {
		return r, nil
	}

	q, err := schema.Build(schema.Fields{"name": name})
	if err != nil {
		return Resolution{}, err
	}
	var out Resolution
	if err := c.do(ctx, call{mission: ACROSS, api: APIResolve, method: http.MethodGet, query: q}, &out); err != nil {
		return Resolution{}, fmt.Errorf("resolve %q: %w", name, err)
	}
	c.logJob(APIResolve, out.Status)
	c.resolved.Add(key, out)
	return out, nil
}

// ResolveTarget fills in the position of a target that only has a name.
// Targets that already have a position are left alone.
func (c *Client) ResolveTarget(ctx context.Context, t *schema.Target) error {
	if !t.NeedsResolve() {
		return nil
	}
	r, err := c.Resolve(ctx, t.Name)
	if err != nil {
		return err
	}
	t.RA, t.Dec = &r.RA, &r.Dec
	c.logger.Debug("resolved %s to %.5f %+.5f via %s", t.Name, r.RA, r.Dec, r.Resolver)
	return nil
}

// prepare validates parts and target together, resolves the target if it
// has only a name, and builds the query. Problems already in p are reported
// with the rest. Nothing is sent when anything is invalid.
func (c *Client) prepare(ctx context.Context, p *schema.Problems, target *schema.Target, parts ...schema.Part) (url.Values, error) {
	if p == nil {
		p = &schema.Problems{}
	}
	for _, part := range parts {
		if part != nil {
			part.Check(p)
		}
	}
	if target != nil && !target.NeedsResolve() {
		target.Check(p)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	if target != nil {
		if err := c.ResolveTarget(ctx, target); err != nil {
			return nil, err
		}
		parts = append(parts, *target)
	}
	return schema.Build(parts...)
}

// APIJob is one entry of a user's job history.
type APIJob struct {
	JobNumber  *int        `json:"jobnumber,omitempty"`
	ReqType    string      `json:"reqtype"`
	APIVersion string      `json:"apiversion"`
	Began      schema.Time `json:"began"`
	Created    schema.Time `json:"created"`
	Expires    schema.Time `json:"expires"`
	Params     string      `json:"params"`
	Result     string      `json:"result,omitempty"`
	Status     string      `json:"status,omitempty"`
}

// JobsQuery selects entries of a user's job history.
type JobsQuery struct {
	schema.Credentials
	schema.OptionalDateRange
	ReqType       string `json:"reqtype,omitempty"`
	UnexpiredOnly *bool  `json:"unexpired_only,omitempty"`
}

// JobsResult lists API jobs.
type JobsResult struct {
	Entries []APIJob `json:"entries"`
	Status  JobInfo  `json:"status"`
}

// Jobs lists the API jobs run for a user.
func (c *Client) Jobs(ctx context.Context, q JobsQuery) (JobsResult, error) {
	var p schema.Problems
	if q.Username == "" {
		p.Add("username is required.")
	}
	q.Credentials.Check(&p)
	if err := p.Err(); err != nil {
		return JobsResult{}, err
	}

	unexpired := true
	if q.UnexpiredOnly != nil {
		unexpired = *q.UnexpiredOnly
	}
	query, err := schema.Build(q.Credentials, q.OptionalDateRange, schema.Fields{
		"reqtype":        optString(q.ReqType),
		"unexpired_only": unexpired,
	})
	if err != nil {
		return JobsResult{}, err
	}

	var out JobsResult
	if err := c.do(ctx, call{mission: ACROSS, api: APIJobs, method: http.MethodGet, query: query}, &out); err != nil {
		return JobsResult{}, err
	}
	c.logJob(APIJobs, out.Status)
	return out, nil
}

// Window is an interval during which a target is observable.
type Window struct {
	Begin   schema.Time `json:"begin"`
	End     schema.Time `json:"end"`
	Initial string      `json:"initial,omitempty"`
	Final   string      `json:"final,omitempty"`
}

// Length returns the duration of the window.
func (w Window) Length() time.Duration {
	return w.End.Sub(w.Begin.Time)
}

func validation(msg string) error {
	var p schema.Problems
	p.Add(msg)
	return p.Err()
}

func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
