package across

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/litescript/ls-across/internal/normalize"
	"github.com/litescript/ls-across/internal/schema"
)

// TOO request defaults, in seconds.
const (
	DefaultTOOExposure = 200
	DefaultTOOOffset   = -50
)

// TOOStatus is the state of a Target of Opportunity request.
type TOOStatus string

const (
	TOORequested TOOStatus = "Requested"
	TOORejected  TOOStatus = "Rejected"
	TOODeclined  TOOStatus = "Declined"
	TOOApproved  TOOStatus = "Approved"
	TOOExecuted  TOOStatus = "Executed"
	TOOOther     TOOStatus = "Other"
)

// TOOReason explains why a TOO request was rejected.
type TOOReason string

const (
	ReasonSAA         TOOReason = "In SAA"
	ReasonEarthOccult TOOReason = "Earth occulted"
	ReasonMoonOccult  TOOReason = "Moon occulted"
	ReasonSunOccult   TOOReason = "Sun occulted"
	ReasonTooOld      TOOReason = "Too old"
	ReasonOther       TOOReason = "Other"
	ReasonNone        TOOReason = "None"
)

// TriggerInfo describes the event that triggered a TOO. The keys are
// suggestions; Extra carries anything else the submitter wants recorded.
type TriggerInfo struct {
	TriggerName       string         `json:"trigger_name,omitempty"`
	TriggerMission    string         `json:"trigger_mission,omitempty"`
	TriggerInstrument string         `json:"trigger_instrument,omitempty"`
	TriggerID         string         `json:"trigger_id,omitempty"`
	TriggerDuration   *float64       `json:"trigger_duration,omitempty"`
	Classification    string         `json:"classification,omitempty"`
	Justification     string         `json:"justification,omitempty"`
	Extra             map[string]any `json:"-"`
}

// MarshalJSON flattens Extra into the object.
func (t TriggerInfo) MarshalJSON() ([]byte, error) {
	type plain TriggerInfo
	b, err := json.Marshal(plain(t))
	if err != nil || len(t.Extra) == 0 {
		return b, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	for k, v := range t.Extra {
		if _, taken := m[k]; !taken {
			m[k] = v
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts an object or a string holding one, collecting
// unknown keys in Extra.
func (t *TriggerInfo) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*t = TriggerInfo{}
			return nil
		}
		b = []byte(s)
	}

	type plain TriggerInfo
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("trigger_info: %w", err)
	}
	var all map[string]any
	if err := json.Unmarshal(b, &all); err != nil {
		return fmt.Errorf("trigger_info: %w", err)
	}
	for _, k := range []string{"trigger_name", "trigger_mission", "trigger_instrument",
		"trigger_id", "trigger_duration", "classification", "justification"} {
		delete(all, k)
	}
	*t = TriggerInfo(p)
	if len(all) > 0 {
		t.Extra = all
	}
	return nil
}

// TOO is a stored Target of Opportunity request.
type TOO struct {
	ID              string      `json:"id,omitempty"`
	CreatedBy       string      `json:"created_by"`
	CreatedOn       schema.Time `json:"created_on"`
	ModifiedBy      string      `json:"modified_by,omitempty"`
	ModifiedOn      schema.Time `json:"modified_on"`
	TriggerTime     schema.Time `json:"trigger_time"`
	TriggerInfo     TriggerInfo `json:"trigger_info"`
	RA              *float64    `json:"ra,omitempty"`
	Dec             *float64    `json:"dec,omitempty"`
	Error           *float64    `json:"error,omitempty"`
	Exposure        float64     `json:"exposure"`
	Offset          float64     `json:"offset"`
	RejectReason    TOOReason   `json:"reject_reason,omitempty"`
	Status          TOOStatus   `json:"status,omitempty"`
	TOOInfo         string      `json:"too_info,omitempty"`
	HealpixFilename string      `json:"healpix_filename,omitempty"`
}

// Reason returns the rejection reason, ReasonNone when unset.
func (t TOO) Reason() TOOReason {
	if t.RejectReason == "" {
		return ReasonNone
	}
	return t.RejectReason
}

// HealpixFile is a localization map uploaded with a TOO.
type HealpixFile struct {
	Name   string
	Reader io.Reader
}

// TOOSubmission is a new, or updated, TOO request. A nil Exposure or Offset
// takes the mission default.
type TOOSubmission struct {
	schema.Credentials
	schema.OptionalCoord
	Error       *float64     `json:"error,omitempty" validate:"omitempty,gte=0"`
	TriggerTime time.Time    `json:"trigger_time"`
	TriggerInfo TriggerInfo  `json:"trigger_info"`
	Exposure    *int         `json:"exposure,omitempty" validate:"omitempty,gt=0"`
	Offset      *int         `json:"offset,omitempty"`
	Healpix     *HealpixFile `json:"-" validate:"-"`
}

func (s TOOSubmission) exposure() int {
	if s.Exposure == nil {
		return DefaultTOOExposure
	}
	return *s.Exposure
}

func (s TOOSubmission) offset() int {
	if s.Offset == nil {
		return DefaultTOOOffset
	}
	return *s.Offset
}

func (s TOOSubmission) check(p *schema.Problems) {
	schema.Check(s, p)
	if s.Username == "" {
		p.Add("username is required.")
	}
	if s.TriggerTime.IsZero() {
		p.Add("trigger_time is required.")
	}
	s.Credentials.Check(p)
	s.OptionalCoord.Check(p)
}

func (s TOOSubmission) fields() (schema.Fields, error) {
	info, err := json.Marshal(s.TriggerInfo)
	if err != nil {
		return nil, fmt.Errorf("encode trigger_info: %w", err)
	}
	return schema.Fields{
		"error":        s.Error,
		"trigger_time": s.TriggerTime,
		"trigger_info": string(info),
		"exposure":     s.exposure(),
		"offset":       s.offset(),
	}, nil
}

// tooPayload is the JSON body of a TOO update.
type tooPayload struct {
	ID          string      `json:"id"`
	RA          *float64    `json:"ra,omitempty"`
	Dec         *float64    `json:"dec,omitempty"`
	Error       *float64    `json:"error,omitempty"`
	TriggerTime schema.Time `json:"trigger_time"`
	TriggerInfo TriggerInfo `json:"trigger_info"`
	Exposure    int         `json:"exposure"`
	Offset      int         `json:"offset"`
}

// SubmitTOO creates a TOO request. A HEALPix map is sent as a multipart
// upload; everything else travels as query parameters. A 200 answer means
// the server declined to create it and is returned as ErrNotCreated.
func (c *Client) SubmitTOO(ctx context.Context, mission Mission, s TOOSubmission) (TOO, error) {
	if err := mission.check(APITOO, http.MethodPost); err != nil {
		return TOO{}, err
	}
	var p schema.Problems
	s.check(&p)
	if err := p.Err(); err != nil {
		return TOO{}, err
	}
	fields, err := s.fields()
	if err != nil {
		return TOO{}, err
	}
	q, err := schema.Build(s.Credentials, s.OptionalCoord, fields)
	if err != nil {
		return TOO{}, err
	}

	k := call{mission: mission, api: APITOO, method: http.MethodPost, query: q, body: struct{}{}}
	if s.Healpix != nil {
		k.body = nil
		k.file = &upload{field: "healpix_filename", name: s.Healpix.Name, r: s.Healpix.Reader}
	}

	var out TOO
	if err := c.do(ctx, k, &out); err != nil {
		return TOO{}, err
	}
	return out, nil
}

// GetTOO fetches a TOO request by id.
func (c *Client) GetTOO(ctx context.Context, mission Mission, cred schema.Credentials, id string) (TOO, error) {
	q, err := tooQuery(mission, http.MethodGet, cred, id)
	if err != nil {
		return TOO{}, err
	}
	var out TOO
	if err := c.do(ctx, call{mission: mission, api: APITOO, method: http.MethodGet, id: id, query: q}, &out); err != nil {
		return TOO{}, err
	}
	return out, nil
}

// UpdateTOO replaces the request stored under id.
func (c *Client) UpdateTOO(ctx context.Context, mission Mission, id string, s TOOSubmission) (TOO, error) {
	if err := mission.check(APITOO, http.MethodPut); err != nil {
		return TOO{}, err
	}
	var p schema.Problems
	if strings.TrimSpace(id) == "" {
		p.Add("id is required.")
	}
	s.check(&p)
	if err := p.Err(); err != nil {
		return TOO{}, err
	}
	q, err := schema.Build(s.Credentials)
	if err != nil {
		return TOO{}, err
	}

	body := tooPayload{
		ID:          id,
		RA:          s.RA,
		Dec:         s.Dec,
		Error:       s.Error,
		TriggerTime: schema.NewTime(s.TriggerTime),
		TriggerInfo: s.TriggerInfo,
		Exposure:    s.exposure(),
		Offset:      s.offset(),
	}
	var out TOO
	if err := c.do(ctx, call{mission: mission, api: APITOO, method: http.MethodPut, id: id, query: q, body: body}, &out); err != nil {
		return TOO{}, err
	}
	return out, nil
}

// DeleteTOO withdraws the request stored under id.
func (c *Client) DeleteTOO(ctx context.Context, mission Mission, cred schema.Credentials, id string) (TOO, error) {
	q, err := tooQuery(mission, http.MethodDelete, cred, id)
	if err != nil {
		return TOO{}, err
	}
	var out TOO
	if err := c.do(ctx, call{mission: mission, api: APITOO, method: http.MethodDelete, id: id, query: q}, &out); err != nil {
		return TOO{}, err
	}
	return out, nil
}

func tooQuery(mission Mission, method string, cred schema.Credentials, id string) (url.Values, error) {
	if err := mission.check(APITOO, method); err != nil {
		return nil, err
	}
	var p schema.Problems
	if strings.TrimSpace(id) == "" {
		p.Add("id is required.")
	}
	return buildWith(&p, cred)
}

// TOORequestsQuery lists TOO requests. Length may stand in for one end of
// the range, or for both, in which case the range ends now.
type TOORequestsQuery struct {
	schema.Credentials
	schema.OptionalDateRange
	Length *time.Duration `json:"length,omitempty"`
	Limit  *int           `json:"limit,omitempty" validate:"omitempty,gte=1"`
}

// TOORequestsResult lists TOO requests.
type TOORequestsResult struct {
	Entries []TOO   `json:"entries"`
	Status  JobInfo `json:"status"`
}

// TOORequests lists TOO requests matching q.
func (c *Client) TOORequests(ctx context.Context, mission Mission, q TOORequestsQuery) (TOORequestsResult, error) {
	if err := mission.check(APITOORequests, http.MethodGet); err != nil {
		return TOORequestsResult{}, err
	}

	var length any
	if q.Length != nil {
		length = *q.Length
	}
	begin, end, err := normalize.ApplyLength(q.Begin, q.End, length, c.now())
	if err != nil {
		return TOORequestsResult{}, err
	}
	rng := schema.OptionalDateRange{Begin: begin, End: end}

	var p schema.Problems
	schema.Check(q, &p)
	query, err := buildWith(&p, q.Credentials, rng, schema.Fields{"limit": q.Limit})
	if err != nil {
		return TOORequestsResult{}, err
	}

	var out TOORequestsResult
	if err := c.do(ctx, call{mission: mission, api: APITOORequests, method: http.MethodGet, query: query}, &out); err != nil {
		return TOORequestsResult{}, err
	}
	c.logJob(APITOORequests, out.Status)
	return out, nil
}
