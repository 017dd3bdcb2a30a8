// Package across is a client for the ACROSS observation-scheduling API.
//
// Every operation validates its request completely before any network
// traffic. Requests go to {base}/{mission}/{api}[/{id}].
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

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/litescript/ls-across/internal/logging"
	"github.com/litescript/ls-across/internal/version"
)

const (
	// DefaultBaseURL is the public ACROSS API.
	DefaultBaseURL = "https://api.acrossapi.com/"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultResolveCacheSize is the number of resolved names kept.
	DefaultResolveCacheSize = 256
)

// Client talks to the ACROSS API. Safe for concurrent use.
type Client struct {
	http       *resty.Client
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	logger     *logging.Logger
	registerer prometheus.Registerer
	metrics    *Metrics
	cacheSize  int
	resolved   *lru.Cache[string, Resolution]
	creds      *clientCredentials
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets the logger for warnings and request tracing.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRegisterer enables request metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = reg
	}
}

// WithResolveCacheSize sets how many resolved names are cached.
func WithResolveCacheSize(n int) Option {
	return func(c *Client) {
		c.cacheSize = n
	}
}

// WithClock overrides the current time, used to anchor ranges given only as
// a length.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a client.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		logger:    logging.Discard(),
		cacheSize: DefaultResolveCacheSize,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", c.baseURL)
	}

	cache, err := lru.New[string, Resolution](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create resolve cache: %w", err)
	}
	c.resolved = cache

	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if c.creds != nil && c.creds.config.ClientID != "" {
		httpClient = c.creds.wrap(httpClient)
	}

	c.http = resty.NewWithClient(httpClient).
		SetTimeout(c.timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "ls-across/"+version.Version)
	c.metrics = NewMetrics(c.registerer)

	return c, nil
}

// Endpoint returns the URL of api on mission, with id appended when set.
func (c *Client) Endpoint(mission Mission, api API, id string) string {
	u := strings.TrimRight(c.baseURL, "/") + "/" +
		strings.ToLower(string(mission)) + "/" + strings.ToLower(string(api))
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

// upload is a file sent as multipart form data.
type upload struct {
	field string
	name  string
	r     io.Reader
}

// call describes one HTTP exchange.
type call struct {
	mission Mission
	api     API
	method  string
	id      string
	query   url.Values
	body    any
	file    *upload
}

// successStatus is the status each verb expects on success. softStatus
// lists the statuses treated as warnings rather than failures.
var (
	successStatus = map[string]int{
		http.MethodGet:    http.StatusOK,
		http.MethodDelete: http.StatusOK,
		http.MethodPut:    http.StatusCreated,
		http.MethodPost:   http.StatusCreated,
	}
	softStatus = map[string][]int{
		http.MethodGet:    {http.StatusNotFound, http.StatusServiceUnavailable},
		http.MethodDelete: {http.StatusNotFound},
		http.MethodPut:    {http.StatusServiceUnavailable},
		http.MethodPost:   {http.StatusOK},
	}
)

func isSoft(method string, status int) bool {
	for _, s := range softStatus[method] {
		if s == status {
			return true
		}
	}
	return false
}

// do performs k and decodes a successful response into out.
func (c *Client) do(ctx context.Context, k call, out any) error {
	if err := k.mission.check(k.api, k.method); err != nil {
		return err
	}

	endpoint := c.Endpoint(k.mission, k.api, k.id)
	reqID := uuid.NewString()
	log := c.logger.With("request_id", reqID)

	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", reqID)
	if k.query != nil {
		req.SetQueryParamsFromValues(k.query)
	}
	switch {
	case k.file != nil:
		req.SetFileReader(k.file.field, k.file.name, k.file.r)
	case k.body != nil:
		req.SetBody(k.body)
	}

	log.Debug("%s %s", k.method, endpoint)
	start := time.Now()
	resp, err := req.Execute(k.method, endpoint)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(k.mission, k.api, k.method, 0, elapsed)
		return &TransportError{Method: k.method, URL: endpoint, Err: err}
	}

	status := resp.StatusCode()
	c.metrics.observe(k.mission, k.api, k.method, status, elapsed)
	log.Debug("%s %s: %d in %s", k.method, endpoint, status, elapsed.Round(time.Millisecond))

	if status == successStatus[k.method] {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode %s response: %w", k.api, err)
		}
		return nil
	}

	apiErr := &APIError{
		Method: k.method,
		URL:    endpoint,
		Status: status,
		Detail: errorDetail(resp.Body()),
		Soft:   isSoft(k.method, status),
	}
	if apiErr.Soft {
		log.Warn("%s", apiErr.Error())
	}
	return apiErr
}

// logJob surfaces server-side warnings.
func (c *Client) logJob(api API, job JobInfo) {
	for _, w := range job.Warnings {
		c.logger.Warn("%s: %s", api, w)
	}
}
