package across

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-across/internal/across/acrosstest"
	"github.com/litescript/ls-across/internal/logging"
	"github.com/litescript/ls-across/internal/schema"
)

func newTestClient(t *testing.T, opts ...Option) (*Client, *acrosstest.Server) {
	t.Helper()
	srv := acrosstest.New(t)
	c, err := New(append([]Option{WithBaseURL(srv.URL)}, opts...)...)
	require.NoError(t, err)
	return c, srv
}

func bufferLogger() (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logging.New(logging.LevelDebug)
	l.SetOutput(&buf)
	return l, &buf
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, u := range []string{"", "not a url", "/relative/only"} {
		_, err := New(WithBaseURL(u))
		assert.Error(t, err, "base %q", u)
	}
}

func TestEndpoint(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	tests := []struct {
		mission Mission
		api     API
		id      string
		want    string
	}{
		{ACROSS, APIHello, "", "https://api.acrossapi.com/across/hello"},
		{Swift, APIVisibility, "", "https://api.acrossapi.com/swift/visibility"},
		{BurstCube, APITOO, "a1b2", "https://api.acrossapi.com/burstcube/too/a1b2"},
		{BurstCube, APITOO, "a b", "https://api.acrossapi.com/burstcube/too/a%20b"},
		{ACROSS, APIJobs, "", "https://api.acrossapi.com/across/apijobs"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Endpoint(tt.mission, tt.api, tt.id))
		})
	}
}

func TestEndpoint_TrimsTrailingSlash(t *testing.T) {
	c, err := New(WithBaseURL("http://localhost:8000///"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/swift/plan", c.Endpoint(Swift, APIPlan, ""))
}

func TestHello(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Handle(http.MethodGet, "/across/hello", http.StatusOK, map[string]any{
		"hello":  "Hello, Jamie!",
		"status": map[string]any{"status": "Accepted"},
	})

	got, err := c.Hello(context.Background(), "Jamie")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Jamie!", got.Hello)
	assert.Equal(t, "Accepted", got.Status.Status)

	req, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, "Jamie", req.Query.Get("name"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.True(t, strings.HasPrefix(req.Header.Get("User-Agent"), "ls-across/"))
	_, err = uuid.Parse(req.Header.Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestHello_NoName(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Handle(http.MethodGet, "/across/hello", http.StatusOK, map[string]any{"hello": "Hello!"})

	_, err := c.Hello(context.Background(), "")
	require.NoError(t, err)
	req, _ := srv.Last()
	assert.False(t, req.Query.Has("name"))
}

func TestDo_StatusPolicy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantSoft bool
		wantIs   error
	}{
		{"not found is soft", http.StatusNotFound, true, ErrNotFound},
		{"unavailable is soft", http.StatusServiceUnavailable, true, ErrUnavailable},
		{"server error is hard", http.StatusInternalServerError, false, nil},
		{"bad request is hard", http.StatusBadRequest, false, nil},
		{"created is not success for GET", http.StatusCreated, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := bufferLogger()
			c, srv := newTestClient(t, WithLogger(log))
			srv.Handle(http.MethodGet, "/across/hello", tt.status, map[string]any{"detail": "went wrong"})

			_, err := c.Hello(context.Background(), "")
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantSoft, apiErr.Soft)
			assert.Equal(t, "went wrong", apiErr.Detail)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Equal(t, tt.wantSoft, strings.Contains(buf.String(), "went wrong"))
		})
	}
}

func TestDo_PostOKIsNotCreated(t *testing.T) {
	log, buf := bufferLogger()
	c, srv := newTestClient(t, WithLogger(log))
	srv.Handle(http.MethodPost, "/burstcube/too", http.StatusOK, map[string]any{
		"detail": "TOO already submitted",
	})

	_, err := c.SubmitTOO(context.Background(), BurstCube, validSubmission())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotCreated)
	assert.Contains(t, err.Error(), "TOO already submitted")
	assert.Contains(t, buf.String(), "TOO already submitted")
}

func TestDo_DeleteNotFoundIsSoft(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Handle(http.MethodDelete, "/burstcube/too/{id}", http.StatusNotFound, map[string]any{"detail": "no such TOO"})

	_, err := c.DeleteTOO(context.Background(), BurstCube, schema.Credentials{Username: "u", APIKey: "k"}, "x1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Soft)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDo_TransportError(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Close()

	_, err := c.Hello(context.Background(), "")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.MethodGet, te.Method)
}

func TestDo_ContextCancelled(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Handle(http.MethodGet, "/across/hello", http.StatusOK, map[string]any{"hello": "hi"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Hello(ctx, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDo_BadJSON(t *testing.T) {
	c, srv := newTestClient(t)
	srv.HandleFunc(http.MethodGet, "/across/hello", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := c.Hello(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode Hello response")
}

func TestDo_LogsJobWarnings(t *testing.T) {
	log, buf := bufferLogger()
	c, srv := newTestClient(t, WithLogger(log))
	srv.Handle(http.MethodGet, "/across/hello", http.StatusOK, map[string]any{
		"hello":  "hi",
		"status": map[string]any{"status": "Accepted", "warnings": []string{"ephemeris is stale"}},
	})

	_, err := c.Hello(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ephemeris is stale")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, srv := newTestClient(t, WithRegisterer(reg))
	srv.Handle(http.MethodGet, "/across/hello", http.StatusOK, map[string]any{"hello": "hi"})

	for i := 0; i < 2; i++ {
		_, err := c.Hello(context.Background(), "")
		require.NoError(t, err)
	}

	require.NotNil(t, c.metrics)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.metrics.RequestsTotal.WithLabelValues("ACROSS", "Hello", "GET", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.metrics.RequestDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	assert.Nil(t, NewMetrics(nil))
	var m *Metrics
	assert.NotPanics(t, func() { m.observe(Swift, APIPlan, http.MethodGet, 200, 0) })
}

func TestClientCredentials(t *testing.T) {
	srv := acrosstest.New(t)
	srv.HandleFunc(http.MethodPost, "/token", func(w http.ResponseWriter, r *http.Request) {
		acrosstest.JSON(w, http.StatusOK, map[string]any{
			"access_token": "secret-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})
	srv.Handle(http.MethodGet, "/across/hello", http.StatusOK, map[string]any{"hello": "hi"})

	c, err := New(
		WithBaseURL(srv.URL),
		WithClientCredentials("client", "shh"),
		WithTokenURL(srv.URL+"/token"),
	)
	require.NoError(t, err)

	_, err = c.Hello(context.Background(), "")
	require.NoError(t, err)

	req, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, "/across/hello", req.Path)
	assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))
}

func TestTokenURLAloneDoesNotAuthenticate(t *testing.T) {
	c, srv := newTestClient(t, WithTokenURL("http://127.0.0.1:1/token"))
	srv.Handle(http.MethodGet, "/across/hello", http.StatusOK, map[string]any{"hello": "hi"})

	_, err := c.Hello(context.Background(), "")
	require.NoError(t, err)
	req, _ := srv.Last()
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"detail":"Not Found"}`, "Not Found"},
		{`{"detail":[{"loc":["query","ra"],"msg":"bad ra"},{"msg":"bad dec"}]}`, "bad ra; bad dec"},
		{"Internal Server Error\n", "Internal Server Error"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetail([]byte(tt.body)))
		})
	}
}
