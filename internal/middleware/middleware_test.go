package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cornhole/internal/testutil"
)

// logLines decodes the JSON log records written to the buffer
func logLines(t *testing.T, raw string) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		lines = append(lines, entry)
	}
	return lines
}

func TestLoggingAssignsRequestID(t *testing.T) {
	logger, buf := testutil.BufferLogger()

	var seen string
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/game/start", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	lines := logLines(t, buf.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "http request", lines[0]["msg"])
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, seen, lines[0]["request_id"])
	assert.Equal(t, "/api/v1/game/start", lines[0]["path"])
	assert.EqualValues(t, http.StatusCreated, lines[0]["status"])
	assert.EqualValues(t, 5, lines[0]["size"])
}

func TestLoggingKeepsCallerRequestID(t *testing.T) {
	logger, _ := testutil.BufferLogger()

	var seen string
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestLoggingWarnsOnServerErrors(t *testing.T) {
	logger, buf := testutil.BufferLogger()

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	lines := logLines(t, buf.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
}

func TestRecoveryInsideLogging(t *testing.T) {
	logger, buf := testutil.BufferLogger()

	var handled bool
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	onPanic := func(w http.ResponseWriter, _ *http.Request, err any) {
		handled = true
		assert.Equal(t, "boom", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
	handler := Logging(logger)(Recovery(logger, onPanic)(panicking))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.True(t, handled)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	lines := logLines(t, buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "panic recovered", lines[0]["msg"])
	assert.Equal(t, "req-1", lines[0]["request_id"])
	assert.Equal(t, "http request", lines[1]["msg"])
	assert.EqualValues(t, http.StatusInternalServerError, lines[1]["status"])
}

func TestRequestIDOutsideLogging(t *testing.T) {
	assert.Empty(t, RequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
