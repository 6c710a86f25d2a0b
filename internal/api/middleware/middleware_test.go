package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cornhole/internal/api/apierr"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/testutil"
)

func TestRecoveryWritesJSONWithRequestID(t *testing.T) {
	logger := testutil.NopLogger()
	handler := Logging(logger)(Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/game", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, apierr.CodeInternalError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "req-42")
}

func TestRecoveryWithoutRequestID(t *testing.T) {
	handler := Recovery(testutil.NopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error.Message)
}

func TestGetProfile(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetProfile(req.Context()))

	var seen *model.Profile
	handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetProfile(r.Context())
	})
	profile := &model.Profile{ID: "u1", Name: "Alice"}
	handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(withProfile(req.Context(), profile)))

	assert.Equal(t, profile, seen)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/game", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
}
