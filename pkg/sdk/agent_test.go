package sdk_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/pkg/sdk"
	"github.com/absmach/warden/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSendsBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/metrics", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(monitor.Snapshot{CPU: 7.25})
	}))
	t.Cleanup(ts.Close)

	s := sdk.NewSDK(sdk.Config{AgentURL: ts.URL, Token: "secret42"})

	snapshot, err := s.Metrics()
	require.NoError(t, err)
	assert.Equal(t, 7.25, snapshot.CPU)
	assert.Equal(t, "Bearer secret42", gotAuth)
}

func TestMetricsUnauthorized(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(ts.Close)

	s := sdk.NewSDK(sdk.Config{AgentURL: ts.URL})

	_, err := s.Metrics()
	assert.ErrorContains(t, err, "unexpected response code: 401")
}

func TestUpdateDecodesFailedResult(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(system.Result{Success: false, Error: "update operation timed out"})
	}))
	t.Cleanup(ts.Close)

	s := sdk.NewSDK(sdk.Config{AgentURL: ts.URL, Token: "secret42"})

	result, err := s.Update()
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "update operation timed out", result.Error)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sdk.HealthInfo{Status: "pass", InstanceID: "abc"})
	}))
	t.Cleanup(ts.Close)

	s := sdk.NewSDK(sdk.Config{AgentURL: ts.URL})

	health, err := s.Health()
	require.NoError(t, err)
	assert.Equal(t, "pass", health.Status)
	assert.Equal(t, "abc", health.InstanceID)
}
