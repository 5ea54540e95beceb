package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(Logins.WithLabelValues(ResultFailure))
	Logins.WithLabelValues(ResultFailure).Inc()
	after := testutil.ToFloat64(Logins.WithLabelValues(ResultFailure))
	assert.Equal(t, before+1, after)

	before = testutil.ToFloat64(VersionsCreated)
	VersionsCreated.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(VersionsCreated))
}

func TestMetricsHandlerExposesCounters(t *testing.T) {
	Registrations.WithLabelValues(ResultSuccess).Inc()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	require.NoError(t, err)

	MetricsHandler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "versionlog_registrations_total"),
		"exposition should include registration counter")
}
