package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_VoteSubmissionCounter(t *testing.T) {
	m := NewManager(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))

	m.RecordVoteSubmission(OutcomeAccepted)
	m.RecordVoteSubmission(OutcomeDuplicate)
	m.RecordVoteSubmission(OutcomeDuplicate)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.voteSubmissions.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.voteSubmissions.WithLabelValues(OutcomeDuplicate)))
}

func TestManager_JobAndCacheCounters(t *testing.T) {
	m := NewManager(WithRegistry(prometheus.NewRegistry()))

	m.RecordJobEnqueued("email:vote_confirmation", nil)
	m.RecordJobEnqueued("email:vote_confirmation", errors.New("redis down"))
	m.RecordCacheLookup("ballot", true)
	m.RecordCacheLookup("ballot", false)
	m.RecordCacheLookup("ballot", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobsEnqueued.WithLabelValues("email:vote_confirmation", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("ballot", "miss")))
}

func TestManager_HandlerExposesMetrics(t *testing.T) {
	m := NewManager(WithRegistry(prometheus.NewRegistry()))
	m.RecordHTTPRequest("/api/v1/votes", http.MethodPost, "201", 0.02)
	m.RecordNomination()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "awards_http_requests_total")
	assert.Contains(t, body, "awards_nominations_total 1")
}
