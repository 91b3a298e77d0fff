package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "/", want: "/"},
		{raw: "", want: "/"},
		{raw: "/healthz", want: "/healthz"},
		{raw: "/v1/actions", want: "/v1/actions"},
		{raw: "/v1/actions/FETCH_PRICE", want: "/v1/actions/:name"},
		{raw: "/v1/actions/TRADE/", want: "/v1/actions/:name"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalPath(tt.raw), "canonicalPath(%q)", tt.raw)
	}
}

func TestInstrumentHandlerRecordsStatus(t *testing.T) {
	handler := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/actions/NOPE", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The counter for this label set must now be visible on /metrics.
	metricsRec := httptest.NewRecorder()
	Handler().ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), `agent_layer_http_requests_total{method="POST",path="/v1/actions/:name",status="404"}`)
}

func TestRecordDispatch(t *testing.T) {
	RecordDispatch("FETCH_PRICE", "success", 25*time.Millisecond)
	RecordDispatch("", "failed", 0)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `agent_layer_actions_dispatches_total{action="FETCH_PRICE",outcome="success"}`)
	assert.Contains(t, body, `agent_layer_actions_dispatches_total{action="unknown",outcome="failed"}`)
}

func TestRecordSubmission(t *testing.T) {
	RecordSubmission(true)
	RecordSubmission(false)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `agent_layer_chain_submissions_total{outcome="confirmed"}`)
	assert.Contains(t, body, `agent_layer_chain_submissions_total{outcome="rejected"}`)
}
