package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	tests := map[string]string{
		"":                        "/",
		"/":                       "/",
		"/api/products":           "/api/products",
		"/api/seller/products/12": "/api/seller/products/:id",
		"/api/admin/users/7/":     "/api/admin/users/:id",
	}
	for in, want := range tests {
		assert.Equal(t, want, CanonicalPath(in), in)
	}
}

func TestInstrumentHandlerCountsStatus(t *testing.T) {
	h := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/admin/users/:id", "418"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/admin/users/3", nil))
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/admin/users/:id", "418"))

	assert.Equal(t, before+1, after)
}

func TestRecordCheckout(t *testing.T) {
	okBefore := testutil.ToFloat64(checkouts.WithLabelValues("ok"))
	unitsBefore := testutil.ToFloat64(orderedItems)

	RecordCheckout("ok", 3)
	RecordCheckout("INSUFFICIENT_STOCK", 0)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(checkouts.WithLabelValues("ok")))
	assert.Equal(t, unitsBefore+3, testutil.ToFloat64(orderedItems))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordStatsCache(true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "storefront_stats_cache_lookups_total")
}
