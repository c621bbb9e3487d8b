package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lustraclean/vitrine/internal/testutil"
	"github.com/lustraclean/vitrine/pkg/models"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	c, _, _ := newTestController(t, staticSource(
		testutil.NewService(testutil.WithName("Bureaux"), testutil.WithCategory(models.CategoryBureaux), testutil.WithReviews(10)),
		testutil.NewService(testutil.WithName("Piscine"), testutil.WithCategory(models.CategoryPiscine), testutil.WithReviews(50)),
		testutil.NewService(testutil.WithName("Vitres"), testutil.WithCategory(models.CategoryVitres), testutil.WithReviews(89)),
	))
	mux := http.NewServeMux()
	NewHandler(c, testutil.Logger()).RegisterRoutes(mux)
	return mux
}

func TestHandleServices_FiltersFromQuery(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/services?category=all&min_reviews=20", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Equal(t, 2, snap.Total)
	assert.Equal(t, 0, snap.ActiveIndex)
	assert.Equal(t, "Piscine", snap.Records[0].Name)
	assert.Equal(t, "Vitres", snap.Records[1].Name)
}

func TestHandleServices_MalformedFiltersAreUnconstrained(t *testing.T) {
	mux := newTestMux(t)

	// Unrecognized enum values and a non-integer min_reviews normalize
	// to "no constraint" instead of failing the request.
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/catalog/services?category=toiture&difficulty=extreme&min_reviews=abc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 3, snap.Total)
}

func TestHandleServices_SearchText(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/services?q=PISCINE", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Equal(t, 1, snap.Total)
	assert.Equal(t, "Piscine", snap.Records[0].Name)
}

func TestHandleNavigate(t *testing.T) {
	mux := newTestMux(t)

	// Prime state.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/services", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"direction":"next","step":2}`)
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/navigate", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.ActiveIndex)
}

func TestHandleNavigate_BadDirection(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"direction":"sideways"}`)
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/navigate", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestHandleNavigate_BadJSON(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/navigate", strings.NewReader("{")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleActive_RoundTrip(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/services", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Set directly (list entry clicked); out-of-range clamps.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/catalog/active", strings.NewReader(`{"index":99}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.ActiveIndex)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/active", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var active ActiveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Equal(t, 2, active.ActiveIndex)
}

func TestHandleServices_ForceRefresh(t *testing.T) {
	c, _, _ := newTestController(t, staticSource(testutil.NewService()))
	mux := http.NewServeMux()
	NewHandler(c, testutil.Logger()).RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/services", nil))
	var first Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.Equal(t, OriginRemote, first.Origin)

	// Without refresh=true the second call is served from cache.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/services", nil))
	var cached Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cached))
	assert.Equal(t, OriginCache, cached.Origin)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/services?refresh=true", nil))
	var forced Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forced))
	assert.Equal(t, OriginRemote, forced.Origin)
}
