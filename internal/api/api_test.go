package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/domain/dto"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/service/auth"
	"github.com/ougirez/certenergy/internal/service/catalog"
	"github.com/ougirez/certenergy/internal/service/project"
	"github.com/ougirez/certenergy/internal/service/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogPayload = `{
  "atributs": {
    "combustibles": [{"code": "gas", "value": 1, "fep": 1.2, "co2_eq": 0.25}],
    "rendimiento_calef": [{"code": "boiler", "value": 2}],
    "distribucion_hvac": [{"code": "dist", "value": 0.9}],
    "control_hvac": [{"code": "ctrl", "value": 0.95}],
    "rendimiento_ref": [{"code": "chiller", "value": 3}]
  }
}`

const resultsPayload = `{
  "result_by_enclosure": [
    {"enclosure_id": 7, "enclosure_name": "office", "surface": 20, "positive_sum": 200, "negative_sum": -90}
  ],
  "base_by_enclosure": [
    {"enclosure_id": 7, "enclosure_name": "office", "surface": 20, "positive_sum": 200, "negative_sum": -90,
     "combustible_calef_code": "gas"}
  ]
}`

type nopStore struct {
	mu    sync.Mutex
	saved int
}

func (s *nopStore) SaveSelection(context.Context, uuid.UUID, int64, domain.Axis, string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved++
	return nil
}

func (s *nopStore) ListSelections(context.Context, uuid.UUID) ([]*domain.SelectionRecord, error) {
	return nil, nil
}

func (s *nopStore) SaveBaselineFuel(context.Context, uuid.UUID, string) error {
	return nil
}

func (s *nopStore) GetBaselineFuel(context.Context, uuid.UUID) (string, error) {
	return "", constants.ErrDBNotFound
}

type testEnv struct {
	handler http.Handler
	store   *nopStore
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catalogPayload))
	}))
	t.Cleanup(catalogSrv.Close)

	catalogs := catalog.NewCatalogService(catalogSrv.URL, time.Second, 0)
	_, err := catalogs.Load(context.Background())
	require.NoError(t, err)

	st := &nopStore{}
	projects := project.NewProjectService(st, catalogs, 2)
	t.Cleanup(func() { _ = projects.Close() })

	authService := auth.NewService("s3cret", time.Hour)
	token, err := authService.LoginAdmin(context.Background(), "s3cret")
	require.NoError(t, err)

	svc, err := NewAPIService(Config{}, projects, catalogs, authService)
	require.NoError(t, err)

	return &testEnv{handler: svc.Handler(), store: st, token: token}
}

func (e *testEnv) do(t *testing.T, method, path, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set(constants.HeaderKeySecretToken, e.token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) dto.SnapshotResponse {
	t.Helper()
	var resp dto.SnapshotResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestIngestRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	path := "/api/v1/projects/" + uuid.NewString() + "/results"

	rec := env.do(t, http.MethodPost, path, resultsPayload, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, path, resultsPayload, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeSnapshot(t, rec)
	require.Len(t, resp.Enclosures, 1)
	assert.Equal(t, 10.0, resp.Enclosures[0].HeatingDemand)
	assert.Equal(t, 4.5, resp.Enclosures[0].CoolingDemand)
}

func TestSelectionFlow(t *testing.T) {
	env := newTestEnv(t)
	base := "/api/v1/projects/" + uuid.NewString()

	rec := env.do(t, http.MethodGet, base+"/enclosures", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, base+"/results", resultsPayload, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, body := range []string{
		`{"axis": "heating_performance", "code": "boiler"}`,
		`{"axis": "heating_distribution", "code": "dist"}`,
		`{"axis": "heating_control", "code": "ctrl"}`,
	} {
		rec = env.do(t, http.MethodPut, base+"/enclosures/7/selections", body, false)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	resp := decodeSnapshot(t, rec)
	require.Len(t, resp.Enclosures, 1)
	assert.InDelta(t, 1.71, resp.Enclosures[0].SCOP, 1e-9)
	assert.Equal(t, 3, env.store.saved)

	rec = env.do(t, http.MethodGet, base+"/reports/demand", "", false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep report.Report
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, report.KindDemand, rep.Kind)
	require.Len(t, rep.Rows, 1)
}

func TestSelectionValidation(t *testing.T) {
	env := newTestEnv(t)
	base := "/api/v1/projects/" + uuid.NewString()

	rec := env.do(t, http.MethodPost, base+"/results", resultsPayload, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPut, base+"/enclosures/7/selections", `{"axis": "lighting", "code": "x"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, base+"/enclosures/99/selections", `{"axis": "heating_fuel", "code": "gas"}`, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/projects/not-a-uuid/enclosures/7/selections", `{"axis": "heating_fuel"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, base+"/reports/unknown", "", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBaselineAndRecalculate(t *testing.T) {
	env := newTestEnv(t)
	base := "/api/v1/projects/" + uuid.NewString()

	rec := env.do(t, http.MethodPost, base+"/recalculate", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, base+"/results", resultsPayload, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ingested := decodeSnapshot(t, rec)

	rec = env.do(t, http.MethodPut, base+"/baseline", `{"fuel_code": "gas"}`, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "gas", decodeSnapshot(t, rec).Enclosures[0].BaseFuelCode)

	rec = env.do(t, http.MethodPost, base+"/recalculate", "", false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Greater(t, decodeSnapshot(t, rec).Version, ingested.Version)
}

func TestCatalogEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/catalog", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var cat domain.Catalogs
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &cat))
	assert.Equal(t, 2.0, cat.HeatingPerformance.Coefficient("boiler"))

	rec = env.do(t, http.MethodPost, "/api/v1/catalog/reload", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/catalog/reload", "", true)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLoginAdminSetsCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/login", `{"secret": "nope"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/login", `{"secret": "s3cret"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.LoginAdminResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AuthToken)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.CookieKeySecretToken, cookies[0].Name)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/reload", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRouteUsesErrorResponse(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/nope", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp domain.ErrorResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
