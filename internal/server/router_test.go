package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ot-grc/internal/assessment"
	"ot-grc/internal/config"
	"ot-grc/internal/database"
	"ot-grc/internal/handlers"
	"ot-grc/internal/metrics"
	"ot-grc/internal/models"
	"ot-grc/internal/store"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	kv     *store.Memory
	engine *assessment.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database.InitSQLite(filepath.Join(t.TempDir(), "ot-grc.db"))
	t.Cleanup(func() { database.DB = nil })

	kv := store.NewMemory()
	reg := metrics.NewRegistry()
	engine := assessment.New(context.Background(), kv, nil, assessment.Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: reg,
	})

	cfg := &config.Config{SessionSecret: "test-secret", StoreBackend: config.BackendMemory}
	return &testServer{
		t:      t,
		router: NewRouter(cfg, handlers.NewAPI(engine, kv, reg)),
		kv:     kv,
		engine: engine,
	}
}

func (s *testServer) do(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) json(method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, cookies)
}

func (s *testServer) login(username, password string) []*http.Cookie {
	w := s.json(http.MethodPost, "/login", gin.H{"username": username, "password": password}, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(s.t, cookies)
	return cookies
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthAndAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/assessment", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.json(http.MethodPost, "/login", gin.H{"username": "eng@ot-grc.local", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRecordsCurrentUser(t *testing.T) {
	s := newTestServer(t)
	s.login("eng@ot-grc.local", "Eng123!")

	uc := store.StoreUsers{Store: s.kv}.CurrentUser(context.Background())
	require.NotNil(t, uc.UserTitle)
	assert.Equal(t, "OT Security Engineer", *uc.UserTitle)
	assert.Equal(t, "engineer", *uc.UserRole)
}

func TestThreatLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	cookies := s.login("eng@ot-grc.local", "Eng123!")

	w := s.json(http.MethodPost, "/api/assessment/threats", gin.H{
		"name":             "Ransomware via VPN",
		"likelihood":       0.7,
		"impact":           5,
		"existingControls": "Perimeter firewall",
		"frApplied":        []string{"FR1", "FR5"},
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.InDelta(t, 3.5, body["baseRisk"], 1e-9)
	threat := body["threat"].(map[string]interface{})
	id := threat["id"].(string)

	// FR2 не отмечено применимым
	w = s.json(http.MethodPost, "/api/assessment/threats/"+id+"/fr",
		gin.H{"fr": "FR2", "kind": "implemented", "on": true}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.json(http.MethodPost, "/api/assessment/threats/"+id+"/fr",
		gin.H{"fr": "FR1", "kind": "implemented", "on": true}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	// половина применимых FR реализована: снижение 0.2
	assert.InDelta(t, 2.8, body["residualRisk"], 1e-9)
	assert.Equal(t, []interface{}{"FR5"}, body["outstanding"])

	w = s.json(http.MethodGet, "/api/assessment/actions", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	actions := decode(t, w)["actions"].([]interface{})
	require.Len(t, actions, 1)
	assert.Equal(t, "implement_fr", actions[0].(map[string]interface{})["kind"])

	w = s.json(http.MethodPost, "/api/assessment/threats/missing/fr",
		gin.H{"fr": "FR1", "kind": "applied", "on": true}, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.json(http.MethodPost, "/api/assessment/threats",
		gin.H{"name": "Bad", "likelihood": 0.4, "impact": 3}, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.json(http.MethodDelete, "/api/assessment/threats/"+id, nil, cookies)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestStageNavigationOverHTTP(t *testing.T) {
	s := newTestServer(t)
	cookies := s.login("eng@ot-grc.local", "Eng123!")

	w := s.json(http.MethodPost, "/api/stage/next", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	stage := decode(t, w)["stage"].(map[string]interface{})
	assert.EqualValues(t, 2, stage["stage"])
	progress := stage["progress"].(map[string]interface{})
	assert.Equal(t, "OT Security Engineer", progress["userTitle"])

	w = s.json(http.MethodPost, "/api/stage/jump/9", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 2, s.engine.State().Stage)

	w = s.json(http.MethodPost, "/api/stage/jump/7", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	stage = decode(t, w)["stage"].(map[string]interface{})
	assert.Equal(t, "Generate Report", stage["nextLabel"])
}

func TestAuditorIsReadOnly(t *testing.T) {
	s := newTestServer(t)
	cookies := s.login("auditor@ot-grc.local", "Audit123!")

	w := s.json(http.MethodGet, "/api/assessment", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.json(http.MethodPost, "/api/assessment/assets", gin.H{"name": "PLC-1"}, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.json(http.MethodGet, "/api/audit", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEngineerCannotReadAudit(t *testing.T) {
	s := newTestServer(t)
	cookies := s.login("eng@ot-grc.local", "Eng123!")

	w := s.json(http.MethodGet, "/api/audit", nil, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func upload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImportAndExportOverHTTP(t *testing.T) {
	s := newTestServer(t)
	cookies := s.login("eng@ot-grc.local", "Eng123!")

	body, ct := upload(t, "inventory.csv", "Name,Type,Vendor,Criticality\nPLC-1,PLC,Siemens,critical\nHMI-1,HMI,,bogus\n")
	req := httptest.NewRequest(http.MethodPost, "/api/assessment/import", body)
	req.Header.Set("Content-Type", ct)
	w := s.do(req, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode(t, w)["imported"])

	assets := s.engine.Snapshot().Assets
	require.Len(t, assets, 2)
	assert.Equal(t, models.AssetType("plc"), assets[0].Type)
	assert.Equal(t, models.CriticalityMedium, assets[1].Criticality)

	body, ct = upload(t, "inventory.txt", "Name\nPLC-2\n")
	req = httptest.NewRequest(http.MethodPost, "/api/assessment/import", body)
	req.Header.Set("Content-Type", ct)
	w = s.do(req, cookies)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Len(t, s.engine.Snapshot().Assets, 2)

	w = s.json(http.MethodGet, "/api/assessment/export?format=csv", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Body.String(), "PLC-1")

	w = s.json(http.MethodGet, "/api/assessment/export?format=pdf", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/metrics", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.json(http.MethodGet, "/api/metrics", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "otgrc_exports_total")
	assert.Contains(t, w.Body.String(), "otgrc_imports_total")
}

func TestSaveAndCloneOverHTTP(t *testing.T) {
	s := newTestServer(t)
	cookies := s.login("eng@ot-grc.local", "Eng123!")

	w := s.json(http.MethodPut, "/api/assessment/metadata", gin.H{"name": "Water Plant", "date": "2025-01-01"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.json(http.MethodPost, "/api/assessment/save", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["saved"])

	raw, err := s.kv.Get(context.Background(), store.KeyAssessment)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Water Plant")

	w = s.json(http.MethodPost, "/api/assessment/clone?activate=true", nil, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Water Plant (Copy)", s.engine.Snapshot().Metadata.Name)

	w = s.json(http.MethodPut, "/api/assessment/decision",
		gin.H{"tolerableRiskThreshold": 9, "decision": "acceptable"}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterLimitsRoles(t *testing.T) {
	s := newTestServer(t)

	for _, role := range []string{"sales", "auditor", "admin"} {
		w := s.json(http.MethodPost, "/register",
			gin.H{"username": "new-" + role, "password": "Passw0rd!", "role": role}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, role)
	}

	w := s.json(http.MethodPost, "/register",
		gin.H{"username": "shift-lead", "password": "Passw0rd!", "title": "Shift Lead", "role": "viewer"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cookies := s.login("shift-lead", "Passw0rd!")
	w = s.json(http.MethodGet, "/api/assessment", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	// журнал аудита viewer не видит
	w = s.json(http.MethodGet, "/api/audit", nil, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
