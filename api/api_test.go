package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/itsatony/swat_playback/docs"
	"github.com/itsatony/swat_playback/internal/config"
	"github.com/itsatony/swat_playback/internal/dataset"
	"github.com/itsatony/swat_playback/internal/models"
	"github.com/itsatony/swat_playback/internal/repository/memory"
	"github.com/itsatony/swat_playback/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sensorRow(ts, fit string) models.RawRow {
	return models.RawRow{
		Columns: []string{"Timestamp", "FIT101", "Normal/Attack"},
		Values:  map[string]string{"Timestamp": ts, "FIT101": fit, "Normal/Attack": "Normal"},
	}
}

func newTestRouter(t *testing.T, cfg config.ServerConfig) http.Handler {
	t.Helper()
	rb := memory.NewRecordBuilder()
	rb.Add(sensorRow("28/12/2015 10:29:13 AM", "2.5"))
	rb.Add(sensorRow("28/12/2015 10:29:14 AM", "2.6"))
	rb.Add(sensorRow("28/12/2015 10:29:15 AM", ""))

	ab := memory.NewAttackBuilder()
	ab.Add(models.RawRow{Values: map[string]string{
		"Attack #":     "1",
		"Attack":       "Open MV-101",
		"Start Time":   "28/12/2015 10:29:14",
		"End Time":     "10:44:53",
		"Attack Point": "MV-101;P-102",
	}})

	svc := service.New(dataset.NewReady(rb.Build(), ab.Build()), service.WithVersion("test"))
	return NewRouter(svc, cfg).Handler()
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	if rec.Header().Get("Content-Type") == "application/json" && rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestInfoRoute(t *testing.T) {
	h := newTestRouter(t, config.ServerConfig{CORSOrigins: []string{"*"}})
	rec, body := get(t, h, "/api/data/info")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["totalRecords"])
	assert.Equal(t, "28/12/2015 10:29:13 AM", body["startTime"])
	assert.Equal(t, "28/12/2015 10:29:15 AM", body["endTime"])
	assert.Equal(t, []any{"FIT101"}, body["deviceNames"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestByIndexRoute(t *testing.T) {
	h := newTestRouter(t, config.ServerConfig{})

	rec, body := get(t, h, "/api/data/by-index/1")
	require.Equal(t, http.StatusOK, rec.Code)

	current := body["timestampData"].(map[string]any)
	assert.Equal(t, 2.6, current["FIT101"])
	assert.Equal(t, "28/12/2015 10:29:14 AM", current["Timestamp"])
	assert.Equal(t, float64(1), current["index"])

	prev := body["prevTimestampData"].(map[string]any)
	assert.Equal(t, 2.5, prev["FIT101"])
	assert.InDelta(t, 0.1, body["diff"].(map[string]any)["FIT101"], 1e-9)

	attack := body["attackInfo"].(map[string]any)
	assert.Equal(t, true, attack["isActive"])
	assert.Equal(t, "1", attack["attackId"])
	assert.Equal(t, []any{"MV101", "P102"}, attack["targets"])

	rec, body = get(t, h, "/api/data/by-index/0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["prevTimestampData"])
	assert.Equal(t, false, body["attackInfo"].(map[string]any)["isActive"])
	assert.Nil(t, body["attackInfo"].(map[string]any)["attackId"])

	rec, body = get(t, h, "/api/data/by-index/2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["timestampData"].(map[string]any)["FIT101"], "unparseable readings are null")
}

func TestByIndexRouteErrors(t *testing.T) {
	h := newTestRouter(t, config.ServerConfig{})
	for _, target := range []string{"/api/data/by-index/3", "/api/data/by-index/-1", "/api/data/by-index/abc"} {
		rec, body := get(t, h, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "Index out of bounds", body["error"])
		assert.Equal(t, "index_out_of_range", body["type"])
		assert.NotEmpty(t, body["request_id"])
	}
}

func TestByTimestampRoute(t *testing.T) {
	h := newTestRouter(t, config.ServerConfig{})

	rec, body := get(t, h, "/api/data/by-timestamp?time=28/12/2015%2010:29:14")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["index"])
	assert.Equal(t, "28/12/2015 10:29:14 AM", body["timestamp"])

	rec, body = get(t, h, "/api/data/by-timestamp?time=01/01/2030%2000:00:00")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["index"])

	for _, target := range []string{"/api/data/by-timestamp", "/api/data/by-timestamp?time=garbage"} {
		rec, body = get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "malformed_timestamp", body["type"])
	}
}

func TestHistoryRoute(t *testing.T) {
	h := newTestRouter(t, config.ServerConfig{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data/history?deviceId=FIT101&endIndex=2&seconds=60", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var points []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 3)
	assert.Equal(t, 2.5, points[0]["value"])
	assert.Nil(t, points[2]["value"])
	assert.Contains(t, points[0], "jsTimestamp")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data/history?deviceId=FIT101&endIndex=2&seconds=1&mode=time", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	assert.Len(t, points, 2)

	for _, target := range []string{
		"/api/data/history?deviceId=NOPE&endIndex=2&seconds=1",
		"/api/data/history?deviceId=FIT101&endIndex=two&seconds=1",
		"/api/data/history?deviceId=FIT101&endIndex=2",
	} {
		rec, body := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "invalid_parameter", body["type"])
	}
}

func TestAttacksRoute(t *testing.T) {
	h := newTestRouter(t, config.ServerConfig{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attacks", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var attacks []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &attacks))
	require.Len(t, attacks, 1)
	assert.Equal(t, "1", attacks[0]["id"])
	assert.Equal(t, "28/12/2015 10:29:14", attacks[0]["startTime"])
	assert.Equal(t, float64(939000), attacks[0]["endMs"].(float64)-attacks[0]["startMs"].(float64))
}

func TestNotReady(t *testing.T) {
	svc := service.New(dataset.New(nil, nil))
	h := NewRouter(svc, config.ServerConfig{}).Handler()

	rec, body := get(t, h, "/api/data/info")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "data_not_ready", body["type"])

	rec, body = get(t, h, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "loading", body["state"])
}

func TestHealthAndDocs(t *testing.T) {
	h := newTestRouter(t, config.ServerConfig{})

	rec, body := get(t, h, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["state"])
	assert.Equal(t, float64(3), body["records"])
	assert.Equal(t, "test", body["version"])

	rec, body = get(t, h, "/api/docs/swagger.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", body["swagger"])
	assert.Contains(t, body["paths"], "/data/history")
}

func TestStaticAndCORS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>swat</html>"), 0o644))
	h := newTestRouter(t, config.ServerConfig{StaticDir: dir, CORSOrigins: []string{"http://dashboard.local"}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swat")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://dashboard.local", rec.Header().Get("Access-Control-Allow-Origin"))
}
