package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/specdock/specdock/internal/config"
	"github.com/specdock/specdock/internal/domain/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherYAML = `openapi: 3.0.0
info:
  title: Weather API
  version: 1.2.0
  description: Current weather conditions and forecasts
servers:
  - url: https://api.weather.example
tags:
  - name: Weather
paths:
  /current:
    get:
      operationId: getCurrentWeather
      summary: Get current weather conditions
  /forecast:
    get:
      operationId: getForecast
components:
  schemas:
    Conditions:
      type: object
  securitySchemes:
    apiKey:
      type: apiKey
`

const petstoreJSON = `{
  "openapi": "3.0.0",
  "info": {
    "title": "Petstore",
    "version": "2.0.0"
  },
  "paths": {
    "/pets": {
      "get": {
        "operationId": "listPets"
      }
    }
  }
}`

func newTestServer(t *testing.T, files map[string]string) (*Server, string) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "api-server-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644))
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.Default()
	cfg.Server.SpecsDir = tmpDir
	cfg.Server.BaseURL = "http://testhost:8001"

	return New(log, cfg, registry.Scan(tmpDir, log)), tmpDir
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := get(srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var health HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
}

func TestCollections(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"weather-openapi.yaml": weatherYAML})

	w := get(srv, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var collections []Collection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collections))
	require.Len(t, collections, 1)

	c := collections[0]
	assert.Equal(t, "Weather API", c.Name)
	assert.Equal(t, "Current weather conditions and forecasts", c.Description)
	assert.Equal(t, "http://testhost:8001/weather/openapi.json", c.OpenAPISpec)
	assert.Equal(t, "https://api.weather.example", c.BaseURL)
	assert.Equal(t, []string{"weather", "current", "conditions", "forecasts"}, c.Tags)
	assert.Equal(t, []string{
		"conditions", "current", "forecast",
		"getCurrentWeather", "getForecast", "weather",
	}, c.Capabilities)
}

func TestCollections_FallbackOnBrokenSpec(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"broken-openapi.yaml": "key: [unclosed"})

	w := get(srv, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var collections []Collection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collections))
	require.Len(t, collections, 1)

	c := collections[0]
	assert.Equal(t, "Broken", c.Name)
	assert.Equal(t, "Broken API", c.Description)
	assert.Equal(t, "http://testhost:8001/broken/openapi.json", c.OpenAPISpec)
	assert.Empty(t, c.Tags)
	assert.Empty(t, c.Capabilities)
	assert.Empty(t, c.BaseURL)
}

func TestCollections_SkipsVanishedFile(t *testing.T) {
	srv, dir := newTestServer(t, map[string]string{
		"weather-openapi.yaml": weatherYAML,
		"petstore.json":        petstoreJSON,
	})
	require.NoError(t, os.Remove(filepath.Join(dir, "petstore.json")))

	w := get(srv, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var collections []Collection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collections))
	require.Len(t, collections, 1)
	assert.Equal(t, "Weather API", collections[0].Name)
}

func TestSpecs(t *testing.T) {
	srv, dir := newTestServer(t, map[string]string{"weather-openapi.yaml": weatherYAML})

	w := get(srv, "/specs")
	require.Equal(t, http.StatusOK, w.Code)

	var list SpecList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, dir, list.SpecsDirectory)
	require.Len(t, list.Specifications, 1)

	spec := list.Specifications[0].(map[string]any)
	assert.Equal(t, "weather", spec["name"])
	assert.Equal(t, "weather-openapi.yaml", spec["file_name"])
	assert.Equal(t, ".yaml", spec["file_type"])
	assert.Equal(t, "/weather/openapi.yaml", spec["yaml_url"])
	assert.Equal(t, "/weather/openapi.json", spec["json_url"])
	assert.Equal(t, "/weather/download", spec["download_url"])
	assert.Equal(t, "/weather/info", spec["info_url"])
	assert.Equal(t, true, spec["exists"])
	assert.Greater(t, spec["size_bytes"].(float64), 0.0)
	assert.NotNil(t, spec["modified_time"])
}

func TestSpecs_MissingFileKeepsRecord(t *testing.T) {
	srv, dir := newTestServer(t, map[string]string{"weather-openapi.yaml": weatherYAML})
	require.NoError(t, os.Remove(filepath.Join(dir, "weather-openapi.yaml")))

	w := get(srv, "/specs")
	require.Equal(t, http.StatusOK, w.Code)

	var list SpecList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)

	spec := list.Specifications[0].(map[string]any)
	assert.Equal(t, false, spec["exists"])
	assert.Equal(t, 0.0, spec["size_bytes"])
	assert.Nil(t, spec["modified_time"])
}

func TestSpecs_EmptyDirectory(t *testing.T) {
	srv, dir := newTestServer(t, nil)

	w := get(srv, "/specs")
	require.Equal(t, http.StatusOK, w.Code)

	var list SpecList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Zero(t, list.Count)
	assert.NotNil(t, list.Specifications)
	assert.Empty(t, list.Specifications)
	assert.Equal(t, dir, list.SpecsDirectory)
}

func TestSpecYAML_Passthrough(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"weather-openapi.yaml": weatherYAML})

	w := get(srv, "/weather/openapi.yaml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, weatherYAML, w.Body.String())
	assert.Equal(t, "application/x-yaml", w.Header().Get("Content-Type"))
	assert.Equal(t, "inline; filename=weather-openapi.yaml", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
}

func TestSpecJSON_ConvertedFromYAML(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"weather-openapi.yaml": weatherYAML})

	w := get(srv, "/weather/openapi.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "inline; filename=weather-openapi.json", w.Header().Get("Content-Disposition"))

	// Key order mirrors the source document.
	assert.True(t, strings.HasPrefix(w.Body.String(), "{\n  \"openapi\": \"3.0.0\",\n  \"info\": {"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	info := body["info"].(map[string]any)
	assert.Equal(t, "Weather API", info["title"])
	assert.Equal(t, "1.2.0", info["version"])
}

func TestSpecJSON_Passthrough(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"petstore.json": petstoreJSON})

	w := get(srv, "/petstore/openapi.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, petstoreJSON, w.Body.String())
}

func TestSpecYAML_ConvertedFromJSON(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"petstore.json": petstoreJSON})

	w := get(srv, "/petstore/openapi.yaml")
	require.Equal(t, http.StatusOK, w.Code)

	want := `openapi: 3.0.0
info:
  title: Petstore
  version: 2.0.0
paths:
  /pets:
    get:
      operationId: listPets
`
	assert.Equal(t, want, w.Body.String())
}

func TestSpec_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	for _, path := range []string{"/nope/openapi.yaml", "/nope/openapi.json", "/nope/download", "/nope/info"} {
		w := get(srv, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Specification 'nope' not found", body["detail"])
	}
}

func TestSpec_FileVanished(t *testing.T) {
	srv, dir := newTestServer(t, map[string]string{"weather-openapi.yaml": weatherYAML})
	require.NoError(t, os.Remove(filepath.Join(dir, "weather-openapi.yaml")))

	w := get(srv, "/weather/openapi.yaml")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Specification file not found: "+filepath.Join(dir, "weather-openapi.yaml"), body["detail"])
}

func TestSpec_BrokenDocumentIsServerError(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"broken.yaml": "key: [unclosed"})

	w := get(srv, "/broken/openapi.json")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body["detail"], "Error serving specification:"), body["detail"])
}

func TestDownload(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"weather-openapi.yaml": weatherYAML})

	w := get(srv, "/weather/download")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, weatherYAML, w.Body.String())
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=weather-openapi.yaml", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
}

func TestInfo(t *testing.T) {
	srv, dir := newTestServer(t, map[string]string{"weather-openapi.yaml": weatherYAML})

	w := get(srv, "/weather/info")
	require.Equal(t, http.StatusOK, w.Code)

	var info SpecInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "weather", info.SpecName)
	assert.Equal(t, "Weather API", info.Title)
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "Current weather conditions and forecasts", info.Description)
	assert.Equal(t, 2, info.Endpoints)
	assert.Equal(t, []any{"/current", "/forecast"}, info.EndpointPaths)
	assert.Equal(t, 1, info.Schemas)
	assert.Equal(t, 1, info.SecuritySchemes)
	require.Len(t, info.Servers, 1)
	assert.Equal(t, map[string]any{"url": "https://api.weather.example"}, info.Servers[0])

	assert.Equal(t, "weather-openapi.yaml", info.FileInfo.Name)
	assert.Equal(t, filepath.Join(dir, "weather-openapi.yaml"), info.FileInfo.Path)
	assert.Equal(t, ".yaml", info.FileInfo.Type)
	assert.Greater(t, info.FileInfo.SizeBytes, int64(0))
	assert.Greater(t, info.FileInfo.Modified, 0.0)

	assert.Equal(t, "/weather/openapi.yaml", info.URLs.YAML)
	assert.Equal(t, "/weather/openapi.json", info.URLs.JSON)
	assert.Equal(t, "/weather/download", info.URLs.Download)
}

func TestInfo_TooManyEndpointsCollapses(t *testing.T) {
	var b strings.Builder
	b.WriteString("openapi: 3.0.0\ninfo:\n  title: Big\n  version: '1'\npaths:\n")
	for i := 0; i < 51; i++ {
		fmt.Fprintf(&b, "  /p%d:\n    get: {}\n", i)
	}
	srv, _ := newTestServer(t, map[string]string{"big.yaml": b.String()})

	w := get(srv, "/big/info")
	require.Equal(t, http.StatusOK, w.Code)

	var info SpecInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, 51, info.Endpoints)
	assert.Equal(t, "51 endpoints (too many to list)", info.EndpointPaths)
}

func TestInfo_MinimalDocumentDefaults(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"bare.yaml": "openapi: 3.0.0\n"})

	w := get(srv, "/bare/info")
	require.Equal(t, http.StatusOK, w.Code)

	var info SpecInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "Unknown", info.Title)
	assert.Equal(t, "Unknown", info.Version)
	assert.Empty(t, info.Description)
	assert.Zero(t, info.Endpoints)
	assert.Equal(t, []any{}, info.EndpointPaths)
	assert.Empty(t, info.Servers)
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest("OPTIONS", "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = get(srv, "/health")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest("POST", "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Method Not Allowed", body["detail"])
}

func TestUnknownRouteIsJSON(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := get(srv, "/weather/unknown-sub")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body["detail"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	// Prime the counters with one handled request.
	get(srv, "/health")

	w := get(srv, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "specdock_http_requests_total")
}

func TestRateLimit(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "api-ratelimit-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.Default()
	cfg.Server.SpecsDir = tmpDir
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Requests = 2
	cfg.RateLimit.WindowSeconds = 60

	srv := New(log, cfg, registry.Scan(tmpDir, log))

	assert.Equal(t, http.StatusOK, get(srv, "/health").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/health").Code)

	w := get(srv, "/health")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit exceeded, try again later", body["detail"])
}
