package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/specdock/specdock/internal/domain/document"
	"github.com/specdock/specdock/internal/domain/metadata"
	"github.com/specdock/specdock/internal/domain/registry"
	"gopkg.in/yaml.v3"
)

// Collection is the agent-facing summary of one specification, served
// from the root endpoint.
type Collection struct {
	Name         string   `json:"name"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description"`
	OpenAPISpec  string   `json:"openapi_spec"`
	Capabilities []string `json:"capabilities"`
	BaseURL      string   `json:"base_url"`
}

// SpecSummary describes one indexed file in the /specs listing.
type SpecSummary struct {
	Name         string   `json:"name"`
	FileName     string   `json:"file_name"`
	FileType     string   `json:"file_type"`
	YAMLURL      string   `json:"yaml_url"`
	JSONURL      string   `json:"json_url"`
	DownloadURL  string   `json:"download_url"`
	InfoURL      string   `json:"info_url"`
	FilePath     string   `json:"file_path"`
	Exists       bool     `json:"exists"`
	SizeBytes    int64    `json:"size_bytes"`
	ModifiedTime *float64 `json:"modified_time"`
}

// SpecError replaces a summary whose file could not be inspected.
type SpecError struct {
	Name     string `json:"name"`
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// SpecList is the /specs response envelope.
type SpecList struct {
	Specifications []any  `json:"specifications"`
	Count          int    `json:"count"`
	SpecsDirectory string `json:"specs_directory"`
}

// FileInfo carries filesystem facts about a spec file.
type FileInfo struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	Type      string  `json:"type"`
	SizeBytes int64   `json:"size_bytes"`
	Modified  float64 `json:"modified"`
}

// SpecURLs lists the retrieval endpoints for one spec.
type SpecURLs struct {
	YAML     string `json:"yaml"`
	JSON     string `json:"json"`
	Download string `json:"download"`
}

// SpecInfo is the /{spec}/info response.
type SpecInfo struct {
	SpecName        string   `json:"spec_name"`
	Title           string   `json:"title"`
	Version         string   `json:"version"`
	Description     string   `json:"description"`
	Endpoints       int      `json:"endpoints"`
	EndpointPaths   any      `json:"endpoint_paths"`
	Schemas         int      `json:"schemas"`
	SecuritySchemes int      `json:"security_schemes"`
	Servers         []any    `json:"servers"`
	FileInfo        FileInfo `json:"file_info"`
	URLs            SpecURLs `json:"urls"`
}

// HealthStatus is the /health response.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeFailure maps a handler failure onto the HTTP surface: unsupported
// extensions are client errors, everything else is a 500 carrying the
// failure detail.
func writeFailure(w http.ResponseWriter, err error, context string) {
	if errors.Is(err, document.ErrUnsupportedType) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", context, err))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{Status: "healthy", Message: "specdock is running"})
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	collections := make([]Collection, 0, s.index.Len())
	for _, entry := range s.index.Entries() {
		if _, err := os.Stat(entry.Path); err != nil {
			// Vanished since the scan; listings simply omit it.
			continue
		}
		doc, err := loadDocument(entry)
		if err != nil {
			s.log.Errorf("Error processing spec %s: %v", entry.Name, err)
			collections = append(collections, s.fallbackCollection(entry.Name))
			continue
		}
		collections = append(collections, s.buildCollection(entry.Name, doc))
	}
	writeJSON(w, http.StatusOK, collections)
}

func (s *Server) buildCollection(name string, doc *yaml.Node) Collection {
	info := document.MapGet(doc, "info")

	title, ok := document.ScalarString(document.MapGet(info, "title"))
	if !ok {
		title = titleCase(strings.ReplaceAll(name, "_", " "))
	}
	desc, ok := document.ScalarString(document.MapGet(info, "description"))
	if !ok {
		desc = titleCase(name) + " API"
	}

	baseURL := ""
	if servers := document.SeqItems(document.MapGet(doc, "servers")); len(servers) > 0 {
		baseURL, _ = document.ScalarString(document.MapGet(servers[0], "url"))
	}

	return Collection{
		Name:         title,
		Tags:         metadata.Tags(doc),
		Description:  strings.TrimSpace(desc),
		OpenAPISpec:  s.specURL(name),
		Capabilities: metadata.Capabilities(doc),
		BaseURL:      baseURL,
	}
}

// fallbackCollection is the degraded record for a file that failed to
// parse: a humanized name derived from the short name and no metadata.
func (s *Server) fallbackCollection(name string) Collection {
	return Collection{
		Name:         titleCase(strings.ReplaceAll(name, "_", " ")),
		Tags:         []string{},
		Description:  titleCase(name) + " API",
		OpenAPISpec:  s.specURL(name),
		Capabilities: []string{},
		BaseURL:      "",
	}
}

func (s *Server) specURL(name string) string {
	return fmt.Sprintf("%s/%s/openapi.json", strings.TrimRight(s.cfg.Server.BaseURL, "/"), name)
}

func (s *Server) handleSpecs(w http.ResponseWriter, r *http.Request) {
	specs := make([]any, 0, s.index.Len())
	for _, entry := range s.index.Entries() {
		specs = append(specs, s.summarize(entry))
	}
	writeJSON(w, http.StatusOK, SpecList{
		Specifications: specs,
		Count:          len(specs),
		SpecsDirectory: s.index.Dir(),
	})
}

func (s *Server) summarize(entry registry.Entry) any {
	summary := SpecSummary{
		Name:        entry.Name,
		FileName:    entry.FileName,
		FileType:    "." + entry.Ext,
		YAMLURL:     "/" + entry.Name + "/openapi.yaml",
		JSONURL:     "/" + entry.Name + "/openapi.json",
		DownloadURL: "/" + entry.Name + "/download",
		InfoURL:     "/" + entry.Name + "/info",
		FilePath:    entry.Path,
	}

	fi, err := os.Stat(entry.Path)
	switch {
	case err == nil:
		summary.Exists = true
		summary.SizeBytes = fi.Size()
		mtime := unixSeconds(fi.ModTime())
		summary.ModifiedTime = &mtime
	case os.IsNotExist(err):
		// Keep the record with exists=false and a null mtime.
	default:
		s.log.Errorf("Error getting info for spec %s: %v", entry.Name, err)
		return SpecError{Name: entry.Name, FileName: entry.FileName, Error: err.Error()}
	}
	return summary
}

func (s *Server) handleSpecYAML(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	body, err := render(entry, document.FormatYAML)
	if err != nil {
		s.log.Errorf("Error serving YAML spec %s: %v", entry.Name, err)
		writeFailure(w, err, "Error serving specification")
		return
	}
	serveSpec(w, body, "application/x-yaml", fmt.Sprintf("inline; filename=%s-openapi.yaml", entry.Name))
}

func (s *Server) handleSpecJSON(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	body, err := render(entry, document.FormatJSON)
	if err != nil {
		s.log.Errorf("Error serving JSON spec %s: %v", entry.Name, err)
		writeFailure(w, err, "Error serving specification")
		return
	}
	serveSpec(w, body, "application/json", fmt.Sprintf("inline; filename=%s-openapi.json", entry.Name))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		s.log.Errorf("Error downloading spec %s: %v", entry.Name, err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error downloading specification: %v", err))
		return
	}
	serveSpec(w, data, "application/octet-stream", fmt.Sprintf("attachment; filename=%s", entry.FileName))
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}

	fi, err := os.Stat(entry.Path)
	if err != nil {
		s.log.Errorf("Error reading spec info %s: %v", entry.Name, err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error reading specification: %v", err))
		return
	}
	doc, err := loadDocument(entry)
	if err != nil {
		s.log.Errorf("Error reading spec info %s: %v", entry.Name, err)
		writeFailure(w, err, "Error reading specification")
		return
	}

	info := document.MapGet(doc, "info")
	title, ok2 := document.ScalarString(document.MapGet(info, "title"))
	if !ok2 {
		title = "Unknown"
	}
	version, ok2 := document.ScalarString(document.MapGet(info, "version"))
	if !ok2 {
		version = "Unknown"
	}
	desc, _ := document.ScalarString(document.MapGet(info, "description"))

	paths := document.MapGet(doc, "paths")
	endpoints := document.MapLen(paths)
	var endpointPaths any
	if endpoints <= 50 {
		endpointPaths = document.MapKeys(paths)
	} else {
		endpointPaths = fmt.Sprintf("%d endpoints (too many to list)", endpoints)
	}

	components := document.MapGet(doc, "components")

	servers := []any{}
	if node := document.MapGet(doc, "servers"); node != nil {
		_ = node.Decode(&servers)
	}

	writeJSON(w, http.StatusOK, SpecInfo{
		SpecName:        entry.Name,
		Title:           title,
		Version:         version,
		Description:     desc,
		Endpoints:       endpoints,
		EndpointPaths:   endpointPaths,
		Schemas:         document.MapLen(document.MapGet(components, "schemas")),
		SecuritySchemes: document.MapLen(document.MapGet(components, "securitySchemes")),
		Servers:         servers,
		FileInfo: FileInfo{
			Name:      entry.FileName,
			Path:      entry.Path,
			Type:      "." + entry.Ext,
			SizeBytes: fi.Size(),
			Modified:  unixSeconds(fi.ModTime()),
		},
		URLs: SpecURLs{
			YAML:     "/" + entry.Name + "/openapi.yaml",
			JSON:     "/" + entry.Name + "/openapi.json",
			Download: "/" + entry.Name + "/download",
		},
	})
}

// lookup resolves the {spec} path parameter, writing the 404 itself when
// the name is unknown or its file has vanished since the scan.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (registry.Entry, bool) {
	name := chi.URLParam(r, "spec")
	entry, ok := s.index.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Specification '%s' not found", name))
		return registry.Entry{}, false
	}
	if _, err := os.Stat(entry.Path); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Specification file not found: %s", entry.Path))
		return registry.Entry{}, false
	}
	return entry, true
}

// loadDocument reads and parses the file behind entry.
func loadDocument(entry registry.Entry) (*yaml.Node, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", entry.FileName, err)
	}
	format, err := document.ForExtension(entry.Ext)
	if err != nil {
		return nil, err
	}
	return document.Decode(data, format)
}

// render returns the spec bytes in the requested format, passing the file
// through untouched when it is already stored that way.
func render(entry registry.Entry, target document.Format) ([]byte, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", entry.FileName, err)
	}
	source, err := document.ForExtension(entry.Ext)
	if err != nil {
		return nil, err
	}
	if source == target {
		return data, nil
	}
	doc, err := document.Decode(data, source)
	if err != nil {
		return nil, err
	}
	return document.Encode(doc, target)
}

func serveSpec(w http.ResponseWriter, body []byte, mediaType, disposition string) {
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(body)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// titleCase uppercases the first letter of every run of letters and
// lowercases the rest, matching how the collection fallbacks humanize
// snake_case names ("weather_data" becomes "Weather_Data").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToTitle(r))
			prevLetter = true
		}
	}
	return b.String()
}
