package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the specdock daemon's HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Health mirrors the daemon's /health response.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SpecSummary mirrors one entry of the /specs listing. Entries whose
// file could not be inspected only carry Name, FileName and Error.
type SpecSummary struct {
	Name         string   `json:"name"`
	FileName     string   `json:"file_name"`
	FileType     string   `json:"file_type"`
	FilePath     string   `json:"file_path"`
	Exists       bool     `json:"exists"`
	SizeBytes    int64    `json:"size_bytes"`
	ModifiedTime *float64 `json:"modified_time"`
	Error        string   `json:"error,omitempty"`
}

// SpecList mirrors the /specs response envelope.
type SpecList struct {
	Specifications []SpecSummary `json:"specifications"`
	Count          int           `json:"count"`
	SpecsDirectory string        `json:"specs_directory"`
}

// FileInfo mirrors the file_info block of a spec's /info response.
type FileInfo struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	Type      string  `json:"type"`
	SizeBytes int64   `json:"size_bytes"`
	Modified  float64 `json:"modified"`
}

// SpecURLs mirrors the urls block of a spec's /info response.
type SpecURLs struct {
	YAML     string `json:"yaml"`
	JSON     string `json:"json"`
	Download string `json:"download"`
}

// SpecInfo mirrors a spec's /info response.
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

func (c *Client) GetHealth() (*Health, error) {
	var h Health
	err := c.get("/health", &h)
	return &h, err
}

func (c *Client) ListSpecs() (*SpecList, error) {
	var list SpecList
	err := c.get("/specs", &list)
	return &list, err
}

func (c *Client) GetSpecInfo(name string) (*SpecInfo, error) {
	var info SpecInfo
	err := c.get(fmt.Sprintf("/%s/info", url.PathEscape(name)), &info)
	return &info, err
}

// FetchSpec downloads one spec rendered in the given format ("yaml" or
// "json") and returns the raw document bytes.
func (c *Client) FetchSpec(name, format string) ([]byte, error) {
	resp, err := c.client.Get(fmt.Sprintf("%s/%s/openapi.%s", c.baseURL, url.PathEscape(name), format))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) get(path string, v interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// apiError turns a non-200 response into an error, preferring the
// daemon's {"detail": ...} body over the bare status code.
func apiError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		return fmt.Errorf("%s (status %d)", body.Detail, resp.StatusCode)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
