package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SpecClient is a test client for the specdock HTTP API.
type SpecClient struct {
	BaseURL    string // e.g., "http://127.0.0.1:8001"
	HTTPClient *http.Client
}

// Result captures one HTTP exchange for expectation checks.
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON decodes the response body into v.
func (r *Result) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// NewClient creates a new specdock test client.
func NewClient(baseURL string) *SpecClient {
	return &SpecClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Get performs a GET against the daemon and returns the exchange. Any
// HTTP status is a successful exchange; only transport failures error.
func (c *SpecClient) Get(path string) (*Result, error) {
	resp, err := c.HTTPClient.Get(c.BaseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Result{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *SpecClient) Health() (*Result, error) {
	return c.Get("/health")
}

func (c *SpecClient) Collections() (*Result, error) {
	return c.Get("/")
}

func (c *SpecClient) Specs() (*Result, error) {
	return c.Get("/specs")
}

func (c *SpecClient) SpecYAML(name string) (*Result, error) {
	return c.Get(fmt.Sprintf("/%s/openapi.yaml", url.PathEscape(name)))
}

func (c *SpecClient) SpecJSON(name string) (*Result, error) {
	return c.Get(fmt.Sprintf("/%s/openapi.json", url.PathEscape(name)))
}

func (c *SpecClient) Download(name string) (*Result, error) {
	return c.Get(fmt.Sprintf("/%s/download", url.PathEscape(name)))
}

func (c *SpecClient) Info(name string) (*Result, error) {
	return c.Get(fmt.Sprintf("/%s/info", url.PathEscape(name)))
}
