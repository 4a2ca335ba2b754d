package client

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_Health(t *testing.T) {
	specdockURL := os.Getenv("SPECDOCK_URL")
	if specdockURL == "" {
		t.Skip("SPECDOCK_URL not set")
	}

	client := NewClient(specdockURL)
	resp, err := client.Health()
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)

	var health map[string]interface{}
	require.NoError(t, resp.JSON(&health))
	assert.Equal(t, "healthy", health["status"])
}

func TestAPI_ListSpecs(t *testing.T) {
	specdockURL := os.Getenv("SPECDOCK_URL")
	if specdockURL == "" {
		t.Skip("SPECDOCK_URL not set")
	}

	client := NewClient(specdockURL)
	resp, err := client.Specs()
	require.NoError(t, err)
	require.Equal(t, 200, resp.Status)

	var list struct {
		Specifications []struct {
			Name string `json:"name"`
		} `json:"specifications"`
		Count          int    `json:"count"`
		SpecsDirectory string `json:"specs_directory"`
	}
	require.NoError(t, resp.JSON(&list))
	assert.Len(t, list.Specifications, list.Count)
	for _, s := range list.Specifications {
		assert.NotEmpty(t, s.Name)
	}
}

func TestAPI_ConversionRoundTrip(t *testing.T) {
	specdockURL := os.Getenv("SPECDOCK_URL")
	if specdockURL == "" {
		t.Skip("SPECDOCK_URL not set")
	}

	client := NewClient(specdockURL)
	resp, err := client.Specs()
	require.NoError(t, err)
	require.Equal(t, 200, resp.Status)

	var list struct {
		Specifications []struct {
			Name   string `json:"name"`
			Exists bool   `json:"exists"`
		} `json:"specifications"`
	}
	require.NoError(t, resp.JSON(&list))

	name := ""
	for _, s := range list.Specifications {
		if s.Exists {
			name = s.Name
			break
		}
	}
	if name == "" {
		t.Skip("no specifications loaded")
	}

	yamlResp, err := client.SpecYAML(name)
	require.NoError(t, err)
	assert.Equal(t, 200, yamlResp.Status)
	assert.True(t, strings.HasPrefix(yamlResp.Header.Get("Content-Type"), "application/x-yaml"))

	jsonResp, err := client.SpecJSON(name)
	require.NoError(t, err)
	assert.Equal(t, 200, jsonResp.Status)
	assert.True(t, strings.HasPrefix(jsonResp.Header.Get("Content-Type"), "application/json"))
	assert.True(t, json.Valid(jsonResp.Body), "JSON rendering is not valid JSON")
}

func TestAPI_SpecNotFound(t *testing.T) {
	specdockURL := os.Getenv("SPECDOCK_URL")
	if specdockURL == "" {
		t.Skip("SPECDOCK_URL not set")
	}

	client := NewClient(specdockURL)
	resp, err := client.Info("definitely-not-a-spec")
	require.NoError(t, err)
	assert.Equal(t, 404, resp.Status)

	var body map[string]string
	require.NoError(t, resp.JSON(&body))
	assert.Contains(t, body["detail"], "not found")
}
