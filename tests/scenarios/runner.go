package scenarios

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/specdock/specdock/tests/client"
	"gopkg.in/yaml.v3"
)

// Scenario represents a test scenario defined in YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Timeout     string         `yaml:"timeout"`
	Requires    ScenarioReqs   `yaml:"requires"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioReqs struct {
	Specs []string `yaml:"specs"`
}

type ScenarioStep struct {
	Name   string                 `yaml:"name"`
	Action string                 `yaml:"action"`
	Spec   string                 `yaml:"spec,omitempty"`
	Path   string                 `yaml:"path,omitempty"`
	Args   map[string]interface{} `yaml:"args,omitempty"`
	Expect map[string]interface{} `yaml:"expect"`
}

// ScenarioRunner executes test scenarios.
type ScenarioRunner struct {
	Client *client.SpecClient
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Run executes a single scenario.
func (r *ScenarioRunner) Run(s *Scenario) error {
	fmt.Printf("Running scenario: %s\n", s.Name)

	for _, step := range s.Steps {
		fmt.Printf("  Step: %s\n", step.Name)
		var resp *client.Result
		var err error

		switch step.Action {
		case "health":
			resp, err = r.Client.Health()
		case "collections":
			resp, err = r.Client.Collections()
		case "specs":
			resp, err = r.Client.Specs()
		case "get_yaml":
			resp, err = r.Client.SpecYAML(step.Spec)
		case "get_json":
			resp, err = r.Client.SpecJSON(step.Spec)
		case "download":
			resp, err = r.Client.Download(step.Spec)
		case "info":
			resp, err = r.Client.Info(step.Spec)
		case "get":
			resp, err = r.Client.Get(step.Path)
		case "wait":
			seconds, _ := step.Args["seconds"].(int)
			if seconds == 0 {
				seconds = 1
			}
			fmt.Printf("  Waiting %d seconds...\n", seconds)
			time.Sleep(time.Duration(seconds) * time.Second)
			continue
		default:
			return fmt.Errorf("unknown action: %s", step.Action)
		}

		if err != nil {
			return fmt.Errorf("step %s failed: %w", step.Name, err)
		}

		if err := r.validateExpectations(step.Expect, resp); err != nil {
			return fmt.Errorf("step %s expectation failed: %w", step.Name, err)
		}
	}

	return nil
}

func (r *ScenarioRunner) validateExpectations(expect map[string]interface{}, resp *client.Result) error {
	for key, expectedValue := range expect {
		switch key {
		case "status":
			if resp.Status != expectedValue.(int) {
				return fmt.Errorf("expected status %d, got %d. Body: %s", expectedValue.(int), resp.Status, resp.Body)
			}
		case "content_type":
			ct := resp.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, expectedValue.(string)) {
				return fmt.Errorf("expected content type %s, got %s", expectedValue, ct)
			}
		case "body_contains":
			expectedStr := expectedValue.(string)
			if !strings.Contains(string(resp.Body), expectedStr) {
				return fmt.Errorf("expected body to contain '%s', but it didn't. Body: %s", expectedStr, string(resp.Body))
			}
		case "body_not_contains":
			unexpectedStr := expectedValue.(string)
			if strings.Contains(string(resp.Body), unexpectedStr) {
				return fmt.Errorf("expected body NOT to contain '%s', but it did. Body: %s", unexpectedStr, string(resp.Body))
			}
		case "min_count":
			var envelope struct {
				Count int `json:"count"`
			}
			json.Unmarshal(resp.Body, &envelope)
			if envelope.Count < expectedValue.(int) {
				return fmt.Errorf("expected at least %d specifications, got %d", expectedValue.(int), envelope.Count)
			}
		case "names_contain":
			var result struct {
				Specifications []struct {
					Name string `json:"name"`
				} `json:"specifications"`
			}
			json.Unmarshal(resp.Body, &result)

			// Debug: print names found
			fmt.Printf("    Found specifications: ")
			for _, s := range result.Specifications {
				fmt.Printf("%s, ", s.Name)
			}
			fmt.Println()

			expectedNames := expectedValue.([]interface{})
			for _, en := range expectedNames {
				found := false
				for _, s := range result.Specifications {
					if s.Name == en.(string) {
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("expected specification %s not listed", en)
				}
			}
		}
	}
	return nil
}
