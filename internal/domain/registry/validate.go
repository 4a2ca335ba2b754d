package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/specdock/specdock/internal/domain/document"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a single validation finding.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds the result of validating one spec file.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

// Validate checks a parsed document for the structure the server relies
// on. Only a non-mapping root is an error; structural gaps the metadata
// extractors tolerate come back as warnings.
func Validate(doc *yaml.Node) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if !document.IsMapping(doc) {
		result.Errors = append(result.Errors, ValidationError{"document", "root must be a mapping"})
		result.Valid = false
		return result
	}

	if document.MapGet(doc, "openapi") == nil && document.MapGet(doc, "swagger") == nil {
		result.Warnings = append(result.Warnings, ValidationError{"openapi", "missing openapi/swagger version field"})
	}

	info := document.MapGet(doc, "info")
	if info == nil {
		result.Warnings = append(result.Warnings, ValidationError{"info", "recommended: add an info block"})
	} else {
		if title, ok := document.ScalarString(document.MapGet(info, "title")); !ok || title == "" {
			result.Warnings = append(result.Warnings, ValidationError{"info.title", "recommended: add a title"})
		}
		if version, ok := document.ScalarString(document.MapGet(info, "version")); !ok || version == "" {
			result.Warnings = append(result.Warnings, ValidationError{"info.version", "recommended: add a version"})
		}
	}

	paths := document.MapGet(doc, "paths")
	switch {
	case paths == nil:
		result.Warnings = append(result.Warnings, ValidationError{"paths", "document declares no paths"})
	case !document.IsMapping(paths):
		result.Errors = append(result.Errors, ValidationError{"paths", "must be a mapping of path templates"})
	case document.MapLen(paths) == 0:
		result.Warnings = append(result.Warnings, ValidationError{"paths", "paths mapping is empty"})
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateFile reads, parses and validates a single spec file. Unreadable
// files surface as errors; unparseable or unsupported files come back as
// invalid results.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	format, err := document.ForExtension(filepath.Ext(path))
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "file", Message: err.Error()}},
		}, nil
	}

	doc, err := document.Decode(data, format)
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: string(format), Message: err.Error()}},
		}, nil
	}

	return Validate(doc), nil
}

// ValidateDirectory validates every spec file in a directory.
func ValidateDirectory(dir string) (map[string]*ValidationResult, error) {
	results := make(map[string]*ValidationResult)

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if _, err := document.ForExtension(filepath.Ext(file.Name())); err != nil {
			continue
		}

		path := filepath.Join(dir, file.Name())
		result, err := ValidateFile(path)
		if err != nil {
			results[file.Name()] = &ValidationResult{
				Valid:  false,
				Errors: []ValidationError{{Field: "file", Message: err.Error()}},
			}
		} else {
			results[file.Name()] = result
		}
	}

	return results, nil
}
