// Package document parses OpenAPI documents and re-encodes them between
// their YAML and JSON textual forms. Parsing produces a yaml.Node tree so
// that mapping key order survives a round trip in either direction.
package document

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies one of the two textual encodings a spec file can use.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrParse wraps malformed YAML or JSON input.
	ErrParse = errors.New("invalid document")
	// ErrUnsupportedType marks a file extension outside yaml/yml/json.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// ForExtension maps a file extension (with or without the leading dot)
// onto the format used to parse it.
func ForExtension(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
}

// Decode parses data in the given format into a document node. The
// returned tree carries no presentation style, so encoding it yields
// block-style YAML regardless of how the source was laid out.
func Decode(data []byte, format Format) (*yaml.Node, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, format)
	}
}

// Encode renders a document node in the given format. Mapping keys appear
// in the order they held in the source document.
func Encode(doc *yaml.Node, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return encodeYAML(doc)
	case FormatJSON:
		return encodeJSON(doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, format)
	}
}
