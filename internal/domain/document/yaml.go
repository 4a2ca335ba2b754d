package document

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Kind == 0 {
		// Empty input parses to a zero node; normalize to a null document.
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}},
		}
	}
	stripStyle(&doc)
	return &doc, nil
}

func encodeYAML(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// stripStyle clears flow and quoting styles so the tree renders in block
// style. The encoder re-quotes scalars that need it.
func stripStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		stripStyle(c)
	}
}
