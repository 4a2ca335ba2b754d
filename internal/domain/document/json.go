package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func decodeJSON(data []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := parseJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content after top-level value", ErrParse)
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}, nil
}

// parseJSONValue consumes one JSON value from the token stream. Numbers
// keep their source spelling so re-encoding does not reformat them.
func parseJSONValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("unexpected end of input")
	}
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string")
				}
				val, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
					val)
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			return n, nil
		case '[':
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, item)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return n, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v)
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}, nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func encodeJSON(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONNode(&buf, doc, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONNode(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSONNode(buf, n.Content[0], depth)
	case yaml.AliasNode:
		return writeJSONNode(buf, n.Alias, depth)
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind == yaml.AliasNode {
				key = key.Alias
			}
			if key.Kind != yaml.ScalarNode {
				return fmt.Errorf("encoding json: mapping key on line %d is not a scalar", key.Line)
			}
			writeIndent(buf, depth+1)
			buf.Write(marshalJSONString(key.Value))
			buf.WriteString(": ")
			if err := writeJSONNode(buf, n.Content[i+1], depth+1); err != nil {
				return err
			}
			if i+2 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range n.Content {
			writeIndent(buf, depth+1)
			if err := writeJSONNode(buf, item, depth+1); err != nil {
				return err
			}
			if i+1 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		buf.Write(jsonScalar(n))
		return nil
	}
	return fmt.Errorf("encoding json: unsupported node kind %d", n.Kind)
}

// jsonNumberRx matches literals that are already valid JSON numbers.
var jsonNumberRx = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// jsonScalar renders one scalar as a JSON value. YAML spellings that JSON
// cannot carry (hex ints, .inf, unquoted timestamps) fall back to a string
// or an equivalent decimal so the output stays valid JSON.
func jsonScalar(n *yaml.Node) []byte {
	value := n.Value
	switch n.ShortTag() {
	case "!!null":
		return []byte("null")
	case "!!bool":
		if b, err := strconv.ParseBool(value); err == nil {
			return []byte(strconv.FormatBool(b))
		}
	case "!!int":
		if jsonNumberRx.MatchString(value) {
			return []byte(value)
		}
		if i, err := strconv.ParseInt(value, 0, 64); err == nil {
			return []byte(strconv.FormatInt(i, 10))
		}
	case "!!float":
		if jsonNumberRx.MatchString(value) {
			return []byte(value)
		}
		switch strings.ToLower(value) {
		case ".inf", "+.inf":
			return marshalJSONString("Infinity")
		case "-.inf":
			return marshalJSONString("-Infinity")
		case ".nan":
			return marshalJSONString("NaN")
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return []byte(strconv.FormatFloat(f, 'g', -1, 64))
		}
	}
	return marshalJSONString(value)
}

func marshalJSONString(s string) []byte {
	b, err := json.Marshal(s)
	if err != nil {
		// json.Marshal cannot fail for a string value.
		return []byte(`""`)
	}
	return b
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
