package document

import "gopkg.in/yaml.v3"

// resolve unwraps document and alias indirection so lookups see the real
// mapping, sequence or scalar underneath. Nil-safe.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   string
	Value *yaml.Node
}

// MapPairs lists the entries of a mapping in document order, skipping
// entries whose key is not a scalar. Nil when n is not a mapping.
func MapPairs(n *yaml.Node) []Pair {
	m := resolve(n)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]Pair, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := resolve(m.Content[i])
		if key == nil || key.Kind != yaml.ScalarNode {
			continue
		}
		pairs = append(pairs, Pair{Key: key.Value, Value: m.Content[i+1]})
	}
	return pairs
}

// MapGet returns the value for key within a mapping, or nil when n is not
// a mapping or the key is absent.
func MapGet(n *yaml.Node, key string) *yaml.Node {
	m := resolve(n)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := resolve(m.Content[i])
		if k != nil && k.Kind == yaml.ScalarNode && k.Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// MapLen returns the number of entries in a mapping, zero otherwise.
func MapLen(n *yaml.Node) int {
	m := resolve(n)
	if m == nil || m.Kind != yaml.MappingNode {
		return 0
	}
	return len(m.Content) / 2
}

// MapKeys returns the scalar keys of a mapping in document order. The
// result is never nil so it serializes as an empty JSON array.
func MapKeys(n *yaml.Node) []string {
	pairs := MapPairs(n)
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	return keys
}

// SeqItems returns the items of a sequence, or nil when n is not one.
func SeqItems(n *yaml.Node) []*yaml.Node {
	s := resolve(n)
	if s == nil || s.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]*yaml.Node, 0, len(s.Content))
	for _, c := range s.Content {
		items = append(items, resolve(c))
	}
	return items
}

// ScalarString returns the string form of a scalar node. ok is false for
// missing nodes, non-scalars and nulls.
func ScalarString(n *yaml.Node) (string, bool) {
	s := resolve(n)
	if s == nil || s.Kind != yaml.ScalarNode || s.ShortTag() == "!!null" {
		return "", false
	}
	return s.Value, true
}

// IsMapping reports whether n resolves to a mapping node.
func IsMapping(n *yaml.Node) bool {
	m := resolve(n)
	return m != nil && m.Kind == yaml.MappingNode
}
