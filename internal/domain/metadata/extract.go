package metadata

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/specdock/specdock/internal/domain/document"
	"gopkg.in/yaml.v3"
)

// httpMethods are the operation keys mined inside each path item.
var httpMethods = stopSet("get", "post", "put", "delete", "patch")

var capabilitySkipWords = stopSet(
	"get", "post", "put", "delete", "patch",
	"the", "and", "for", "with", "from", "this", "that",
	"are", "you", "all", "can", "will", "one", "use",
)

var tagSkipWords = stopSet(
	"api", "the", "and", "for", "with", "from", "this", "that",
	"are", "you", "all", "can", "will", "one", "use",
	"get", "via", "about", "information", "data", "service", "services",
)

var (
	summaryWords     = NewTokenizer(nil, 3, 3, "")
	descriptionWords = NewTokenizer(tagSkipWords, 3, 5, ".,!?;:")
)

// Capabilities collects searchable keywords from the operations of a
// document: operation ids, static path segments and leading summary
// words. The result is deduplicated, filtered against the skip list and
// sorted.
//
// Operation ids keep their original casing; only path segments and
// summary words are lowercased.
func Capabilities(doc *yaml.Node) []string {
	seen := make(map[string]bool)
	for _, path := range document.MapPairs(document.MapGet(doc, "paths")) {
		segments := pathSegments(path.Key)
		for _, op := range document.MapPairs(path.Value) {
			if !httpMethods[strings.ToLower(op.Key)] {
				continue
			}
			if id, ok := document.ScalarString(document.MapGet(op.Value, "operationId")); ok && id != "" {
				seen[id] = true
			}
			for _, seg := range segments {
				seen[seg] = true
			}
			if summary, ok := document.ScalarString(document.MapGet(op.Value, "summary")); ok {
				for _, w := range summaryWords.Tokens(strings.ToLower(summary)) {
					seen[w] = true
				}
			}
		}
	}

	caps := lo.Filter(lo.Keys(seen), func(word string, _ int) bool {
		return !capabilitySkipWords[word] && utf8.RuneCountInString(word) > 2
	})
	sort.Strings(caps)
	return caps
}

// pathSegments returns the static segments of a path template, lowercased,
// with parameters and segments shorter than three runes excluded.
func pathSegments(path string) []string {
	var segs []string
	for _, seg := range strings.Split(strings.ToLower(path), "/") {
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		if utf8.RuneCountInString(seg) > 2 {
			segs = append(segs, seg)
		}
	}
	return segs
}

// Tags combines the document's declared tag names with leading keywords
// from the info title and description, lowercased and deduplicated in
// order of first appearance.
func Tags(doc *yaml.Node) []string {
	tags := []string{}
	for _, item := range document.SeqItems(document.MapGet(doc, "tags")) {
		if item == nil {
			continue
		}
		switch item.Kind {
		case yaml.MappingNode:
			if name, ok := document.ScalarString(document.MapGet(item, "name")); ok && name != "" {
				tags = append(tags, strings.ToLower(name))
			}
		case yaml.ScalarNode:
			if item.ShortTag() == "!!str" && item.Value != "" {
				tags = append(tags, strings.ToLower(item.Value))
			}
		}
	}

	info := document.MapGet(doc, "info")
	title, _ := document.ScalarString(document.MapGet(info, "title"))
	desc, _ := document.ScalarString(document.MapGet(info, "description"))
	tags = append(tags, descriptionWords.Tokens(strings.ToLower(title+" "+desc))...)

	return lo.Uniq(tags)
}
