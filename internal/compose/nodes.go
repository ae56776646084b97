package compose

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// kv is one ordered key/value pair destined for a yaml.Node mapping. Node
// construction here always goes through ordered pairs, never a Go map,
// since map iteration order is what the emitter's determinism contract
// forbids.
type kv struct {
	key   string
	value *yaml.Node
}

func mapping(pairs ...kv) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range pairs {
		n.Content = append(n.Content, plainScalar(p.key), p.value)
	}
	return n
}

func emptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	n.Content = append(n.Content, items...)
	return n
}

// plainScalar is an unquoted string scalar: identifiers, enum values, and
// map keys that never need quoting.
func plainScalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// quotedScalar forces double-quote style, used anywhere a bare value
// could be misread as a different YAML type (ports, env assignments
// containing special characters, numeric-looking strings).
func quotedScalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle}
}

func boolScalar(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: boolString(v)}
}

func intScalar(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
