package console

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/kowtow/object"
)

func indexKey(i int) string {
	return strconv.Itoa(i)
}

// Format renders v on one line in YAML flow style.
func Format(v object.Value) (string, error) {
	if object.IsUndefined(v) {
		return "undefined", nil
	}
	exported, err := object.Export(v)
	if err != nil {
		return "", err
	}
	var n yaml.Node
	if err := n.Encode(exported); err != nil {
		return "", err
	}
	flow(&n)
	out, err := yaml.Marshal(&n)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func flow(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style = yaml.FlowStyle
	}
	for i, c := range n.Content {
		if n.Kind == yaml.MappingNode && i%2 == 0 {
			unquoteKey(c)
		}
		flow(c)
	}
}

// unquoteKey drops the quoting the encoder adds to YAML 1.1 booleans such
// as n or off, as long as the key still reads back as the same string.
func unquoteKey(k *yaml.Node) {
	if k.Kind != yaml.ScalarNode || k.Tag != "!!str" {
		return
	}
	if k.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) == 0 {
		return
	}
	var back yaml.Node
	if err := yaml.Unmarshal([]byte(k.Value), &back); err != nil || len(back.Content) != 1 {
		return
	}
	if v := back.Content[0]; v.Kind == yaml.ScalarNode && v.Tag == "!!str" && v.Style == 0 && v.Value == k.Value {
		k.Style &^= yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle
	}
}

func formatProperty(p object.Property) (string, error) {
	if p.IsAccessor() {
		return fmt.Sprintf("accessor get=%t set=%t enumerable=%t configurable=%t",
			p.Getter != nil, p.Setter != nil, p.Enumerable, p.Configurable), nil
	}
	v, err := Format(p.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("value=%s writable=%t enumerable=%t configurable=%t",
		v, p.Writable, p.Enumerable, p.Configurable), nil
}
