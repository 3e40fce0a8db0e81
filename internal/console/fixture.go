package console

import (
	"gopkg.in/yaml.v3"

	"github.com/wippyai/kowtow/errors"
	"github.com/wippyai/kowtow/object"
)

// LoadFixture decodes a YAML (or JSON) document into an object graph in r.
// Mapping keys keep their document order, and anchors with their aliases
// become shared references, so a document can describe cycles.
func LoadFixture(r *object.Realm, data []byte) (object.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.ParseFailed("fixture", err)
	}
	if doc.Kind == 0 {
		return r.NewObject(), nil
	}
	return FromNode(r, &doc)
}

// ParseValue decodes a single YAML value such as `1`, `hello` or `{a: [1]}`.
func ParseValue(r *object.Realm, text string) (object.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errors.ParseFailed("value", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	return FromNode(r, &doc)
}

// FromNode builds an object graph from a decoded YAML node.
func FromNode(r *object.Realm, n *yaml.Node) (object.Value, error) {
	b := &builder{realm: r, anchors: make(map[*yaml.Node]object.Value)}
	return b.build(n)
}

type builder struct {
	realm   *object.Realm
	anchors map[*yaml.Node]object.Value
}

func (b *builder) build(n *yaml.Node) (object.Value, error) {
	if v, ok := b.anchors[n]; ok {
		return v, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return b.build(n.Content[0])

	case yaml.AliasNode:
		return b.build(n.Alias)

	case yaml.MappingNode:
		obj := b.realm.NewObject()
		b.anchors[n] = obj
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := b.build(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			if err := obj.DefineOwnProperty(key, object.DataProperty(val)); err != nil {
				return nil, err
			}
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := b.realm.NewArray()
		b.anchors[n] = arr
		for i, c := range n.Content {
			val, err := b.build(c)
			if err != nil {
				return nil, err
			}
			if err := object.Put(arr, indexKey(i), val); err != nil {
				return nil, err
			}
		}
		return arr, nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, errors.ParseFailed("scalar", err)
		}
		return v, nil

	default:
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Detail("unsupported YAML node kind %d at line %d", n.Kind, n.Line).
			Build()
	}
}
