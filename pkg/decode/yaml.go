package decode

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/udu-dev/udu/pkg/value"
)

// maxAliasDepth bounds alias expansion so a self-referencing anchor cannot
// recurse forever.
const maxAliasDepth = 64

// YAML decodes the first document of data. An empty input decodes to nil.
func YAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	return walk(&doc, 0)
}

func walk(n *yaml.Node, aliases int) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return walk(n.Content[0], aliases)
	case yaml.MappingNode:
		obj := value.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.ShortTag() == "!!merge" {
				if err := merge(obj, v, aliases); err != nil {
					return nil, err
				}
				continue
			}
			val, err := walk(v, aliases)
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := walk(c, aliases)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return items, nil
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return nil, fmt.Errorf("line %d: alias %q nested too deeply", n.Line, n.Value)
		}
		return walk(n.Alias, aliases+1)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// merge copies the members of a "<<" merge value into obj. Keys already set
// are kept.
func merge(obj *value.Object, n *yaml.Node, aliases int) error {
	src, err := walk(n, aliases)
	if err != nil {
		return err
	}
	var sources []*value.Object
	switch s := src.(type) {
	case *value.Object:
		sources = append(sources, s)
	case []any:
		for _, item := range s {
			if o, ok := item.(*value.Object); ok {
				sources = append(sources, o)
			}
		}
	}
	for _, o := range sources {
		for _, m := range o.Members() {
			if _, exists := obj.Get(m.Key); !exists {
				obj.Set(m.Key, m.Value)
			}
		}
	}
	return nil
}
