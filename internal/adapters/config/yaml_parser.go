package config

import (
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// YAMLParser reads config files whose top level maps section names to
// mappings of typed values.
type YAMLParser struct{}

// ParseBytes parses YAML content. path is only used in error metadata.
func (YAMLParser) ParseBytes(path string, data []byte) (*domain.ConfigFile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	cfg := domain.NewConfigFile()
	if len(doc.Content) == 0 {
		return cfg, nil
	}

	top := resolveAlias(doc.Content[0])
	if isNull(top) {
		return cfg, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, parseError(path, top, "top level must be a mapping of sections")
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		name, body := top.Content[i].Value, resolveAlias(top.Content[i+1])
		if _, ok := cfg.Sections[name]; ok {
			return nil, zerr.With(zerr.With(domain.ErrDuplicateSection, "path", path), "section", name)
		}

		section := domain.Section{Name: name}
		switch {
		case isNull(body):
		case body.Kind == yaml.MappingNode:
			entries, err := yamlEntries(path, body)
			if err != nil {
				return nil, zerr.With(err, "section", name)
			}
			section.Entries = entries
		default:
			return nil, zerr.With(parseError(path, body, "section must be a mapping"), "section", name)
		}
		cfg.Sections[name] = section
	}
	return cfg, nil
}

func yamlEntries(path string, m *yaml.Node) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0, len(m.Content)/2)
	seen := make(map[string]struct{}, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i].Value
		if _, dup := seen[key]; dup {
			return nil, zerr.With(parseError(path, m.Content[i], "duplicate key"), "key", key)
		}
		seen[key] = struct{}{}

		typ, val, err := yamlValue(path, m.Content[i+1])
		if err != nil {
			return nil, zerr.With(err, "key", key)
		}
		entries = append(entries, domain.Entry{Key: key, Type: typ, Value: val})
	}
	return entries, nil
}

// yamlValue returns the type name and canonical text of a value node. Equal
// values always produce equal text regardless of how they were written.
func yamlValue(path string, n *yaml.Node) (string, string, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return yamlScalar(path, n)
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			typ, val, err := yamlValue(path, item)
			if err != nil {
				return "", "", err
			}
			items = append(items, typ+"="+val)
		}
		return "list", "[" + strings.Join(items, ", ") + "]", nil
	case yaml.MappingNode:
		entries, err := yamlEntries(path, n)
		if err != nil {
			return "", "", err
		}
		slices.SortFunc(entries, func(a, b domain.Entry) int { return strings.Compare(a.Key, b.Key) })
		parts := make([]string, 0, len(entries))
		for _, e := range entries {
			parts = append(parts, e.Key+":"+e.Type+"="+e.Value)
		}
		return "map", "{" + strings.Join(parts, ", ") + "}", nil
	default:
		return "", "", parseError(path, n, "unsupported value")
	}
}

func yamlScalar(path string, n *yaml.Node) (string, string, error) {
	switch n.ShortTag() {
	case "!!null":
		return "null", "", nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return "", "", parseError(path, n, err.Error())
		}
		return "bool", strconv.FormatBool(b), nil
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return "", "", parseError(path, n, err.Error())
		}
		return "int", strconv.FormatInt(v, 10), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return "", "", parseError(path, n, err.Error())
		}
		return "float", strconv.FormatFloat(f, 'g', -1, 64), nil
	default:
		return "string", strconv.Quote(n.Value), nil
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func parseError(path string, n *yaml.Node, msg string) error {
	err := zerr.With(zerr.Wrap(zerr.New(msg), domain.ErrConfigParseFailed.Error()), "path", path)
	return zerr.With(err, "line", n.Line)
}
