package catalog

import (
	"bytes"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
	"git.home.luguber.info/inful/gosetta/internal/template"
)

// Serialize encodes a catalog deterministically: keys sorted, two-space
// indent, multi-line scalars in literal block style, empty translated values
// double-quoted.
func Serialize(c Catalog) ([]byte, error) {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range keys {
		root.Content = append(root.Content,
			scalarNode(key),
			entryNode(c[key]),
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		_ = enc.Close()
		return nil, gserrors.WrapError(err, gserrors.CategoryCatalog, "failed to serialize catalog")
	}
	if err := enc.Close(); err != nil {
		return nil, gserrors.WrapError(err, gserrors.CategoryCatalog, "failed to serialize catalog")
	}
	return buf.Bytes(), nil
}

func entryNode(tr template.Translation) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content, scalarNode("original"), textNode(tr.Original))
	n.Content = append(n.Content, scalarNode("translated"), textNode(tr.Translated))
	if len(tr.Comments) > 0 {
		n.Content = append(n.Content, scalarNode("comments"), sequenceNode(tr.Comments))
	}
	if len(tr.Classes) > 0 {
		n.Content = append(n.Content, scalarNode("classes"), sequenceNode(tr.Classes))
	}
	if len(tr.Literals) > 0 {
		n.Content = append(n.Content, scalarNode("literals"), sequenceNode(tr.Literals))
	}
	return n
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// textNode picks the scalar style for user-visible text: literal blocks for
// multi-line values, quoted for the empty string.
func textNode(value string) *yaml.Node {
	n := scalarNode(value)
	switch {
	case strings.Contains(value, "\n"):
		n.Style = yaml.LiteralStyle
	case value == "":
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func sequenceNode(values []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		n.Content = append(n.Content, textNode(v))
	}
	return n
}
