package scan

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/sops-pre-commit/internal/errors"
	"gopkg.in/yaml.v3"
)

const (
	// maxDepth bounds nesting while converting parsed documents.
	maxDepth = 512

	// maxNodes bounds the nodes built from one input. Aliases are expanded on
	// every reference, so nested aliases grow the tree exponentially.
	maxNodes = 1_000_000
)

// Kind tags the variant held by a Node.
type Kind int

const (
	ScalarNode Kind = iota
	MappingNode
	SequenceNode
)

func (k Kind) String() string {
	switch k {
	case MappingNode:
		return "mapping"
	case SequenceNode:
		return "sequence"
	default:
		return "scalar"
	}
}

// Node is one element of a parsed document: a mapping with ordered pairs, a
// sequence of nodes, or a scalar holding a string, bool, number or nil.
type Node struct {
	Kind  Kind
	Pairs []Pair
	Items []Node
	Value any
}

// Pair is a mapping entry. Pairs keep the key order of the source document.
type Pair struct {
	Key   string
	Value Node
}

// Mapping builds a mapping node.
func Mapping(pairs ...Pair) Node {
	return Node{Kind: MappingNode, Pairs: pairs}
}

// Sequence builds a sequence node.
func Sequence(items ...Node) Node {
	return Node{Kind: SequenceNode, Items: items}
}

// Scalar builds a scalar node.
func Scalar(v any) Node {
	return Node{Kind: ScalarNode, Value: v}
}

// ParseDocuments parses every YAML (or JSON) document in content. An empty
// input yields no documents.
func ParseDocuments(content []byte) ([]Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	conv := &converter{budget: maxNodes}

	var docs []Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrDocumentNotParseable, err)
		}

		node, err := conv.fromYAML(&doc, 0)
		if err != nil {
			return nil, err
		}
		docs = append(docs, node)
	}

	return docs, nil
}

// converter builds Nodes from yaml.v3 trees within a shared node budget.
type converter struct {
	budget int
}

func (c *converter) fromYAML(n *yaml.Node, depth int) (Node, error) {
	if depth > maxDepth {
		return Node{}, fmt.Errorf("%w: nesting deeper than %d", kerrors.ErrDocumentNotParseable, maxDepth)
	}
	c.budget--
	if c.budget < 0 {
		return Node{}, fmt.Errorf("%w: more than %d nodes after alias expansion", kerrors.ErrDocumentNotParseable, maxNodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Scalar(nil), nil
		}
		return c.fromYAML(n.Content[0], depth+1)

	case yaml.AliasNode:
		if n.Alias == nil {
			return Scalar(nil), nil
		}
		return c.fromYAML(n.Alias, depth+1)

	case yaml.MappingNode:
		pairs := make([]Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			value, err := c.fromYAML(n.Content[i+1], depth+1)
			if err != nil {
				return Node{}, err
			}
			pairs = append(pairs, Pair{Key: keyName(n.Content[i]), Value: value})
		}
		return Mapping(pairs...), nil

	case yaml.SequenceNode:
		items := make([]Node, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := c.fromYAML(child, depth+1)
			if err != nil {
				return Node{}, err
			}
			items = append(items, item)
		}
		return Sequence(items...), nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return Node{}, fmt.Errorf("%w: line %d: %v", kerrors.ErrDocumentNotParseable, n.Line, err)
		}
		return Scalar(v), nil

	default:
		return Scalar(nil), nil
	}
}

// keyName returns the textual key of a mapping entry.
func keyName(n *yaml.Node) string {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n.Value
}
