package branchtree

import (
	"gopkg.in/yaml.v3"
)

type yamlNode struct {
	Name     string     `yaml:"name"`
	Upstream string     `yaml:"upstream,omitempty"`
	Active   bool       `yaml:"active,omitempty"`
	Ahead    *int       `yaml:"ahead,omitempty"`
	Behind   *int       `yaml:"behind,omitempty"`
	Hash     string     `yaml:"hash"`
	Title    string     `yaml:"title"`
	Children []yamlNode `yaml:"children,omitempty"`
}

// MarshalYAML encodes the forest as a list of roots, in display order, with
// nested children.
func MarshalYAML(forest Forest) ([]byte, error) {
	roots := forest.Roots()
	nodes := make([]yamlNode, len(roots))
	for i, root := range roots {
		nodes[i] = toYAML(root)
	}
	return yaml.Marshal(nodes)
}

func toYAML(node *Node) yamlNode {
	out := yamlNode{
		Name:     node.Name,
		Upstream: node.Upstream,
		Active:   node.IsActive,
		Ahead:    node.Ahead,
		Behind:   node.Behind,
		Hash:     node.Hash,
		Title:    node.Title,
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, toYAML(child))
	}
	return out
}
