package model

import "strings"

// Flatten walks the forest in pre-order and returns the nodes that pass the
// combined filter, in traversal order. Filtering a container never hides its
// children: traversal always continues into children.
func Flatten(nodes []Node, cfg FilterConfig) []*Node {
	var result []*Node
	flatten(nodes, cfg, &result)
	return result
}

func flatten(nodes []Node, cfg FilterConfig, result *[]*Node) {
	for i := range nodes {
		n := &nodes[i]
		if !ShouldFilter(n, cfg) {
			*result = append(*result, n)
		}
		flatten(n.Children, cfg, result)
	}
}

// FlattenAll returns every node in pre-order with no filtering.
func FlattenAll(nodes []Node) []*Node {
	return Flatten(nodes, FilterConfig{})
}

// BuildIndex builds an index -> node lookup table in a single depth-first
// pass. A duplicate index silently overwrites the earlier entry; indices are
// unique within a snapshot, so this should not occur.
func BuildIndex(nodes []Node) map[int]*Node {
	index := make(map[int]*Node)
	buildIndex(nodes, index)
	return index
}

func buildIndex(nodes []Node, index map[int]*Node) {
	for i := range nodes {
		index[nodes[i].Index] = &nodes[i]
		buildIndex(nodes[i].Children, index)
	}
}

// FindByIndex returns the node with the given index, or nil.
func FindByIndex(nodes []Node, index int) *Node {
	return BuildIndex(nodes)[index]
}

// FindByText returns the first node in pre-order whose text matches the
// query. Exact mode requires literal equality; otherwise a case-insensitive
// substring match is used. A node with empty text never matches.
func FindByText(nodes []Node, query string, exact bool) *Node {
	for i := range nodes {
		n := &nodes[i]
		if n.Text != "" {
			if exact {
				if n.Text == query {
					return n
				}
			} else if strings.Contains(strings.ToLower(n.Text), strings.ToLower(query)) {
				return n
			}
		}
		if found := FindByText(n.Children, query, exact); found != nil {
			return found
		}
	}
	return nil
}
