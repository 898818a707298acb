package explorer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidPath = errors.New("invalid node path")
	ErrNoSuchNode  = errors.New("no such node")
)

// ParsePath parses a dotted, 1-based node path such as "2.1.3".
func ParsePath(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	parts := strings.Split(s, ".")
	path := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		path = append(path, n)
	}
	return path, nil
}

// FormatPath is the inverse of ParsePath.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Resolve walks path from the top level, expanding one node per step.
func (t *Tree) Resolve(path []int) (Node, error) {
	if len(path) == 0 {
		return Node{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	nodes := t.TopLevel()
	var node Node
	for depth, idx := range path {
		if idx < 1 || idx > len(nodes) {
			return Node{}, fmt.Errorf("%w: %s", ErrNoSuchNode, FormatPath(path[:depth+1]))
		}
		node = nodes[idx-1]
		if depth < len(path)-1 {
			nodes = t.ChildrenOf(node)
		}
	}
	return node, nil
}

// Walk visits nodes depth-first from the top level. maxDepth limits the number of levels
// visited; zero or less means no limit.
func (t *Tree) Walk(maxDepth int, fn func(path []int, node Node)) {
	t.walk(t.TopLevel(), nil, maxDepth, fn)
}

func (t *Tree) walk(nodes []Node, prefix []int, maxDepth int, fn func(path []int, node Node)) {
	for i, node := range nodes {
		path := append(append([]int(nil), prefix...), i+1)
		fn(path, node)
		if node.Expandable && (maxDepth <= 0 || len(path) < maxDepth) {
			t.walk(t.ChildrenOf(node), path, maxDepth, fn)
		}
	}
}
