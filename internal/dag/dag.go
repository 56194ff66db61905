package dag

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rogersnm/opbatch/internal/model"
)

// Graph links each operation to the operations that create the objects it
// references. Nodes are 0-based operation indices.
type Graph struct {
	ops      []model.Operation
	edges    map[int][]int // op -> ops it depends on
	rev      map[int][]int // op -> dependents
	external map[int][]string
}

// Build resolves every referenced object ID to its creating operation: the
// latest creator before the referencing operation, else the first one after
// it. IDs no operation creates are recorded as external.
func Build(ops []model.Operation) *Graph {
	g := &Graph{
		ops:      ops,
		edges:    make(map[int][]int),
		rev:      make(map[int][]int),
		external: make(map[int][]string),
	}

	creators := make(map[string][]int)
	for i, op := range ops {
		for _, oid := range model.CreatedIDs(op) {
			creators[oid] = append(creators[oid], i)
		}
	}

	for i, op := range ops {
		seen := make(map[int]bool)
		for _, ref := range model.ReferencedIDs(op) {
			dep, ok := creatorFor(creators[ref], i)
			if !ok {
				g.external[i] = append(g.external[i], ref)
				continue
			}
			if dep == i || seen[dep] {
				continue
			}
			seen[dep] = true
			g.edges[i] = append(g.edges[i], dep)
			g.rev[dep] = append(g.rev[dep], i)
		}
		sort.Ints(g.edges[i])
	}
	for dep := range g.rev {
		sort.Ints(g.rev[dep])
	}
	return g
}

func creatorFor(indices []int, at int) (int, bool) {
	best := -1
	for _, c := range indices {
		if c < at {
			best = c
		}
	}
	if best >= 0 {
		return best, true
	}
	for _, c := range indices {
		if c > at {
			return c, true
		}
	}
	return 0, false
}

func (g *Graph) Len() int {
	return len(g.ops)
}

// ValidateAcyclic checks for cycles using DFS. A cycle means operations
// reference each other's objects before either exists, so no order works.
func (g *Graph) ValidateAcyclic() error {
	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // finished
	)

	color := make(map[int]int)
	parent := make(map[int]int)

	var dfs func(node int) error
	dfs = func(node int) error {
		color[node] = gray
		for _, dep := range g.edges[node] {
			if color[dep] == gray {
				return fmt.Errorf("cycle detected: %s", buildCyclePath(parent, node, dep))
			}
			if color[dep] == white {
				parent[dep] = node
				if err := dfs(dep); err != nil {
					return err
				}
			}
		}
		color[node] = black
		return nil
	}

	for i := range g.ops {
		if color[i] == white {
			if err := dfs(i); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildCyclePath(parent map[int]int, from, to int) string {
	path := []int{to}
	cur := from
	for cur != to {
		path = append(path, cur)
		cur = parent[cur]
	}
	path = append(path, to)
	// Reverse to show in dependency order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	labels := make([]string, len(path))
	for i, p := range path {
		labels[i] = Label(p)
	}
	return strings.Join(labels, " -> ")
}

// TopologicalSort returns an order in which every operation follows the
// operations it depends on, preferring the original order (Kahn's algorithm).
func (g *Graph) TopologicalSort() ([]int, error) {
	inDegree := make(map[int]int, len(g.ops))
	for i := range g.ops {
		inDegree[i] = len(g.edges[i])
	}

	var queue []int
	for i := range g.ops {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	var result []int
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, dependent := range g.rev[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
				sort.Ints(queue)
			}
		}
	}

	if len(result) != len(g.ops) {
		return nil, fmt.Errorf("cycle detected: topological sort incomplete")
	}
	return result, nil
}

// InOrder reports whether the batch already runs every creator before the
// operations that use its objects.
func (g *Graph) InOrder() bool {
	for i, deps := range g.edges {
		for _, d := range deps {
			if d > i {
				return false
			}
		}
	}
	return true
}

func (g *Graph) TransitiveDeps(i int) []int {
	visited := make(map[int]bool)
	var result []int
	var walk func(int)
	walk = func(node int) {
		for _, dep := range g.edges[node] {
			if !visited[dep] {
				visited[dep] = true
				result = append(result, dep)
				walk(dep)
			}
		}
	}
	walk(i)
	return result
}

func (g *Graph) Deps(i int) []int {
	return g.edges[i]
}

func (g *Graph) Dependents(i int) []int {
	return g.rev[i]
}

// External returns the IDs operation i references that no operation in the
// batch creates; they must already exist in the document.
func (g *Graph) External(i int) []string {
	return g.external[i]
}

func (g *Graph) Roots() []int {
	var roots []int
	for i := range g.ops {
		if len(g.edges[i]) == 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

func (g *Graph) Leaves() []int {
	var leaves []int
	for i := range g.ops {
		if len(g.rev[i]) == 0 {
			leaves = append(leaves, i)
		}
	}
	return leaves
}

func (g *Graph) Node(i int) (model.Operation, bool) {
	if i < 0 || i >= len(g.ops) {
		return model.Operation{}, false
	}
	return g.ops[i], true
}

// Label is the 1-based display name of operation index i.
func Label(i int) string {
	return "#" + strconv.Itoa(i+1)
}
