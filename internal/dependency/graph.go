package dependency

import (
	"sort"
)

// NodeID is the unique identifier for a node inside a dependency graph. For
// configuration graphs this is the fully-qualified config name
// (e.g. "node.type.article").
type NodeID string

// Node represents one configuration object together with the configuration
// objects it declares a dependency on.
//
// Configuration exports are expected to form a DAG, but hand-edited exports
// can contain cycles; every walk below tracks visited nodes so a cycle never
// loops forever.
type Node struct {
	ID        NodeID
	DependsOn []NodeID
}

// Graph answers dependency queries over configuration objects. It is *not*
// thread-safe by itself; callers must synchronise if they write concurrently.
type Graph struct {
	nodes map[NodeID]*Node
	// reverse index: dependency -> direct dependents
	dependents map[NodeID][]NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[NodeID]*Node),
		dependents: make(map[NodeID][]NodeID),
	}
}

// AddNode adds (or replaces) a node in the graph.
func (g *Graph) AddNode(n Node) {
	if g.nodes == nil {
		g.nodes = make(map[NodeID]*Node)
	}
	if old, ok := g.nodes[n.ID]; ok {
		g.unindex(old)
	}
	// Copy to avoid external mutations
	copied := n
	copied.DependsOn = append([]NodeID(nil), n.DependsOn...)
	g.nodes[n.ID] = &copied
	g.index(&copied)
}

func (g *Graph) index(n *Node) {
	if g.dependents == nil {
		g.dependents = make(map[NodeID][]NodeID)
	}
	for _, dep := range n.DependsOn {
		if dep == n.ID {
			continue
		}
		g.dependents[dep] = appendUnique(g.dependents[dep], n.ID)
	}
}

func (g *Graph) unindex(n *Node) {
	for _, dep := range n.DependsOn {
		list := g.dependents[dep]
		for i, id := range list {
			if id == n.ID {
				g.dependents[dep] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

// Get returns a pointer to the stored node or nil if it does not exist.
func (g *Graph) Get(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns a slice of immediate dependency IDs for the given node.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	if n, ok := g.nodes[id]; ok {
		depsCopy := make([]NodeID, len(n.DependsOn))
		copy(depsCopy, n.DependsOn)
		return depsCopy
	}
	return nil
}

// Dependents returns all node IDs that have a direct dependency on the given
// node, sorted.
func (g *Graph) Dependents(id NodeID) []NodeID {
	res := append([]NodeID(nil), g.dependents[id]...)
	sortIDs(res)
	return res
}

// DependentPaths walks reverse edges breadth-first from id and returns every
// node that depends on id directly or transitively. Each entry maps the
// dependent to the chain of intermediate nodes through which the edge was
// found (empty for direct dependents).
func (g *Graph) DependentPaths(id NodeID) map[NodeID][]NodeID {
	paths := make(map[NodeID][]NodeID)
	type step struct {
		id  NodeID
		via []NodeID
	}
	queue := []step{{id: id}}
	visited := map[NodeID]bool{id: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		direct := g.Dependents(cur.id)
		for _, dep := range direct {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			paths[dep] = cur.via
			via := make([]NodeID, 0, len(cur.via)+1)
			via = append(via, cur.via...)
			via = append(via, dep)
			queue = append(queue, step{id: dep, via: via})
		}
	}
	return paths
}

// TransitiveDependents returns the sorted names of every configuration object
// that depends, directly or through other objects, on name.
func (g *Graph) TransitiveDependents(name string) []string {
	paths := g.DependentPaths(NodeID(name))
	res := make([]string, 0, len(paths))
	for id := range paths {
		res = append(res, string(id))
	}
	sort.Strings(res)
	return res
}

// TopologicalOrder returns all node IDs ordered so that dependencies come
// before their dependents. Ties are broken alphabetically. Nodes that take part
// in a cycle are appended at the end in alphabetical order.
func (g *Graph) TopologicalOrder() []NodeID {
	inDegree := make(map[NodeID]int, len(g.nodes))
	for id, n := range g.nodes {
		if _, ok := inDegree[id]; !ok {
			inDegree[id] = 0
		}
		for _, dep := range n.DependsOn {
			if _, known := g.nodes[dep]; !known || dep == id {
				continue
			}
			inDegree[id]++
		}
	}

	var ready []NodeID
	for id, d := range inDegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sortIDs(ready)

	order := make([]NodeID, 0, len(g.nodes))
	done := make(map[NodeID]bool, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		done[id] = true

		var released []NodeID
		for _, dependent := range g.dependents[id] {
			if _, known := g.nodes[dependent]; !known {
				continue
			}
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				released = append(released, dependent)
			}
		}
		if len(released) > 0 {
			ready = append(ready, released...)
			sortIDs(ready)
		}
	}

	if len(order) < len(g.nodes) {
		var cyclic []NodeID
		for id := range g.nodes {
			if !done[id] {
				cyclic = append(cyclic, id)
			}
		}
		sortIDs(cyclic)
		order = append(order, cyclic...)
	}
	return order
}

func appendUnique(list []NodeID, id NodeID) []NodeID {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

func sortIDs(ids []NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
