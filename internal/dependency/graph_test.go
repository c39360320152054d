package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	g := New()
	if g == nil {
		t.Fatal("New() returned nil")
	}
	if g.nodes == nil {
		t.Fatal("nodes map not initialized")
	}
	if g.Len() != 0 {
		t.Fatalf("expected empty graph, got %d nodes", g.Len())
	}
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []Node
		expected int
	}{
		{
			name:     "add single node",
			nodes:    []Node{{ID: "node.type.article"}},
			expected: 1,
		},
		{
			name: "add multiple nodes",
			nodes: []Node{
				{ID: "node.type.article"},
				{ID: "field.storage.node.body"},
				{ID: "field.field.node.article.body", DependsOn: []NodeID{"node.type.article", "field.storage.node.body"}},
			},
			expected: 3,
		},
		{
			name: "replace existing node",
			nodes: []Node{
				{ID: "views.view.content", DependsOn: []NodeID{"node.type.article"}},
				{ID: "views.view.content", DependsOn: []NodeID{"node.type.page"}},
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, node := range tt.nodes {
				g.AddNode(node)
			}
			assert.Equal(t, tt.expected, g.Len())
			last := tt.nodes[len(tt.nodes)-1]
			if node := g.Get(last.ID); assert.NotNil(t, node) {
				assert.Equal(t, last.DependsOn, node.DependsOn)
			}
		})
	}
}

func TestAddNode_ReplaceUpdatesReverseIndex(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "views.view.content", DependsOn: []NodeID{"node.type.article"}})
	g.AddNode(Node{ID: "views.view.content", DependsOn: []NodeID{"node.type.page"}})

	assert.Empty(t, g.Dependents("node.type.article"))
	assert.Equal(t, []NodeID{"views.view.content"}, g.Dependents("node.type.page"))
}

func TestAddNode_CopiesDependsOn(t *testing.T) {
	deps := []NodeID{"a"}
	g := New()
	g.AddNode(Node{ID: "b", DependsOn: deps})
	deps[0] = "mutated"

	assert.Equal(t, []NodeID{"a"}, g.Dependencies("b"))
}

func TestDependencies(t *testing.T) {
	g := New()

	assert.Empty(t, g.Dependencies("nonexistent"))

	g.AddNode(Node{ID: "node.type.article"})
	g.AddNode(Node{ID: "field.storage.node.body"})
	g.AddNode(Node{ID: "field.field.node.article.body", DependsOn: []NodeID{"node.type.article", "field.storage.node.body"}})

	assert.Empty(t, g.Dependencies("node.type.article"))
	assert.ElementsMatch(t,
		[]NodeID{"node.type.article", "field.storage.node.body"},
		g.Dependencies("field.field.node.article.body"))
}

func TestDependents(t *testing.T) {
	g := New()

	assert.Empty(t, g.Dependents("nonexistent"))

	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b", DependsOn: []NodeID{"a"}})
	g.AddNode(Node{ID: "c", DependsOn: []NodeID{"a"}})
	g.AddNode(Node{ID: "d", DependsOn: []NodeID{"b", "a"}})
	g.AddNode(Node{ID: "self", DependsOn: []NodeID{"self"}})

	tests := []struct {
		nodeID   NodeID
		expected []NodeID
	}{
		{"a", []NodeID{"b", "c", "d"}},
		{"b", []NodeID{"d"}},
		{"c", nil},
		{"self", nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.nodeID), func(t *testing.T) {
			deps := g.Dependents(tt.nodeID)
			if len(tt.expected) == 0 {
				assert.Empty(t, deps)
				return
			}
			assert.Equal(t, tt.expected, deps)
		})
	}
}

func TestDependentPaths(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "node.type.article"})
	g.AddNode(Node{ID: "field.field.node.article.body", DependsOn: []NodeID{"node.type.article"}})
	g.AddNode(Node{ID: "core.entity_form_display.node.article.default", DependsOn: []NodeID{"field.field.node.article.body"}})

	paths := g.DependentPaths("node.type.article")

	assert.Len(t, paths, 2)
	assert.Empty(t, paths["field.field.node.article.body"])
	assert.Equal(t, []NodeID{"field.field.node.article.body"}, paths["core.entity_form_display.node.article.default"])
}

func TestTransitiveDependents_Cycle(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a", DependsOn: []NodeID{"c"}})
	g.AddNode(Node{ID: "b", DependsOn: []NodeID{"a"}})
	g.AddNode(Node{ID: "c", DependsOn: []NodeID{"b"}})

	assert.Equal(t, []string{"b", "c"}, g.TransitiveDependents("a"))
}

func TestTopologicalOrder(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "z.view", DependsOn: []NodeID{"m.field"}})
	g.AddNode(Node{ID: "m.field", DependsOn: []NodeID{"a.type", "external.missing"}})
	g.AddNode(Node{ID: "a.type"})
	g.AddNode(Node{ID: "b.other"})

	assert.Equal(t, []NodeID{"a.type", "b.other", "m.field", "z.view"}, g.TopologicalOrder())
}

func TestTopologicalOrder_CycleAppendedLast(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "x", DependsOn: []NodeID{"y"}})
	g.AddNode(Node{ID: "y", DependsOn: []NodeID{"x"}})
	g.AddNode(Node{ID: "a"})

	assert.Equal(t, []NodeID{"a", "x", "y"}, g.TopologicalOrder())
}
