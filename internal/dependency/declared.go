package dependency

import (
	"fmt"
	"sort"
)

// Dependency keys inside a configuration document:
//
//	dependencies:
//	  config: [...]
//	  module: [...]
//	  theme: [...]
//	  enforced:
//	    config: [...]
//	    module: [...]
const (
	KeyDependencies = "dependencies"
	KeyEnforced     = "enforced"
	KindConfig      = "config"
	KindModule      = "module"
	KindTheme       = "theme"
)

// Declared returns the names a configuration document declares under
// dependencies.<kind> and dependencies.enforced.<kind>, deduplicated and
// sorted. A missing or malformed dependencies block yields nil.
func Declared(doc map[string]interface{}, kind string) []string {
	deps, ok := asMap(doc[KeyDependencies])
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	collect := func(block map[string]interface{}) {
		for _, v := range asStrings(block[kind]) {
			if !seen[v] {
				seen[v] = true
				names = append(names, v)
			}
		}
	}
	collect(deps)
	if enforced, ok := asMap(deps[KeyEnforced]); ok {
		collect(enforced)
	}
	sort.Strings(names)
	return names
}

// ConfigDependencies is shorthand for Declared(doc, KindConfig).
func ConfigDependencies(doc map[string]interface{}) []string {
	return Declared(doc, KindConfig)
}

// ModuleDependencies is shorthand for Declared(doc, KindModule).
func ModuleDependencies(doc map[string]interface{}) []string {
	return Declared(doc, KindModule)
}

// BuildFromDocuments creates a graph with one node per document and edges
// from each document to the configuration it declares a dependency on.
func BuildFromDocuments(docs map[string]map[string]interface{}) *Graph {
	g := New()
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var dependsOn []NodeID
		for _, dep := range ConfigDependencies(docs[name]) {
			dependsOn = append(dependsOn, NodeID(dep))
		}
		g.AddNode(Node{ID: NodeID(name), DependsOn: dependsOn})
	}
	return g
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asStrings(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
