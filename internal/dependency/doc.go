// Package dependency provides the configuration dependency graph used to
// compute which configuration objects travel together when packaging.
//
// Each configuration document may declare the configuration it depends on:
//
//	dependencies:
//	  config:
//	    - node.type.article
//	  module:
//	    - node
//
// BuildFromDocuments turns a set of documents into a Graph with an edge from
// every document to each declared config dependency. The reverse direction
// ("dependents") is what the packaging engine needs: when node.type.article is
// placed into a package, every field, view and display that depends on it
// should usually follow.
//
// # Usage Example
//
//	graph := dependency.BuildFromDocuments(map[string]map[string]interface{}{
//	    "node.type.article": {},
//	    "field.field.node.article.body": {
//	        "dependencies": map[string]interface{}{
//	            "config": []interface{}{"node.type.article"},
//	        },
//	    },
//	})
//
//	graph.TransitiveDependents("node.type.article")
//	// Returns: ["field.field.node.article.body"]
//
// # Thread Safety
//
// Graph is not safe for concurrent writes. It is built once at load time and
// only read afterwards.
package dependency
