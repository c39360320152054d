// Package assigner applies a bundle's assignment policy to a
// features.Manager.
//
// Each assignment method is a small strategy identified by an id (see the
// features.Method* constants). A bundle enables methods and gives each a
// weight; AssignConfigPackages runs the enabled ones lightest first:
//
//	packages (-20)  create packages for existing features of the bundle
//	exclude  (-5)   mark items that must never be packaged
//	base     (-2)   one package per content type and similar base types
//	alter    (0)    strip uuid, _core and role permissions from item data
//	namespace (0)   claim items whose name contains a package name
//	optional (0)    move items of some types to config/optional
//	forward_dependency (4)  follow dependencies into a single owner
//	core     (5)    collect shared types into the "core" package
//	site     (7)    collect site types into the "site" package
//	profile  (10)   fill the install profile package
//	existing (12)   existing features reclaim what they ship
//	dependency (15) pull remaining dependents after their dependency
//
// Run wraps a whole session: reload, assign, clean up, prefix package names
// with the bundle and resolve dependencies between packages.
package assigner
