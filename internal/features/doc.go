// Package features partitions a site's configuration into packages.
//
// A Manager loads every configuration object from a ConfigStore into a
// Collection of ConfigurationItem values and hands them out to Package
// values. Each item is owned by at most one package: the first assignment
// wins unless the caller forces a reassignment, in which case the previous
// owner loses the item.
//
// Besides direct assignment the Manager can assign by name pattern, pull
// dependents into the package of the item they depend on, rename packages
// into a Bundle's namespace and derive the module dependencies between the
// resulting packages. The assignment policy itself lives in the assigner
// package.
package features
