// Package extension discovers the modules, profiles and themes of a site and
// answers which of them ship a given configuration object.
//
// An extension is a directory holding a <name>.info.yml manifest and,
// optionally, configuration under config/install and config/optional. A
// <name>.features.yml file next to the manifest marks the extension as a
// feature produced by an earlier packaging run; its bundle, required and
// excluded settings feed back into the next run.
package extension
