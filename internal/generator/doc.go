// Package generator turns assigned packages into installable extensions.
//
// Prepare checks that every package is consistent (each member item exists
// and is owned by the package, dependencies are sorted, unique and never the
// package itself) and renders its files:
//
//	<name>/<name>.info.yml
//	<name>/<name>.features.yml
//	<name>/config/install/<item>.yml
//	<name>/config/optional/<item>.yml
//
// A Writer then stores them, either as a directory tree (DirectoryWriter) or
// as a single .tar.gz stream (ArchiveWriter).
package generator
