// Package watch reports changes to configuration export directories so that
// package assignment can be recomputed while an export is being edited.
package watch
