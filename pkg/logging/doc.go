// Package logging provides structured, subsystem-tagged logging for
// featurepack on top of Go's standard slog package.
//
// # Log Levels
//   - Debug: per-item assignment decisions
//   - Info: phase transitions of an assignment session
//   - Warn: tolerated per-item failures (the batch keeps going)
//   - Error: failures with an attached error value
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Assigner", "Running %d assignment methods", n)
//	logging.Error("Generator", err, "Failed to write package %s", name)
//
// Components that take their logger as a constructor argument use a
// SubsystemLogger:
//
//	manager := features.NewManager(store, features.WithLogger(logging.ForSubsystem("Features")))
//
// Before InitForCLI is called, warnings and errors are written to stderr and
// lower levels are dropped.
package logging
