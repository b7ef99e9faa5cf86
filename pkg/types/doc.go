// Package types defines the tabular value model, error taxonomy, naming
// rules, and report shapes shared by the mdbconv readers, partition engine,
// batch orchestrator, and writers.
package types
