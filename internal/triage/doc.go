// Package triage runs the selection-and-action engine end to end.
//
// A run is described by an immutable Request and executes in fixed
// stages: preflight, directory indexing, rating-based filtering, raw
// companion resolution, action execution, and report assembly. The
// engine owns the run ID, the cross-process run lock, and the fatal
// error taxonomy; everything recoverable is reported per file on the
// run report instead of aborting the batch.
package triage
