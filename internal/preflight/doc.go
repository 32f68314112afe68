// Package preflight provides readiness checks for the filesystem paths
// and external tools a triage run depends on.
//
// The engine calls RunAll before enumerating the source so a doomed run
// fails up front instead of after touching half the files. Checks that
// do not apply to the requested action are skipped.
package preflight
