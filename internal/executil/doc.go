// Package executil wraps external process execution for the pipeline.
//
// Every reconnaissance tool is an opaque external executable. The Runner
// abstraction captures the combined stdout/stderr text of an invocation
// and deliberately absorbs all failures: a missing binary or a non-zero
// exit produces whatever text the process managed to write, never an
// error. Failed tools therefore surface as empty or partial report
// sections, keeping the orchestrator free of exception paths.
package executil
