// Package model defines the core data structures used throughout SubTrace.
//
// This package contains the following main types:
//   - Domain: A validated target domain value object
//   - RunResult: The ordered record of artifacts produced by one pipeline run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (tool, pipeline, report, history) need to
// use these types, so centralizing them prevents import cycles.
package model
