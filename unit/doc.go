// Package unit describes the steps of a run and parses them from command
// line arguments.
//
// A run is a sequence of units: sources (inline documents and input files),
// then commands, then output files. The executor in package pipeline
// consumes them front to back.
package unit
