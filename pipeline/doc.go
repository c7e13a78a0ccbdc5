// Package pipeline runs a sequence of units over a queue of values.
//
// A run has four phases. Sources are decoded onto the queue, commands
// rewrite it, output files consume it, and finally anything left over is an
// error. See [Executor.Run].
package pipeline
