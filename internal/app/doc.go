// Package app wires application dependencies for padserver and the CLI.
//
// It loads Config from YAML, builds the logger, metrics, session registry,
// envelope codec, note store and HTTP surface, and exposes them via the Wire
// struct. Wire.Serve runs the HTTP server until its context is cancelled.
package app
