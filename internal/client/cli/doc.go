// Package cli provides the interactive task tracker command-line client.
//
// It wires configuration, the local session database, the REST client and a
// read-eval-print loop. A stored session from an earlier run is picked up on
// start; when the server rejects it and the refresh fails the user drops back
// to the logged-out prompt.
//
// Key features:
//   - Register / Login / Logout
//   - List, add, complete, rename and remove tasks
//   - List users
//   - Watch live task changes
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
