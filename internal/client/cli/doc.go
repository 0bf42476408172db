// Package cli provides the interactive todokeeper command-line client.
//
// It wires configuration, the HTTP API client and a small REPL:
//   - register / login prompt for a username and a hidden password
//   - todos lists the caller's todos
//   - logout forgets the in-memory token
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
