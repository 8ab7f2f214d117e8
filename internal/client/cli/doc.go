// Package cli provides the interactive AuthKeeper command-line client.
//
// It wires configuration, the session store, the backend HTTP client and the
// AuthService, then runs a REPL on stdin. A session persisted by a previous
// run is restored on start.
//
// Commands: register, verify, login, logout, whoami, help, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
