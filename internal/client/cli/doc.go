// Package cli provides the interactive eTIMS command-line client.
//
// It wires configuration, the local SQLite store, the session, the API
// client and the services into an interactive REPL. A background watcher
// probes the server's health endpoint and flips the app between online and
// offline mode.
//
// Every command follows the same convention: call the service, then print
// either the result or "Error: <message>" with any field errors the server
// reported.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
