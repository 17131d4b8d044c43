// Package cli provides the interactive contacts command-line client.
//
// It wires configuration, the local token store, the session, the API
// client and the contact list into a REPL. On start the stored session is
// restored and, when still valid, the contact list is loaded; a background
// watcher warns when the session is about to expire.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - List, search and browse contacts
//   - Edit with explicit save or discard, delete, create
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartExpiryWatcher and runREPL for details.
package cli
