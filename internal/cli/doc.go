// Package cli provides the interactive applists command-line client.
//
// It wires configuration, the SQLite catalog, the installed-app registry and
// an interactive REPL. Typical flow: open the catalog, take an initial
// registry snapshot, start a background refresh watcher, and execute user
// commands.
//
// Key features:
//   - Create / rename / delete lists and collections
//   - Add, remove and tag packages on lists
//   - Merge lists, check for duplicates
//   - Resolve lists against the live registry (missing apps are flagged)
//   - Export and import versioned JSON documents
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartRegistryWatcher, and runREPL for details.
package cli
