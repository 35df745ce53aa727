// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage, including [[tables]]
//   - Watcher: reloads configuration when the file changes on disk
package file
