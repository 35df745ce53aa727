// Package memory provides in-process implementations of the driven ports.
// Nothing survives a restart; the stores back tests and the "memory"
// record backend.
package memory
