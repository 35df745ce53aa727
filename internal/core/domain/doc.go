// Package domain defines the core business entities for gsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TableDescriptor: Static search configuration of one cached table
//   - ReferenceTemplate: Parsed navigation path template
//   - Record: A raw row returned by a record store
//   - FilterExpression: Store-neutral substring filter over a table
//   - SearchResult: A normalised hit (resolved reference or failure reason)
//   - RecentSearchEntry: A persisted, previously selected result
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
