// Package metadata describes translatable entities: which properties carry
// per-locale variants, the class that stores those variants and the column
// mapping of every property. Descriptors are declared up front (in Go, in
// YAML/JSON files or derived from OpenAPI component schemas) and validated
// when registered, so form builds only ever read an immutable table.
package metadata
