// Package codec owns the field-level conversion primitives between raw
// telemetry records and owned domain values.
//
// Ownership boundary:
// - fixed-capacity text buffers (strbuf.go)
// - sentinel-coded optional scalars (sentinel.go, option.go)
// - bitmask validation (flags.go)
// - discriminant-selected unions and enumerations (union.go, enum.go)
// - mode-selected payload shapes (mode.go)
// - counted fixed arrays (array.go)
// - the shared error taxonomy (errors.go, status.go)
//
// Every function here is a pure conversion. Nothing retains the input
// storage past the call and nothing holds mutable package state.
package codec
