// Package abi owns the fixed byte layouts of raw telemetry records.
//
// Ownership boundary:
// - record sizes, capacities and field offsets
// - byte block <-> raw struct mirrors, field for field
//
// Layouts are little-endian with natural C alignment. Padding and reserved
// regions are skipped on decode and zeroed on encode. Unions stay opaque
// storage here; selecting an arm is the records package's job.
//
// A block shorter than its record is rejected. Bytes past the known size are
// ignored so that fields appended by newer ABI revisions do not break decode.
package abi
