// Package records assembles domain values from raw telemetry records.
//
// Ownership boundary:
// - per-record field order and which codec primitive each field uses
// - per-field sentinels, enumerations and flag sets
// - the kind catalog used by byte-level tooling
//
// Records are assembled fail-fast: the first field that does not convert
// aborts the record with a codec.FieldError naming it. Discriminants are
// always validated before the payload they govern. The one exception to
// fail-fast is FieldValueSample, which carries a per-field failure status
// as data.
package records
