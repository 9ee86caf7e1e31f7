package config

import (
	"github.com/danmuck/nvwire/internal/codec"
	"github.com/danmuck/nvwire/internal/records"
)

// Params converts the record's decode options for the catalog.
func (r RecordSpec) Params() records.Params {
	p := records.Params{
		SubSystemIDPresent: r.SubSystemID,
		ValueType:          records.SampleValueType(r.ValueType),
	}
	if r.Count != nil {
		p.Count = codec.Some(*r.Count)
	}
	return p
}
