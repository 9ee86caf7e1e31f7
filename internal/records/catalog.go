package records

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/nvwire/internal/abi"
	"github.com/danmuck/nvwire/internal/codec"
)

// Params carries the out-of-band facts some records need to decode.
type Params struct {
	// SubSystemIDPresent says whether pci_info's sub-system id is filled.
	SubSystemIDPresent bool
	// ValueType names the union arm of every value in a samples block.
	ValueType SampleValueType
	// Count bounds list kinds. Absent means every element in the block.
	Count codec.Option[int]
}

// Entry binds a record kind to its byte-level decoder and, when the record
// can be written back, its encoder.
type Entry struct {
	Kind string
	// Size is the record size, or the element stride for list kinds.
	Size int
	List bool

	decode func(b []byte, p Params) (any, error)
	encode func(v any) ([]byte, error)
}

// Decode converts a raw block into the kind's domain value.
func (e Entry) Decode(b []byte, p Params) (any, error) {
	v, err := e.decode(b, p)
	if err != nil {
		log.Debug().Str("kind", e.Kind).Int("bytes", len(b)).Err(err).Msg("records.Decode rejected block")
		return nil, err
	}
	return v, nil
}

// Reencodable reports whether Encode is supported for the kind.
func (e Entry) Reencodable() bool { return e.encode != nil }

// Encode converts a domain value produced by Decode back to raw bytes.
func (e Entry) Encode(v any) ([]byte, error) {
	if e.encode == nil {
		return nil, codec.InvalidValueError{Reason: e.Kind + " is decode-only"}
	}
	return e.encode(v)
}

func single[R, T any](decodeRaw func([]byte) (R, error), conv func(R) (T, error)) func([]byte, Params) (any, error) {
	return func(b []byte, _ Params) (any, error) {
		raw, err := decodeRaw(b)
		if err != nil {
			return nil, err
		}
		return conv(raw)
	}
}

func list[R, T any](kind string, stride int, decodeRaw func([]byte) (R, error), conv func(R) (T, error)) func([]byte, Params) (any, error) {
	return func(b []byte, p Params) (any, error) {
		raws, err := abi.DecodeList(kind, b, stride, decodeRaw)
		if err != nil {
			return nil, err
		}
		return codec.MapCounted(raws, p.Count.Or(len(raws)), conv)
	}
}

func encoderFor[T any](kind string, encode func(T) ([]byte, error)) func(any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		typed, ok := v.(T)
		if !ok {
			return nil, codec.InvalidValueError{Reason: fmt.Sprintf("%s cannot encode %T", kind, v)}
		}
		return encode(typed)
	}
}

var catalog = map[string]Entry{}

func register(e Entry) {
	if _, dup := catalog[e.Kind]; dup {
		panic("records: duplicate kind " + e.Kind)
	}
	catalog[e.Kind] = e
}

// Lookup returns the catalog entry for kind.
func Lookup(kind string) (Entry, bool) {
	e, ok := catalog[kind]
	return e, ok
}

// Kinds lists every registered kind in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(catalog))
	for k := range catalog {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func init() {
	register(Entry{
		Kind: "pci_info",
		Size: abi.PciInfoSize,
		decode: func(b []byte, p Params) (any, error) {
			raw, err := abi.DecodePciInfo(b)
			if err != nil {
				return nil, err
			}
			return DecodePciInfo(raw, p.SubSystemIDPresent)
		},
		encode: encoderFor("pci_info", func(v PciInfo) ([]byte, error) {
			raw, err := EncodePciInfo(v)
			if err != nil {
				return nil, err
			}
			return abi.EncodePciInfo(raw), nil
		}),
	})
	register(Entry{
		Kind:   "bar1_memory",
		Size:   abi.BAR1MemorySize,
		decode: single(abi.DecodeBAR1Memory, codec.Infallible(DecodeBAR1MemoryInfo)),
	})
	register(Entry{
		Kind:   "bridge_chip_hierarchy",
		Size:   abi.BridgeChipHierarchySize,
		decode: single(abi.DecodeBridgeChipHierarchy, DecodeBridgeChipHierarchy),
	})
	register(Entry{
		Kind:   "process_info",
		Size:   abi.ProcessInfoSize,
		List:   true,
		decode: list("process_info", abi.ProcessInfoSize, abi.DecodeProcessInfo, codec.Infallible(DecodeProcessInfo)),
		encode: encoderFor("process_info", func(v []ProcessInfo) ([]byte, error) {
			raws := make([]abi.ProcessInfo, 0, len(v))
			for _, p := range v {
				raws = append(raws, EncodeProcessInfo(p))
			}
			return abi.EncodeList(raws, abi.ProcessInfoSize, abi.EncodeProcessInfo), nil
		}),
	})
	register(Entry{
		Kind:   "ecc_error_counts",
		Size:   abi.EccErrorCountsSize,
		decode: single(abi.DecodeEccErrorCounts, codec.Infallible(DecodeEccErrorCounts)),
	})
	register(Entry{
		Kind:   "memory_info",
		Size:   abi.MemorySize,
		decode: single(abi.DecodeMemory, codec.Infallible(DecodeMemoryInfo)),
	})
	register(Entry{
		Kind:   "memory_info_v2",
		Size:   abi.MemoryV2Size,
		decode: single(abi.DecodeMemoryV2, codec.Infallible(DecodeMemoryInfoV2)),
	})
	register(Entry{
		Kind:   "utilization",
		Size:   abi.UtilizationSize,
		decode: single(abi.DecodeUtilization, codec.Infallible(DecodeUtilization)),
	})
	register(Entry{
		Kind:   "violation_time",
		Size:   abi.ViolationTimeSize,
		decode: single(abi.DecodeViolationTime, codec.Infallible(DecodeViolationTime)),
	})
	register(Entry{
		Kind:   "accounting_stats",
		Size:   abi.AccountingStatsSize,
		decode: single(abi.DecodeAccountingStats, codec.Infallible(DecodeAccountingStats)),
	})
	register(Entry{
		Kind:   "encoder_sessions",
		Size:   abi.EncoderSessionInfoSize,
		List:   true,
		decode: list("encoder_sessions", abi.EncoderSessionInfoSize, abi.DecodeEncoderSessionInfo, DecodeEncoderSessionInfo),
	})
	register(Entry{
		Kind: "samples",
		Size: abi.SampleSize,
		List: true,
		decode: func(b []byte, p Params) (any, error) {
			conv := func(raw abi.Sample) (Sample, error) { return DecodeSample(raw, p.ValueType) }
			return list("samples", abi.SampleSize, abi.DecodeSample, conv)(b, p)
		},
		encode: encoderFor("samples", func(v []Sample) ([]byte, error) {
			raws := make([]abi.Sample, 0, len(v))
			for i, s := range v {
				raw, err := EncodeSample(s)
				if err != nil {
					return nil, codec.ElementError{Index: i, Err: err}
				}
				raws = append(raws, raw)
			}
			return abi.EncodeList(raws, abi.SampleSize, abi.EncodeSample), nil
		}),
	})
	register(Entry{
		Kind:   "process_utilization",
		Size:   abi.ProcessUtilizationSampleSize,
		List:   true,
		decode: list("process_utilization", abi.ProcessUtilizationSampleSize, abi.DecodeProcessUtilizationSample, codec.Infallible(DecodeProcessUtilizationSample)),
	})
	register(Entry{
		Kind:   "field_values",
		Size:   abi.FieldValueSize,
		List:   true,
		decode: list("field_values", abi.FieldValueSize, abi.DecodeFieldValue, DecodeFieldValue),
	})
	register(Entry{
		Kind:   "fbc_stats",
		Size:   abi.FBCStatsSize,
		decode: single(abi.DecodeFBCStats, codec.Infallible(DecodeFbcStats)),
	})
	register(Entry{
		Kind:   "fbc_sessions",
		Size:   abi.FBCSessionInfoSize,
		List:   true,
		decode: list("fbc_sessions", abi.FBCSessionInfoSize, abi.DecodeFBCSessionInfo, DecodeFbcSessionInfo),
	})
	register(Entry{
		Kind:   "device_attributes",
		Size:   abi.DeviceAttributesSize,
		decode: single(abi.DecodeDeviceAttributes, codec.Infallible(DecodeDeviceAttributes)),
	})
	register(Entry{
		Kind:   "fan_speed",
		Size:   abi.FanSpeedInfoSize,
		decode: single(abi.DecodeFanSpeedInfo, codec.Infallible(DecodeFanSpeedInfo)),
	})
	register(Entry{
		Kind:   "clock_offset",
		Size:   abi.ClockOffsetSize,
		decode: single(abi.DecodeClockOffset, DecodeClockOffset),
	})
	register(Entry{
		Kind:   "gpu_instance_placement",
		Size:   abi.GpuInstancePlacementSize,
		List:   true,
		decode: list("gpu_instance_placement", abi.GpuInstancePlacementSize, abi.DecodeGpuInstancePlacement, codec.Infallible(DecodeGpuInstancePlacement)),
	})
	register(Entry{
		Kind:   "vgpu_scheduler_capabilities",
		Size:   abi.VgpuSchedulerCapabilitiesSize,
		decode: single(abi.DecodeVgpuSchedulerCapabilities, codec.Infallible(DecodeVgpuSchedulerCapabilities)),
	})
	register(Entry{
		Kind:   "vgpu_version",
		Size:   abi.VgpuVersionSize,
		decode: single(abi.DecodeVgpuVersion, codec.Infallible(DecodeVgpuVersion)),
		encode: encoderFor("vgpu_version", func(v VgpuVersion) ([]byte, error) {
			return abi.EncodeVgpuVersion(EncodeVgpuVersion(v)), nil
		}),
	})
	register(Entry{
		Kind:   "vgpu_scheduler_log",
		Size:   abi.VgpuSchedulerLogSize,
		decode: single(abi.DecodeVgpuSchedulerLog, DecodeVgpuSchedulerLog),
	})
	register(Entry{
		Kind:   "vgpu_scheduler_state",
		Size:   abi.VgpuSchedulerGetStateSize,
		decode: single(abi.DecodeVgpuSchedulerGetState, DecodeVgpuSchedulerGetState),
	})
	register(Entry{
		Kind:   "vgpu_scheduler_set_state",
		Size:   abi.VgpuSchedulerSetStateSize,
		decode: single(abi.DecodeVgpuSchedulerSetState, DecodeVgpuSchedulerSetState),
		encode: encoderFor("vgpu_scheduler_set_state", func(v VgpuSchedulerSetState) ([]byte, error) {
			raw, err := EncodeVgpuSchedulerSetState(v)
			if err != nil {
				return nil, err
			}
			return abi.EncodeVgpuSchedulerSetState(raw), nil
		}),
	})
}
