package records

import (
	"strconv"

	"github.com/danmuck/nvwire/internal/codec"
)

// enumOf builds a validator whose known set is exactly the named values.
func enumOf[K codec.Discriminant](name string, names map[K]string) codec.Enum[K] {
	known := make([]K, 0, len(names))
	for k := range names {
		known = append(known, k)
	}
	return codec.NewEnum(name, known...)
}

func nameOf[K codec.Discriminant](names map[K]string, v K) string {
	if n, ok := names[v]; ok {
		return n
	}
	return "unknown_" + strconv.FormatUint(uint64(v), 10)
}

// BridgeChip is the kind of a bridge chip on the board.
type BridgeChip uint32

const (
	BridgeChipPLX  BridgeChip = 0
	BridgeChipBRO4 BridgeChip = 1
)

var bridgeChipNames = map[BridgeChip]string{
	BridgeChipPLX:  "plx",
	BridgeChipBRO4: "bro4",
}

var bridgeChips = enumOf("BridgeChip", bridgeChipNames)

func (c BridgeChip) String() string { return nameOf(bridgeChipNames, c) }
func (c BridgeChip) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// EncoderType is the codec an encoder session runs.
type EncoderType uint32

const (
	EncoderH264 EncoderType = 0
	EncoderHEVC EncoderType = 1
	EncoderAV1  EncoderType = 2
)

var encoderTypeNames = map[EncoderType]string{
	EncoderH264: "h264",
	EncoderHEVC: "hevc",
	EncoderAV1:  "av1",
}

var encoderTypes = enumOf("EncoderType", encoderTypeNames)

func (e EncoderType) String() string { return nameOf(encoderTypeNames, e) }
func (e EncoderType) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// FbcSessionType is the capture target of a frame buffer capture session.
type FbcSessionType uint32

const (
	FbcSessionUnknown FbcSessionType = 0
	FbcSessionToSys   FbcSessionType = 1
	FbcSessionCuda    FbcSessionType = 2
	FbcSessionVid     FbcSessionType = 3
	FbcSessionHwEnc   FbcSessionType = 4
)

var fbcSessionTypeNames = map[FbcSessionType]string{
	FbcSessionUnknown: "unknown",
	FbcSessionToSys:   "tosys",
	FbcSessionCuda:    "cuda",
	FbcSessionVid:     "vid",
	FbcSessionHwEnc:   "hwenc",
}

var fbcSessionTypes = enumOf("FbcSessionType", fbcSessionTypeNames)

func (t FbcSessionType) String() string { return nameOf(fbcSessionTypeNames, t) }
func (t FbcSessionType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Clock is a clock domain.
type Clock uint32

const (
	ClockGraphics Clock = 0
	ClockSM       Clock = 1
	ClockMemory   Clock = 2
	ClockVideo    Clock = 3
)

var clockNames = map[Clock]string{
	ClockGraphics: "graphics",
	ClockSM:       "sm",
	ClockMemory:   "memory",
	ClockVideo:    "video",
}

var clocks = enumOf("Clock", clockNames)

func (c Clock) String() string { return nameOf(clockNames, c) }
func (c Clock) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// PerformanceState is a p-state, P0 (max) through P15 (min).
type PerformanceState uint32

const (
	PerformanceStateZero    PerformanceState = 0
	PerformanceStateFifteen PerformanceState = 15
	PerformanceStateUnknown PerformanceState = 32
)

var performanceStateNames = func() map[PerformanceState]string {
	names := make(map[PerformanceState]string, 17)
	for p := PerformanceStateZero; p <= PerformanceStateFifteen; p++ {
		names[p] = "p" + strconv.Itoa(int(p))
	}
	names[PerformanceStateUnknown] = "unknown"
	return names
}()

var performanceStates = enumOf("PerformanceState", performanceStateNames)

func (p PerformanceState) String() string { return nameOf(performanceStateNames, p) }
func (p PerformanceState) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// SampleValueType names the active arm of a sample value.
type SampleValueType uint32

const (
	ValueTypeDouble           SampleValueType = 0
	ValueTypeUnsignedInt      SampleValueType = 1
	ValueTypeUnsignedLong     SampleValueType = 2
	ValueTypeUnsignedLongLong SampleValueType = 3
	ValueTypeSignedLongLong   SampleValueType = 4
	ValueTypeSignedInt        SampleValueType = 5
	ValueTypeUnsignedShort    SampleValueType = 6
)

var sampleValueTypeNames = map[SampleValueType]string{
	ValueTypeDouble:           "double",
	ValueTypeUnsignedInt:      "unsigned_int",
	ValueTypeUnsignedLong:     "unsigned_long",
	ValueTypeUnsignedLongLong: "unsigned_long_long",
	ValueTypeSignedLongLong:   "signed_long_long",
	ValueTypeSignedInt:        "signed_int",
	ValueTypeUnsignedShort:    "unsigned_short",
}

func (t SampleValueType) String() string { return nameOf(sampleValueTypeNames, t) }
func (t SampleValueType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// ArrMode is the adaptive round robin setting of the vGPU scheduler.
type ArrMode uint32

const (
	ArrModeDefault ArrMode = 0
	ArrModeDisable ArrMode = 1
	ArrModeEnable  ArrMode = 2
)

var arrModeNames = map[ArrMode]string{
	ArrModeDefault: "default",
	ArrModeDisable: "disable",
	ArrModeEnable:  "enable",
}

func (m ArrMode) String() string { return nameOf(arrModeNames, m) }
func (m ArrMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// FbcFlags describes a frame buffer capture session.
type FbcFlags uint32

const (
	FbcFlagDiffMap           FbcFlags = 1 << 0
	FbcFlagClassificationMap FbcFlags = 1 << 1
	FbcFlagWaitNoWait        FbcFlags = 1 << 2
	FbcFlagWaitInfinite      FbcFlags = 1 << 3
	FbcFlagWaitTimeout       FbcFlags = 1 << 4
)

var fbcFlags = codec.NewFlags("FbcFlags",
	FbcFlagDiffMap,
	FbcFlagClassificationMap,
	FbcFlagWaitNoWait,
	FbcFlagWaitInfinite,
	FbcFlagWaitTimeout,
)

// Has reports whether every bit of f is set.
func (s FbcFlags) Has(f FbcFlags) bool { return s&f == f }
