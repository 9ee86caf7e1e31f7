package records

import (
	"github.com/danmuck/nvwire/internal/abi"
	"github.com/danmuck/nvwire/internal/codec"
)

// Reserved raw values that mean "not reported". Each field binds the one
// matching its width and meaning.
const (
	notAvailable32 uint32 = 0xFFFFFFFF
	notAvailable64 uint64 = 0xFFFFFFFFFFFFFFFF
	noInstance     uint32 = 0
)

var (
	gpuInstanceIDs     = codec.NewSentinel(notAvailable32)
	computeInstanceIDs = codec.NewSentinel(notAvailable32)
	usedGpuMemory      = codec.NewSentinel(notAvailable64)
	utilizationPercent = codec.NewSentinel(notAvailable32)
	maxMemoryUsage     = codec.NewSentinel(notAvailable64)
	vgpuInstances      = codec.NewSentinel(noInstance)
	firmwareVersions   = codec.NewSentinel(uint32(0))
)

// PciInfo is the PCI identity of a device.
type PciInfo struct {
	Bus         uint32 `json:"bus" yaml:"bus"`
	BusID       string `json:"bus_id" yaml:"bus_id"`
	Device      uint32 `json:"device" yaml:"device"`
	Domain      uint32 `json:"domain" yaml:"domain"`
	PciDeviceID uint32 `json:"pci_device_id" yaml:"pci_device_id"`
	// Absent when the producing call leaves the raw field indeterminate.
	PciSubSystemID codec.Option[uint32] `json:"pci_sub_system_id" yaml:"pci_sub_system_id"`
}

// DecodePciInfo reads raw PCI info. subSystemIDPresent says whether the
// producing call fills the sub-system id; the raw field is ignored otherwise.
func DecodePciInfo(raw abi.PciInfo, subSystemIDPresent bool) (PciInfo, error) {
	busID, err := codec.DecodeString(raw.BusID[:])
	if err != nil {
		return PciInfo{}, codec.Field("PciInfo", "bus_id", err)
	}
	p := PciInfo{
		Bus:         raw.Bus,
		BusID:       busID,
		Device:      raw.Device,
		Domain:      raw.Domain,
		PciDeviceID: raw.PciDeviceID,
	}
	if subSystemIDPresent {
		p.PciSubSystemID = codec.Some(raw.PciSubSystemID)
	}
	return p, nil
}

// EncodePciInfo writes p back to its raw layout. The legacy bus id is left
// zeroed and an absent sub-system id is written as 0.
func EncodePciInfo(p PciInfo) (abi.PciInfo, error) {
	raw := abi.PciInfo{
		Domain:         p.Domain,
		Bus:            p.Bus,
		Device:         p.Device,
		PciDeviceID:    p.PciDeviceID,
		PciSubSystemID: p.PciSubSystemID.Or(0),
	}
	if err := codec.EncodeStringInto(raw.BusID[:], p.BusID); err != nil {
		return abi.PciInfo{}, codec.Field("PciInfo", "bus_id", err)
	}
	return raw, nil
}

// BAR1MemoryInfo is BAR1 memory usage in bytes.
type BAR1MemoryInfo struct {
	Free  uint64 `json:"free" yaml:"free"`
	Total uint64 `json:"total" yaml:"total"`
	Used  uint64 `json:"used" yaml:"used"`
}

func DecodeBAR1MemoryInfo(raw abi.BAR1Memory) BAR1MemoryInfo {
	return BAR1MemoryInfo{Free: raw.Bar1Free, Total: raw.Bar1Total, Used: raw.Bar1Used}
}

// BridgeChipInfo describes one bridge chip. FwVersion is absent when the
// firmware reports none.
type BridgeChipInfo struct {
	FwVersion codec.Option[uint32] `json:"fw_version" yaml:"fw_version"`
	ChipType  BridgeChip           `json:"chip_type" yaml:"chip_type"`
}

func DecodeBridgeChipInfo(raw abi.BridgeChipInfo) (BridgeChipInfo, error) {
	chip, err := bridgeChips.Validate(BridgeChip(raw.Type))
	if err != nil {
		return BridgeChipInfo{}, codec.Field("BridgeChipInfo", "chip_type", err)
	}
	return BridgeChipInfo{
		FwVersion: firmwareVersions.Decode(raw.FwVersion),
		ChipType:  chip,
	}, nil
}

// BridgeChipHierarchy lists bridge chips from the immediate bridge (index 0)
// outward.
type BridgeChipHierarchy struct {
	ChipCount uint8            `json:"chip_count" yaml:"chip_count"`
	Chips     []BridgeChipInfo `json:"chips" yaml:"chips"`
}

// DecodeBridgeChipHierarchy maps only the first ChipCount slots. Slots past
// the count are never inspected.
func DecodeBridgeChipHierarchy(raw abi.BridgeChipHierarchy) (BridgeChipHierarchy, error) {
	chips, err := codec.MapCounted(raw.BridgeChipInfo[:], int(raw.BridgeCount), DecodeBridgeChipInfo)
	if err != nil {
		return BridgeChipHierarchy{}, codec.Field("BridgeChipHierarchy", "chips", err)
	}
	return BridgeChipHierarchy{ChipCount: raw.BridgeCount, Chips: chips}, nil
}

type EccErrorCounts struct {
	DeviceMemory uint64 `json:"device_memory" yaml:"device_memory"`
	L1Cache      uint64 `json:"l1_cache" yaml:"l1_cache"`
	L2Cache      uint64 `json:"l2_cache" yaml:"l2_cache"`
	RegisterFile uint64 `json:"register_file" yaml:"register_file"`
}

func DecodeEccErrorCounts(raw abi.EccErrorCounts) EccErrorCounts {
	return EccErrorCounts{
		DeviceMemory: raw.DeviceMemory,
		L1Cache:      raw.L1Cache,
		L2Cache:      raw.L2Cache,
		RegisterFile: raw.RegisterFile,
	}
}

// MemoryInfo is framebuffer memory in bytes, first ABI revision.
type MemoryInfo struct {
	Free  uint64 `json:"free" yaml:"free"`
	Total uint64 `json:"total" yaml:"total"`
	Used  uint64 `json:"used" yaml:"used"`
}

func DecodeMemoryInfo(raw abi.Memory) MemoryInfo {
	return MemoryInfo{Free: raw.Free, Total: raw.Total, Used: raw.Used}
}

// MemoryInfoV2 adds the versioned header and the reserved pool.
type MemoryInfoV2 struct {
	Version  uint32 `json:"version" yaml:"version"`
	Free     uint64 `json:"free" yaml:"free"`
	Reserved uint64 `json:"reserved" yaml:"reserved"`
	Total    uint64 `json:"total" yaml:"total"`
	Used     uint64 `json:"used" yaml:"used"`
}

func DecodeMemoryInfoV2(raw abi.MemoryV2) MemoryInfoV2 {
	return MemoryInfoV2{
		Version:  raw.Version,
		Free:     raw.Free,
		Reserved: raw.Reserved,
		Total:    raw.Total,
		Used:     raw.Used,
	}
}

// Utilization is percent busy over the last sample period.
type Utilization struct {
	GPU    uint32 `json:"gpu" yaml:"gpu"`
	Memory uint32 `json:"memory" yaml:"memory"`
}

func DecodeUtilization(raw abi.Utilization) Utilization {
	return Utilization{GPU: raw.GPU, Memory: raw.Memory}
}

// ViolationTime is time spent throttled, in ns.
type ViolationTime struct {
	ReferenceTime uint64 `json:"reference_time" yaml:"reference_time"`
	ViolationTime uint64 `json:"violation_time" yaml:"violation_time"`
}

func DecodeViolationTime(raw abi.ViolationTime) ViolationTime {
	return ViolationTime{ReferenceTime: raw.ReferenceTime, ViolationTime: raw.ViolationTime}
}

type DeviceAttributes struct {
	MultiprocessorCount       uint32 `json:"multiprocessor_count" yaml:"multiprocessor_count"`
	SharedCopyEngineCount     uint32 `json:"shared_copy_engine_count" yaml:"shared_copy_engine_count"`
	SharedDecoderCount        uint32 `json:"shared_decoder_count" yaml:"shared_decoder_count"`
	SharedEncoderCount        uint32 `json:"shared_encoder_count" yaml:"shared_encoder_count"`
	SharedJpegCount           uint32 `json:"shared_jpeg_count" yaml:"shared_jpeg_count"`
	SharedOfaCount            uint32 `json:"shared_ofa_count" yaml:"shared_ofa_count"`
	GpuInstanceSliceCount     uint32 `json:"gpu_instance_slice_count" yaml:"gpu_instance_slice_count"`
	ComputeInstanceSliceCount uint32 `json:"compute_instance_slice_count" yaml:"compute_instance_slice_count"`
	MemorySizeMB              uint64 `json:"memory_size_mb" yaml:"memory_size_mb"`
}

func DecodeDeviceAttributes(raw abi.DeviceAttributes) DeviceAttributes {
	return DeviceAttributes{
		MultiprocessorCount:       raw.MultiprocessorCount,
		SharedCopyEngineCount:     raw.SharedCopyEngineCount,
		SharedDecoderCount:        raw.SharedDecoderCount,
		SharedEncoderCount:        raw.SharedEncoderCount,
		SharedJpegCount:           raw.SharedJpegCount,
		SharedOfaCount:            raw.SharedOfaCount,
		GpuInstanceSliceCount:     raw.GpuInstanceSliceCount,
		ComputeInstanceSliceCount: raw.ComputeInstanceSliceCount,
		MemorySizeMB:              raw.MemorySizeMB,
	}
}

// FanSpeedInfo is one fan's speed in RPM.
type FanSpeedInfo struct {
	Version uint32 `json:"version" yaml:"version"`
	Fan     uint32 `json:"fan" yaml:"fan"`
	Speed   uint32 `json:"speed" yaml:"speed"`
}

func DecodeFanSpeedInfo(raw abi.FanSpeedInfo) FanSpeedInfo {
	return FanSpeedInfo{Version: raw.Version, Fan: raw.Fan, Speed: raw.Speed}
}

type ClockOffset struct {
	Version           uint32           `json:"version" yaml:"version"`
	ClockType         Clock            `json:"clock_type" yaml:"clock_type"`
	State             PerformanceState `json:"state" yaml:"state"`
	ClockOffsetMHz    int32            `json:"clock_offset_mhz" yaml:"clock_offset_mhz"`
	MinClockOffsetMHz int32            `json:"min_clock_offset_mhz" yaml:"min_clock_offset_mhz"`
	MaxClockOffsetMHz int32            `json:"max_clock_offset_mhz" yaml:"max_clock_offset_mhz"`
}

func DecodeClockOffset(raw abi.ClockOffset) (ClockOffset, error) {
	clock, err := clocks.Validate(Clock(raw.Type))
	if err != nil {
		return ClockOffset{}, codec.Field("ClockOffset", "clock_type", err)
	}
	state, err := performanceStates.Validate(PerformanceState(raw.Pstate))
	if err != nil {
		return ClockOffset{}, codec.Field("ClockOffset", "state", err)
	}
	return ClockOffset{
		Version:           raw.Version,
		ClockType:         clock,
		State:             state,
		ClockOffsetMHz:    raw.ClockOffsetMHz,
		MinClockOffsetMHz: raw.MinClockOffsetMHz,
		MaxClockOffsetMHz: raw.MaxClockOffsetMHz,
	}, nil
}

// GpuInstancePlacement is a MIG profile placement in memory slices.
type GpuInstancePlacement struct {
	Start uint32 `json:"start" yaml:"start"`
	Size  uint32 `json:"size" yaml:"size"`
}

func DecodeGpuInstancePlacement(raw abi.GpuInstancePlacement) GpuInstancePlacement {
	return GpuInstancePlacement{Start: raw.Start, Size: raw.Size}
}
