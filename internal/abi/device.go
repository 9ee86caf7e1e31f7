package abi

const (
	PciBusIDBufferSize       = 32
	PciBusIDLegacyBufferSize = 16
	MaxPhysicalBridges       = 128

	PciInfoSize              = 68
	BAR1MemorySize           = 24
	BridgeChipInfoSize       = 8
	BridgeChipHierarchySize  = 4 + MaxPhysicalBridges*BridgeChipInfoSize
	EccErrorCountsSize       = 32
	MemorySize               = 24
	MemoryV2Size             = 40
	UtilizationSize          = 8
	ViolationTimeSize        = 16
	DeviceAttributesSize     = 40
	FanSpeedInfoSize         = 12
	ClockOffsetSize          = 24
	GpuInstancePlacementSize = 8
)

// PciInfo mirrors nvmlPciInfo_t (v3).
type PciInfo struct {
	BusIDLegacy    [PciBusIDLegacyBufferSize]byte
	Domain         uint32
	Bus            uint32
	Device         uint32
	PciDeviceID    uint32
	PciSubSystemID uint32
	BusID          [PciBusIDBufferSize]byte
}

func DecodePciInfo(b []byte) (PciInfo, error) {
	if err := checkSize("pci_info", b, PciInfoSize); err != nil {
		return PciInfo{}, err
	}
	var p PciInfo
	copy(p.BusIDLegacy[:], b[0:16])
	p.Domain = le.Uint32(b[16:20])
	p.Bus = le.Uint32(b[20:24])
	p.Device = le.Uint32(b[24:28])
	p.PciDeviceID = le.Uint32(b[28:32])
	p.PciSubSystemID = le.Uint32(b[32:36])
	copy(p.BusID[:], b[36:68])
	return p, nil
}

func EncodePciInfo(p PciInfo) []byte {
	buf := make([]byte, PciInfoSize)
	copy(buf[0:16], p.BusIDLegacy[:])
	le.PutUint32(buf[16:20], p.Domain)
	le.PutUint32(buf[20:24], p.Bus)
	le.PutUint32(buf[24:28], p.Device)
	le.PutUint32(buf[28:32], p.PciDeviceID)
	le.PutUint32(buf[32:36], p.PciSubSystemID)
	copy(buf[36:68], p.BusID[:])
	return buf
}

// BAR1Memory mirrors nvmlBAR1Memory_t.
type BAR1Memory struct {
	Bar1Total uint64
	Bar1Free  uint64
	Bar1Used  uint64
}

func DecodeBAR1Memory(b []byte) (BAR1Memory, error) {
	if err := checkSize("bar1_memory", b, BAR1MemorySize); err != nil {
		return BAR1Memory{}, err
	}
	return BAR1Memory{
		Bar1Total: le.Uint64(b[0:8]),
		Bar1Free:  le.Uint64(b[8:16]),
		Bar1Used:  le.Uint64(b[16:24]),
	}, nil
}

func EncodeBAR1Memory(m BAR1Memory) []byte {
	buf := make([]byte, BAR1MemorySize)
	le.PutUint64(buf[0:8], m.Bar1Total)
	le.PutUint64(buf[8:16], m.Bar1Free)
	le.PutUint64(buf[16:24], m.Bar1Used)
	return buf
}

// BridgeChipInfo mirrors nvmlBridgeChipInfo_t.
type BridgeChipInfo struct {
	Type      uint32
	FwVersion uint32
}

func decodeBridgeChipInfo(b []byte) BridgeChipInfo {
	return BridgeChipInfo{
		Type:      le.Uint32(b[0:4]),
		FwVersion: le.Uint32(b[4:8]),
	}
}

// BridgeChipHierarchy mirrors nvmlBridgeChipHierarchy_t. Only the first
// BridgeCount entries are meaningful.
type BridgeChipHierarchy struct {
	BridgeCount    uint8
	BridgeChipInfo [MaxPhysicalBridges]BridgeChipInfo
}

func DecodeBridgeChipHierarchy(b []byte) (BridgeChipHierarchy, error) {
	if err := checkSize("bridge_chip_hierarchy", b, BridgeChipHierarchySize); err != nil {
		return BridgeChipHierarchy{}, err
	}
	h := BridgeChipHierarchy{BridgeCount: b[0]}
	for i := range h.BridgeChipInfo {
		off := 4 + i*BridgeChipInfoSize
		h.BridgeChipInfo[i] = decodeBridgeChipInfo(b[off : off+BridgeChipInfoSize])
	}
	return h, nil
}

func EncodeBridgeChipHierarchy(h BridgeChipHierarchy) []byte {
	buf := make([]byte, BridgeChipHierarchySize)
	buf[0] = h.BridgeCount
	for i, c := range h.BridgeChipInfo {
		off := 4 + i*BridgeChipInfoSize
		le.PutUint32(buf[off:off+4], c.Type)
		le.PutUint32(buf[off+4:off+8], c.FwVersion)
	}
	return buf
}

// EccErrorCounts mirrors nvmlEccErrorCounts_t.
type EccErrorCounts struct {
	L1Cache      uint64
	L2Cache      uint64
	DeviceMemory uint64
	RegisterFile uint64
}

func DecodeEccErrorCounts(b []byte) (EccErrorCounts, error) {
	if err := checkSize("ecc_error_counts", b, EccErrorCountsSize); err != nil {
		return EccErrorCounts{}, err
	}
	return EccErrorCounts{
		L1Cache:      le.Uint64(b[0:8]),
		L2Cache:      le.Uint64(b[8:16]),
		DeviceMemory: le.Uint64(b[16:24]),
		RegisterFile: le.Uint64(b[24:32]),
	}, nil
}

func EncodeEccErrorCounts(c EccErrorCounts) []byte {
	buf := make([]byte, EccErrorCountsSize)
	le.PutUint64(buf[0:8], c.L1Cache)
	le.PutUint64(buf[8:16], c.L2Cache)
	le.PutUint64(buf[16:24], c.DeviceMemory)
	le.PutUint64(buf[24:32], c.RegisterFile)
	return buf
}

// Memory mirrors nvmlMemory_t (v1).
type Memory struct {
	Total uint64
	Free  uint64
	Used  uint64
}

func DecodeMemory(b []byte) (Memory, error) {
	if err := checkSize("memory_info", b, MemorySize); err != nil {
		return Memory{}, err
	}
	return Memory{
		Total: le.Uint64(b[0:8]),
		Free:  le.Uint64(b[8:16]),
		Used:  le.Uint64(b[16:24]),
	}, nil
}

func EncodeMemory(m Memory) []byte {
	buf := make([]byte, MemorySize)
	le.PutUint64(buf[0:8], m.Total)
	le.PutUint64(buf[8:16], m.Free)
	le.PutUint64(buf[16:24], m.Used)
	return buf
}

// MemoryV2 mirrors nvmlMemory_v2_t.
type MemoryV2 struct {
	Version  uint32
	Total    uint64
	Reserved uint64
	Free     uint64
	Used     uint64
}

func DecodeMemoryV2(b []byte) (MemoryV2, error) {
	if err := checkSize("memory_info_v2", b, MemoryV2Size); err != nil {
		return MemoryV2{}, err
	}
	return MemoryV2{
		Version:  le.Uint32(b[0:4]),
		Total:    le.Uint64(b[8:16]),
		Reserved: le.Uint64(b[16:24]),
		Free:     le.Uint64(b[24:32]),
		Used:     le.Uint64(b[32:40]),
	}, nil
}

func EncodeMemoryV2(m MemoryV2) []byte {
	buf := make([]byte, MemoryV2Size)
	le.PutUint32(buf[0:4], m.Version)
	le.PutUint64(buf[8:16], m.Total)
	le.PutUint64(buf[16:24], m.Reserved)
	le.PutUint64(buf[24:32], m.Free)
	le.PutUint64(buf[32:40], m.Used)
	return buf
}

// Utilization mirrors nvmlUtilization_t.
type Utilization struct {
	GPU    uint32
	Memory uint32
}

func DecodeUtilization(b []byte) (Utilization, error) {
	if err := checkSize("utilization", b, UtilizationSize); err != nil {
		return Utilization{}, err
	}
	return Utilization{GPU: le.Uint32(b[0:4]), Memory: le.Uint32(b[4:8])}, nil
}

// ViolationTime mirrors nvmlViolationTime_t.
type ViolationTime struct {
	ReferenceTime uint64
	ViolationTime uint64
}

func DecodeViolationTime(b []byte) (ViolationTime, error) {
	if err := checkSize("violation_time", b, ViolationTimeSize); err != nil {
		return ViolationTime{}, err
	}
	return ViolationTime{
		ReferenceTime: le.Uint64(b[0:8]),
		ViolationTime: le.Uint64(b[8:16]),
	}, nil
}

// DeviceAttributes mirrors nvmlDeviceAttributes_t.
type DeviceAttributes struct {
	MultiprocessorCount       uint32
	SharedCopyEngineCount     uint32
	SharedDecoderCount        uint32
	SharedEncoderCount        uint32
	SharedJpegCount           uint32
	SharedOfaCount            uint32
	GpuInstanceSliceCount     uint32
	ComputeInstanceSliceCount uint32
	MemorySizeMB              uint64
}

func DecodeDeviceAttributes(b []byte) (DeviceAttributes, error) {
	if err := checkSize("device_attributes", b, DeviceAttributesSize); err != nil {
		return DeviceAttributes{}, err
	}
	return DeviceAttributes{
		MultiprocessorCount:       le.Uint32(b[0:4]),
		SharedCopyEngineCount:     le.Uint32(b[4:8]),
		SharedDecoderCount:        le.Uint32(b[8:12]),
		SharedEncoderCount:        le.Uint32(b[12:16]),
		SharedJpegCount:           le.Uint32(b[16:20]),
		SharedOfaCount:            le.Uint32(b[20:24]),
		GpuInstanceSliceCount:     le.Uint32(b[24:28]),
		ComputeInstanceSliceCount: le.Uint32(b[28:32]),
		MemorySizeMB:              le.Uint64(b[32:40]),
	}, nil
}

// FanSpeedInfo mirrors nvmlFanSpeedInfo_t.
type FanSpeedInfo struct {
	Version uint32
	Fan     uint32
	Speed   uint32
}

func DecodeFanSpeedInfo(b []byte) (FanSpeedInfo, error) {
	if err := checkSize("fan_speed", b, FanSpeedInfoSize); err != nil {
		return FanSpeedInfo{}, err
	}
	return FanSpeedInfo{
		Version: le.Uint32(b[0:4]),
		Fan:     le.Uint32(b[4:8]),
		Speed:   le.Uint32(b[8:12]),
	}, nil
}

// ClockOffset mirrors nvmlClockOffset_v1_t.
type ClockOffset struct {
	Version           uint32
	Type              uint32
	Pstate            uint32
	ClockOffsetMHz    int32
	MinClockOffsetMHz int32
	MaxClockOffsetMHz int32
}

func DecodeClockOffset(b []byte) (ClockOffset, error) {
	if err := checkSize("clock_offset", b, ClockOffsetSize); err != nil {
		return ClockOffset{}, err
	}
	return ClockOffset{
		Version:           le.Uint32(b[0:4]),
		Type:              le.Uint32(b[4:8]),
		Pstate:            le.Uint32(b[8:12]),
		ClockOffsetMHz:    int32(le.Uint32(b[12:16])),
		MinClockOffsetMHz: int32(le.Uint32(b[16:20])),
		MaxClockOffsetMHz: int32(le.Uint32(b[20:24])),
	}, nil
}

func EncodeClockOffset(c ClockOffset) []byte {
	buf := make([]byte, ClockOffsetSize)
	le.PutUint32(buf[0:4], c.Version)
	le.PutUint32(buf[4:8], c.Type)
	le.PutUint32(buf[8:12], c.Pstate)
	le.PutUint32(buf[12:16], uint32(c.ClockOffsetMHz))
	le.PutUint32(buf[16:20], uint32(c.MinClockOffsetMHz))
	le.PutUint32(buf[20:24], uint32(c.MaxClockOffsetMHz))
	return buf
}

// GpuInstancePlacement mirrors nvmlGpuInstancePlacement_t.
type GpuInstancePlacement struct {
	Start uint32
	Size  uint32
}

func DecodeGpuInstancePlacement(b []byte) (GpuInstancePlacement, error) {
	if err := checkSize("gpu_instance_placement", b, GpuInstancePlacementSize); err != nil {
		return GpuInstancePlacement{}, err
	}
	return GpuInstancePlacement{Start: le.Uint32(b[0:4]), Size: le.Uint32(b[4:8])}, nil
}
