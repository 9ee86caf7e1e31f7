package abi

const (
	SchedulerMaxLogEntries = 200
	SupportedSchedulers    = 3

	SchedulerParamsSize           = 8
	SchedulerLogEntrySize         = 48
	VgpuSchedulerCapabilitiesSize = 40
	VgpuVersionSize               = 8
	VgpuSchedulerLogSize          = 24 + SchedulerMaxLogEntries*SchedulerLogEntrySize
	VgpuSchedulerGetStateSize     = 16
	VgpuSchedulerSetStateSize     = 16
)

// SchedulerParams is the opaque storage of nvmlVgpuSchedulerParams_t and
// nvmlVgpuSchedulerSetParams_t. The ARR mode of the enclosing record picks
// the layout.
type SchedulerParams [SchedulerParamsSize]byte

// VgpuSchedulerCapabilities mirrors nvmlVgpuSchedulerCapabilities_t.
type VgpuSchedulerCapabilities struct {
	SupportedSchedulers [SupportedSchedulers]uint32
	MaxTimeslice        uint32
	MinTimeslice        uint32
	IsArrModeSupported  uint32
	MaxFrequencyForARR  uint32
	MinFrequencyForARR  uint32
	MaxAvgFactorForARR  uint32
	MinAvgFactorForARR  uint32
}

func DecodeVgpuSchedulerCapabilities(b []byte) (VgpuSchedulerCapabilities, error) {
	if err := checkSize("vgpu_scheduler_capabilities", b, VgpuSchedulerCapabilitiesSize); err != nil {
		return VgpuSchedulerCapabilities{}, err
	}
	var c VgpuSchedulerCapabilities
	for i := range c.SupportedSchedulers {
		c.SupportedSchedulers[i] = le.Uint32(b[i*4 : i*4+4])
	}
	c.MaxTimeslice = le.Uint32(b[12:16])
	c.MinTimeslice = le.Uint32(b[16:20])
	c.IsArrModeSupported = le.Uint32(b[20:24])
	c.MaxFrequencyForARR = le.Uint32(b[24:28])
	c.MinFrequencyForARR = le.Uint32(b[28:32])
	c.MaxAvgFactorForARR = le.Uint32(b[32:36])
	c.MinAvgFactorForARR = le.Uint32(b[36:40])
	return c, nil
}

// VgpuVersion mirrors nvmlVgpuVersion_t.
type VgpuVersion struct {
	MinVersion uint32
	MaxVersion uint32
}

func DecodeVgpuVersion(b []byte) (VgpuVersion, error) {
	if err := checkSize("vgpu_version", b, VgpuVersionSize); err != nil {
		return VgpuVersion{}, err
	}
	return VgpuVersion{MinVersion: le.Uint32(b[0:4]), MaxVersion: le.Uint32(b[4:8])}, nil
}

func EncodeVgpuVersion(v VgpuVersion) []byte {
	buf := make([]byte, VgpuVersionSize)
	le.PutUint32(buf[0:4], v.MinVersion)
	le.PutUint32(buf[4:8], v.MaxVersion)
	return buf
}

// SchedulerLogEntry mirrors nvmlVgpuSchedulerLogEntry_t.
type SchedulerLogEntry struct {
	Timestamp                uint64
	TimeRunTotal             uint64
	TimeRun                  uint64
	SwRunlistID              uint32
	TargetTimeSlice          uint64
	CumulativePreemptionTime uint64
}

func decodeSchedulerLogEntry(b []byte) SchedulerLogEntry {
	return SchedulerLogEntry{
		Timestamp:                le.Uint64(b[0:8]),
		TimeRunTotal:             le.Uint64(b[8:16]),
		TimeRun:                  le.Uint64(b[16:24]),
		SwRunlistID:              le.Uint32(b[24:28]),
		TargetTimeSlice:          le.Uint64(b[32:40]),
		CumulativePreemptionTime: le.Uint64(b[40:48]),
	}
}

func putSchedulerLogEntry(b []byte, e SchedulerLogEntry) {
	le.PutUint64(b[0:8], e.Timestamp)
	le.PutUint64(b[8:16], e.TimeRunTotal)
	le.PutUint64(b[16:24], e.TimeRun)
	le.PutUint32(b[24:28], e.SwRunlistID)
	le.PutUint64(b[32:40], e.TargetTimeSlice)
	le.PutUint64(b[40:48], e.CumulativePreemptionTime)
}

// VgpuSchedulerLog mirrors nvmlVgpuSchedulerLog_t.
type VgpuSchedulerLog struct {
	EngineID        uint32
	SchedulerPolicy uint32
	ArrMode         uint32
	SchedulerParams SchedulerParams
	EntriesCount    uint32
	LogEntries      [SchedulerMaxLogEntries]SchedulerLogEntry
}

func DecodeVgpuSchedulerLog(b []byte) (VgpuSchedulerLog, error) {
	if err := checkSize("vgpu_scheduler_log", b, VgpuSchedulerLogSize); err != nil {
		return VgpuSchedulerLog{}, err
	}
	l := VgpuSchedulerLog{
		EngineID:        le.Uint32(b[0:4]),
		SchedulerPolicy: le.Uint32(b[4:8]),
		ArrMode:         le.Uint32(b[8:12]),
		EntriesCount:    le.Uint32(b[20:24]),
	}
	copy(l.SchedulerParams[:], b[12:20])
	for i := range l.LogEntries {
		off := 24 + i*SchedulerLogEntrySize
		l.LogEntries[i] = decodeSchedulerLogEntry(b[off : off+SchedulerLogEntrySize])
	}
	return l, nil
}

func EncodeVgpuSchedulerLog(l VgpuSchedulerLog) []byte {
	buf := make([]byte, VgpuSchedulerLogSize)
	le.PutUint32(buf[0:4], l.EngineID)
	le.PutUint32(buf[4:8], l.SchedulerPolicy)
	le.PutUint32(buf[8:12], l.ArrMode)
	copy(buf[12:20], l.SchedulerParams[:])
	le.PutUint32(buf[20:24], l.EntriesCount)
	for i, e := range l.LogEntries {
		off := 24 + i*SchedulerLogEntrySize
		putSchedulerLogEntry(buf[off:off+SchedulerLogEntrySize], e)
	}
	return buf
}

// VgpuSchedulerGetState mirrors nvmlVgpuSchedulerGetState_t.
type VgpuSchedulerGetState struct {
	SchedulerPolicy uint32
	ArrMode         uint32
	SchedulerParams SchedulerParams
}

func DecodeVgpuSchedulerGetState(b []byte) (VgpuSchedulerGetState, error) {
	if err := checkSize("vgpu_scheduler_state", b, VgpuSchedulerGetStateSize); err != nil {
		return VgpuSchedulerGetState{}, err
	}
	s := VgpuSchedulerGetState{
		SchedulerPolicy: le.Uint32(b[0:4]),
		ArrMode:         le.Uint32(b[4:8]),
	}
	copy(s.SchedulerParams[:], b[8:16])
	return s, nil
}

func EncodeVgpuSchedulerGetState(s VgpuSchedulerGetState) []byte {
	buf := make([]byte, VgpuSchedulerGetStateSize)
	le.PutUint32(buf[0:4], s.SchedulerPolicy)
	le.PutUint32(buf[4:8], s.ArrMode)
	copy(buf[8:16], s.SchedulerParams[:])
	return buf
}

// VgpuSchedulerSetState mirrors nvmlVgpuSchedulerSetState_t.
type VgpuSchedulerSetState struct {
	SchedulerPolicy uint32
	EnableARRMode   uint32
	SchedulerParams SchedulerParams
}

func DecodeVgpuSchedulerSetState(b []byte) (VgpuSchedulerSetState, error) {
	if err := checkSize("vgpu_scheduler_set_state", b, VgpuSchedulerSetStateSize); err != nil {
		return VgpuSchedulerSetState{}, err
	}
	s := VgpuSchedulerSetState{
		SchedulerPolicy: le.Uint32(b[0:4]),
		EnableARRMode:   le.Uint32(b[4:8]),
	}
	copy(s.SchedulerParams[:], b[8:16])
	return s, nil
}

func EncodeVgpuSchedulerSetState(s VgpuSchedulerSetState) []byte {
	buf := make([]byte, VgpuSchedulerSetStateSize)
	le.PutUint32(buf[0:4], s.SchedulerPolicy)
	le.PutUint32(buf[4:8], s.EnableARRMode)
	copy(buf[8:16], s.SchedulerParams[:])
	return buf
}
