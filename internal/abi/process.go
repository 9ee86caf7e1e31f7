package abi

const (
	ProcessInfoSize              = 24
	AccountingStatsSize          = 56
	ProcessUtilizationSampleSize = 32
)

// ProcessInfo mirrors nvmlProcessInfo_t (v2).
type ProcessInfo struct {
	Pid               uint32
	UsedGpuMemory     uint64
	GpuInstanceID     uint32
	ComputeInstanceID uint32
}

func DecodeProcessInfo(b []byte) (ProcessInfo, error) {
	if err := checkSize("process_info", b, ProcessInfoSize); err != nil {
		return ProcessInfo{}, err
	}
	return ProcessInfo{
		Pid:               le.Uint32(b[0:4]),
		UsedGpuMemory:     le.Uint64(b[8:16]),
		GpuInstanceID:     le.Uint32(b[16:20]),
		ComputeInstanceID: le.Uint32(b[20:24]),
	}, nil
}

func EncodeProcessInfo(p ProcessInfo) []byte {
	buf := make([]byte, ProcessInfoSize)
	le.PutUint32(buf[0:4], p.Pid)
	le.PutUint64(buf[8:16], p.UsedGpuMemory)
	le.PutUint32(buf[16:20], p.GpuInstanceID)
	le.PutUint32(buf[20:24], p.ComputeInstanceID)
	return buf
}

// AccountingStats mirrors nvmlAccountingStats_t. The trailing reserved[5]
// words are not interpreted.
type AccountingStats struct {
	GpuUtilization    uint32
	MemoryUtilization uint32
	MaxMemoryUsage    uint64
	Time              uint64
	StartTime         uint64
	IsRunning         uint32
}

func DecodeAccountingStats(b []byte) (AccountingStats, error) {
	if err := checkSize("accounting_stats", b, AccountingStatsSize); err != nil {
		return AccountingStats{}, err
	}
	return AccountingStats{
		GpuUtilization:    le.Uint32(b[0:4]),
		MemoryUtilization: le.Uint32(b[4:8]),
		MaxMemoryUsage:    le.Uint64(b[8:16]),
		Time:              le.Uint64(b[16:24]),
		StartTime:         le.Uint64(b[24:32]),
		IsRunning:         le.Uint32(b[32:36]),
	}, nil
}

func EncodeAccountingStats(a AccountingStats) []byte {
	buf := make([]byte, AccountingStatsSize)
	le.PutUint32(buf[0:4], a.GpuUtilization)
	le.PutUint32(buf[4:8], a.MemoryUtilization)
	le.PutUint64(buf[8:16], a.MaxMemoryUsage)
	le.PutUint64(buf[16:24], a.Time)
	le.PutUint64(buf[24:32], a.StartTime)
	le.PutUint32(buf[32:36], a.IsRunning)
	return buf
}

// ProcessUtilizationSample mirrors nvmlProcessUtilizationSample_t.
type ProcessUtilizationSample struct {
	Pid       uint32
	TimeStamp uint64
	SmUtil    uint32
	MemUtil   uint32
	EncUtil   uint32
	DecUtil   uint32
}

func DecodeProcessUtilizationSample(b []byte) (ProcessUtilizationSample, error) {
	if err := checkSize("process_utilization", b, ProcessUtilizationSampleSize); err != nil {
		return ProcessUtilizationSample{}, err
	}
	return ProcessUtilizationSample{
		Pid:       le.Uint32(b[0:4]),
		TimeStamp: le.Uint64(b[8:16]),
		SmUtil:    le.Uint32(b[16:20]),
		MemUtil:   le.Uint32(b[20:24]),
		EncUtil:   le.Uint32(b[24:28]),
		DecUtil:   le.Uint32(b[28:32]),
	}, nil
}
