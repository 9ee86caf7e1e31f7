package records

import (
	"github.com/danmuck/nvwire/internal/abi"
	"github.com/danmuck/nvwire/internal/codec"
)

// ProcessInfo describes a compute or graphics process on a device.
// Instance ids are only set when MIG is enabled.
type ProcessInfo struct {
	Pid               uint32               `json:"pid" yaml:"pid"`
	UsedGpuMemory     codec.Option[uint64] `json:"used_gpu_memory" yaml:"used_gpu_memory"`
	GpuInstanceID     codec.Option[uint32] `json:"gpu_instance_id" yaml:"gpu_instance_id"`
	ComputeInstanceID codec.Option[uint32] `json:"compute_instance_id" yaml:"compute_instance_id"`
}

func DecodeProcessInfo(raw abi.ProcessInfo) ProcessInfo {
	return ProcessInfo{
		Pid:               raw.Pid,
		UsedGpuMemory:     usedGpuMemory.Decode(raw.UsedGpuMemory),
		GpuInstanceID:     gpuInstanceIDs.Decode(raw.GpuInstanceID),
		ComputeInstanceID: computeInstanceIDs.Decode(raw.ComputeInstanceID),
	}
}

func EncodeProcessInfo(p ProcessInfo) abi.ProcessInfo {
	return abi.ProcessInfo{
		Pid:               p.Pid,
		UsedGpuMemory:     usedGpuMemory.Encode(p.UsedGpuMemory),
		GpuInstanceID:     gpuInstanceIDs.Encode(p.GpuInstanceID),
		ComputeInstanceID: computeInstanceIDs.Encode(p.ComputeInstanceID),
	}
}

// AccountingStats covers a process's lifetime on a device. The raw reserved
// words are not carried.
type AccountingStats struct {
	GpuUtilization    codec.Option[uint32] `json:"gpu_utilization" yaml:"gpu_utilization"`
	IsRunning         bool                 `json:"is_running" yaml:"is_running"`
	MaxMemoryUsage    codec.Option[uint64] `json:"max_memory_usage" yaml:"max_memory_usage"`
	MemoryUtilization codec.Option[uint32] `json:"memory_utilization" yaml:"memory_utilization"`
	StartTime         uint64               `json:"start_time" yaml:"start_time"`
	Time              uint64               `json:"time" yaml:"time"`
}

func DecodeAccountingStats(raw abi.AccountingStats) AccountingStats {
	return AccountingStats{
		GpuUtilization:    utilizationPercent.Decode(raw.GpuUtilization),
		IsRunning:         raw.IsRunning != 0,
		MaxMemoryUsage:    maxMemoryUsage.Decode(raw.MaxMemoryUsage),
		MemoryUtilization: utilizationPercent.Decode(raw.MemoryUtilization),
		StartTime:         raw.StartTime,
		Time:              raw.Time,
	}
}

type ProcessUtilizationSample struct {
	Pid       uint32 `json:"pid" yaml:"pid"`
	Timestamp uint64 `json:"timestamp" yaml:"timestamp"`
	SmUtil    uint32 `json:"sm_util" yaml:"sm_util"`
	MemUtil   uint32 `json:"mem_util" yaml:"mem_util"`
	EncUtil   uint32 `json:"enc_util" yaml:"enc_util"`
	DecUtil   uint32 `json:"dec_util" yaml:"dec_util"`
}

func DecodeProcessUtilizationSample(raw abi.ProcessUtilizationSample) ProcessUtilizationSample {
	return ProcessUtilizationSample{
		Pid:       raw.Pid,
		Timestamp: raw.TimeStamp,
		SmUtil:    raw.SmUtil,
		MemUtil:   raw.MemUtil,
		EncUtil:   raw.EncUtil,
		DecUtil:   raw.DecUtil,
	}
}
