package records

import (
	"github.com/danmuck/nvwire/internal/abi"
	"github.com/danmuck/nvwire/internal/codec"
)

type VgpuSchedulerCapabilities struct {
	IsArrModeSupported  bool     `json:"is_arr_mode_supported" yaml:"is_arr_mode_supported"`
	MaxAvgFactorForArr  uint32   `json:"max_avg_factor_for_arr" yaml:"max_avg_factor_for_arr"`
	MaxFreqForArr       uint32   `json:"max_freq_for_arr" yaml:"max_freq_for_arr"`
	MaxTimeSlice        uint32   `json:"max_time_slice" yaml:"max_time_slice"`
	MinAvgFactorForArr  uint32   `json:"min_avg_factor_for_arr" yaml:"min_avg_factor_for_arr"`
	MinFreqForArr       uint32   `json:"min_freq_for_arr" yaml:"min_freq_for_arr"`
	MinTimeSlice        uint32   `json:"min_time_slice" yaml:"min_time_slice"`
	SupportedSchedulers []uint32 `json:"supported_schedulers" yaml:"supported_schedulers"`
}

func DecodeVgpuSchedulerCapabilities(raw abi.VgpuSchedulerCapabilities) VgpuSchedulerCapabilities {
	return VgpuSchedulerCapabilities{
		IsArrModeSupported:  raw.IsArrModeSupported > 0,
		MaxAvgFactorForArr:  raw.MaxAvgFactorForARR,
		MaxFreqForArr:       raw.MaxFrequencyForARR,
		MaxTimeSlice:        raw.MaxTimeslice,
		MinAvgFactorForArr:  raw.MinAvgFactorForARR,
		MinFreqForArr:       raw.MinFrequencyForARR,
		MinTimeSlice:        raw.MinTimeslice,
		SupportedSchedulers: append([]uint32(nil), raw.SupportedSchedulers[:]...),
	}
}

// VgpuVersion is a supported vGPU version range.
type VgpuVersion struct {
	Min uint32 `json:"min" yaml:"min"`
	Max uint32 `json:"max" yaml:"max"`
}

func DecodeVgpuVersion(raw abi.VgpuVersion) VgpuVersion {
	return VgpuVersion{Min: raw.MinVersion, Max: raw.MaxVersion}
}

func EncodeVgpuVersion(v VgpuVersion) abi.VgpuVersion {
	return abi.VgpuVersion{MinVersion: v.Min, MaxVersion: v.Max}
}

// VgpuSchedulerParams is the scheduler payload reported with a log. AvgFactor
// is only carried by the adaptive round robin shape.
type VgpuSchedulerParams struct {
	AvgFactor codec.Option[uint32] `json:"avg_factor" yaml:"avg_factor"`
	Timeslice uint32               `json:"timeslice" yaml:"timeslice"`
}

func plainSchedulerParams(s []byte) (VgpuSchedulerParams, error) {
	return VgpuSchedulerParams{Timeslice: le.Uint32(s[0:4])}, nil
}

func arrSchedulerParams(s []byte) (VgpuSchedulerParams, error) {
	return VgpuSchedulerParams{
		AvgFactor: codec.Some(le.Uint32(s[0:4])),
		Timeslice: le.Uint32(s[4:8]),
	}, nil
}

var schedulerParams = codec.NewSelector("ArrMode", map[ArrMode]codec.Shape[VgpuSchedulerParams]{
	ArrModeDefault: plainSchedulerParams,
	ArrModeDisable: plainSchedulerParams,
	ArrModeEnable:  arrSchedulerParams,
})

type VgpuSchedulerLogEntry struct {
	Timestamp                uint64 `json:"timestamp" yaml:"timestamp"`
	TimeRunTotal             uint64 `json:"time_run_total" yaml:"time_run_total"`
	TimeRun                  uint64 `json:"time_run" yaml:"time_run"`
	SwRunlistID              uint32 `json:"sw_runlist_id" yaml:"sw_runlist_id"`
	TargetTimeSlice          uint64 `json:"target_time_slice" yaml:"target_time_slice"`
	CumulativePreemptionTime uint64 `json:"cumulative_preemption_time" yaml:"cumulative_preemption_time"`
}

func decodeSchedulerLogEntry(raw abi.SchedulerLogEntry) VgpuSchedulerLogEntry {
	return VgpuSchedulerLogEntry{
		Timestamp:                raw.Timestamp,
		TimeRunTotal:             raw.TimeRunTotal,
		TimeRun:                  raw.TimeRun,
		SwRunlistID:              raw.SwRunlistID,
		TargetTimeSlice:          raw.TargetTimeSlice,
		CumulativePreemptionTime: raw.CumulativePreemptionTime,
	}
}

type VgpuSchedulerLog struct {
	EngineID        uint32                  `json:"engine_id" yaml:"engine_id"`
	SchedulerPolicy uint32                  `json:"scheduler_policy" yaml:"scheduler_policy"`
	ArrMode         ArrMode                 `json:"arr_mode" yaml:"arr_mode"`
	SchedulerParams VgpuSchedulerParams     `json:"scheduler_params" yaml:"scheduler_params"`
	EntriesCount    uint32                  `json:"entries_count" yaml:"entries_count"`
	Entries         []VgpuSchedulerLogEntry `json:"entries" yaml:"entries"`
}

// DecodeVgpuSchedulerLog selects the params shape from ArrMode, then maps the
// first EntriesCount log slots. An undocumented ArrMode is kept as reported
// and its params decode with the default shape.
func DecodeVgpuSchedulerLog(raw abi.VgpuSchedulerLog) (VgpuSchedulerLog, error) {
	mode := ArrMode(raw.ArrMode)
	params, err := schedulerParams.Select(mode, raw.SchedulerParams[:])
	if err != nil {
		return VgpuSchedulerLog{}, codec.Field("VgpuSchedulerLog", "scheduler_params", err)
	}
	entries, err := codec.MapCounted(raw.LogEntries[:], int(raw.EntriesCount), codec.Infallible(decodeSchedulerLogEntry))
	if err != nil {
		return VgpuSchedulerLog{}, codec.Field("VgpuSchedulerLog", "entries", err)
	}
	return VgpuSchedulerLog{
		EngineID:        raw.EngineID,
		SchedulerPolicy: raw.SchedulerPolicy,
		ArrMode:         mode,
		SchedulerParams: params,
		EntriesCount:    raw.EntriesCount,
		Entries:         entries,
	}, nil
}

type VgpuSchedulerGetState struct {
	ArrMode         ArrMode             `json:"arr_mode" yaml:"arr_mode"`
	SchedulerPolicy uint32              `json:"scheduler_policy" yaml:"scheduler_policy"`
	SchedulerParams VgpuSchedulerParams `json:"scheduler_params" yaml:"scheduler_params"`
}

// DecodeVgpuSchedulerGetState reads the params with the same ArrMode shapes
// as the scheduler log.
func DecodeVgpuSchedulerGetState(raw abi.VgpuSchedulerGetState) (VgpuSchedulerGetState, error) {
	mode := ArrMode(raw.ArrMode)
	params, err := schedulerParams.Select(mode, raw.SchedulerParams[:])
	if err != nil {
		return VgpuSchedulerGetState{}, codec.Field("VgpuSchedulerGetState", "scheduler_params", err)
	}
	return VgpuSchedulerGetState{
		ArrMode:         mode,
		SchedulerPolicy: raw.SchedulerPolicy,
		SchedulerParams: params,
	}, nil
}

// VgpuSchedulerSetParams is the payload of a scheduler state change. With
// AvgFactor set, FrequencyOrTimeslice is the ARR frequency; otherwise it is
// the timeslice in ns.
type VgpuSchedulerSetParams struct {
	AvgFactor            codec.Option[uint32] `json:"avg_factor" yaml:"avg_factor"`
	FrequencyOrTimeslice uint32               `json:"frequency_or_timeslice" yaml:"frequency_or_timeslice"`
}

func plainSetParams(s []byte) (VgpuSchedulerSetParams, error) {
	return VgpuSchedulerSetParams{FrequencyOrTimeslice: le.Uint32(s[0:4])}, nil
}

func arrSetParams(s []byte) (VgpuSchedulerSetParams, error) {
	return VgpuSchedulerSetParams{
		AvgFactor:            codec.Some(le.Uint32(s[0:4])),
		FrequencyOrTimeslice: le.Uint32(s[4:8]),
	}, nil
}

var schedulerSetParams = codec.NewSelector("ArrMode", map[ArrMode]codec.Shape[VgpuSchedulerSetParams]{
	ArrModeDefault: plainSetParams,
	ArrModeDisable: plainSetParams,
	ArrModeEnable:  arrSetParams,
})

type VgpuSchedulerSetState struct {
	SchedulerPolicy uint32                 `json:"scheduler_policy" yaml:"scheduler_policy"`
	EnableARRMode   ArrMode                `json:"enable_arr_mode" yaml:"enable_arr_mode"`
	SchedulerParams VgpuSchedulerSetParams `json:"scheduler_params" yaml:"scheduler_params"`
}

func DecodeVgpuSchedulerSetState(raw abi.VgpuSchedulerSetState) (VgpuSchedulerSetState, error) {
	mode := ArrMode(raw.EnableARRMode)
	params, err := schedulerSetParams.Select(mode, raw.SchedulerParams[:])
	if err != nil {
		return VgpuSchedulerSetState{}, codec.Field("VgpuSchedulerSetState", "scheduler_params", err)
	}
	return VgpuSchedulerSetState{
		SchedulerPolicy: raw.SchedulerPolicy,
		EnableARRMode:   mode,
		SchedulerParams: params,
	}, nil
}

// EncodeVgpuSchedulerSetState writes s back to its raw layout. The params
// shape follows EnableARRMode the same way decoding does, so AvgFactor must
// be present exactly when the shape it selects carries one.
func EncodeVgpuSchedulerSetState(s VgpuSchedulerSetState) (abi.VgpuSchedulerSetState, error) {
	shapeMode := s.EnableARRMode
	if !schedulerSetParams.Known(shapeMode) {
		shapeMode = schedulerSetParams.Fallback()
	}
	arr := shapeMode == ArrModeEnable
	avg, hasAvg := s.SchedulerParams.AvgFactor.Get()
	if arr != hasAvg {
		return abi.VgpuSchedulerSetState{}, codec.Field("VgpuSchedulerSetState", "scheduler_params", codec.InvalidValueError{
			Reason: "avg_factor presence does not match arr mode " + s.EnableARRMode.String(),
		})
	}
	raw := abi.VgpuSchedulerSetState{
		SchedulerPolicy: s.SchedulerPolicy,
		EnableARRMode:   uint32(s.EnableARRMode),
	}
	if arr {
		le.PutUint32(raw.SchedulerParams[0:4], avg)
		le.PutUint32(raw.SchedulerParams[4:8], s.SchedulerParams.FrequencyOrTimeslice)
	} else {
		le.PutUint32(raw.SchedulerParams[0:4], s.SchedulerParams.FrequencyOrTimeslice)
	}
	return raw, nil
}
