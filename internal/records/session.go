package records

import (
	"github.com/danmuck/nvwire/internal/abi"
	"github.com/danmuck/nvwire/internal/codec"
)

type EncoderSessionInfo struct {
	SessionID      uint32               `json:"session_id" yaml:"session_id"`
	Pid            uint32               `json:"pid" yaml:"pid"`
	VgpuInstance   codec.Option[uint32] `json:"vgpu_instance" yaml:"vgpu_instance"`
	CodecType      EncoderType          `json:"codec_type" yaml:"codec_type"`
	HResolution    uint32               `json:"hres" yaml:"hres"`
	VResolution    uint32               `json:"vres" yaml:"vres"`
	AverageFps     uint32               `json:"average_fps" yaml:"average_fps"`
	AverageLatency uint32               `json:"average_latency" yaml:"average_latency"`
}

func DecodeEncoderSessionInfo(raw abi.EncoderSessionInfo) (EncoderSessionInfo, error) {
	codecType, err := encoderTypes.Validate(EncoderType(raw.CodecType))
	if err != nil {
		return EncoderSessionInfo{}, codec.Field("EncoderSessionInfo", "codec_type", err)
	}
	return EncoderSessionInfo{
		SessionID:      raw.SessionID,
		Pid:            raw.Pid,
		VgpuInstance:   vgpuInstances.Decode(raw.VgpuInstance),
		CodecType:      codecType,
		HResolution:    raw.HResolution,
		VResolution:    raw.VResolution,
		AverageFps:     raw.AverageFps,
		AverageLatency: raw.AverageLatency,
	}, nil
}

// FbcStats aggregates every frame buffer capture session on a device.
type FbcStats struct {
	SessionsCount  uint32 `json:"sessions_count" yaml:"sessions_count"`
	AverageFPS     uint32 `json:"average_fps" yaml:"average_fps"`
	AverageLatency uint32 `json:"average_latency" yaml:"average_latency"`
}

func DecodeFbcStats(raw abi.FBCStats) FbcStats {
	return FbcStats{
		SessionsCount:  raw.SessionsCount,
		AverageFPS:     raw.AverageFPS,
		AverageLatency: raw.AverageLatency,
	}
}

type FbcSessionInfo struct {
	SessionID      uint32               `json:"session_id" yaml:"session_id"`
	Pid            uint32               `json:"pid" yaml:"pid"`
	VgpuInstance   codec.Option[uint32] `json:"vgpu_instance" yaml:"vgpu_instance"`
	DisplayOrdinal uint32               `json:"display_ordinal" yaml:"display_ordinal"`
	SessionType    FbcSessionType       `json:"session_type" yaml:"session_type"`
	SessionFlags   FbcFlags             `json:"session_flags" yaml:"session_flags"`
	HResMax        uint32               `json:"hres_max" yaml:"hres_max"`
	VResMax        uint32               `json:"vres_max" yaml:"vres_max"`
	HRes           uint32               `json:"hres" yaml:"hres"`
	VRes           uint32               `json:"vres" yaml:"vres"`
	AverageFPS     uint32               `json:"average_fps" yaml:"average_fps"`
	AverageLatency uint32               `json:"average_latency" yaml:"average_latency"`
}

// DecodeFbcSessionInfo validates the session type before the flags; a record
// with both wrong reports the type.
func DecodeFbcSessionInfo(raw abi.FBCSessionInfo) (FbcSessionInfo, error) {
	sessionType, err := fbcSessionTypes.Validate(FbcSessionType(raw.SessionType))
	if err != nil {
		return FbcSessionInfo{}, codec.Field("FbcSessionInfo", "session_type", err)
	}
	flags, err := fbcFlags.Validate(FbcFlags(raw.SessionFlags))
	if err != nil {
		return FbcSessionInfo{}, codec.Field("FbcSessionInfo", "session_flags", err)
	}
	return FbcSessionInfo{
		SessionID:      raw.SessionID,
		Pid:            raw.Pid,
		VgpuInstance:   vgpuInstances.Decode(raw.VgpuInstance),
		DisplayOrdinal: raw.DisplayOrdinal,
		SessionType:    sessionType,
		SessionFlags:   flags,
		HResMax:        raw.HMaxResolution,
		VResMax:        raw.VMaxResolution,
		HRes:           raw.HResolution,
		VRes:           raw.VResolution,
		AverageFPS:     raw.AverageFPS,
		AverageLatency: raw.AverageLatency,
	}, nil
}
