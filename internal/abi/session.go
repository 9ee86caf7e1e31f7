package abi

const (
	EncoderSessionInfoSize = 32
	FBCStatsSize           = 12
	FBCSessionInfoSize     = 48
)

// EncoderSessionInfo mirrors nvmlEncoderSessionInfo_t.
type EncoderSessionInfo struct {
	SessionID      uint32
	Pid            uint32
	VgpuInstance   uint32
	CodecType      uint32
	HResolution    uint32
	VResolution    uint32
	AverageFps     uint32
	AverageLatency uint32
}

func DecodeEncoderSessionInfo(b []byte) (EncoderSessionInfo, error) {
	if err := checkSize("encoder_sessions", b, EncoderSessionInfoSize); err != nil {
		return EncoderSessionInfo{}, err
	}
	return EncoderSessionInfo{
		SessionID:      le.Uint32(b[0:4]),
		Pid:            le.Uint32(b[4:8]),
		VgpuInstance:   le.Uint32(b[8:12]),
		CodecType:      le.Uint32(b[12:16]),
		HResolution:    le.Uint32(b[16:20]),
		VResolution:    le.Uint32(b[20:24]),
		AverageFps:     le.Uint32(b[24:28]),
		AverageLatency: le.Uint32(b[28:32]),
	}, nil
}

func EncodeEncoderSessionInfo(s EncoderSessionInfo) []byte {
	buf := make([]byte, EncoderSessionInfoSize)
	for i, v := range []uint32{
		s.SessionID, s.Pid, s.VgpuInstance, s.CodecType,
		s.HResolution, s.VResolution, s.AverageFps, s.AverageLatency,
	} {
		le.PutUint32(buf[i*4:i*4+4], v)
	}
	return buf
}

// FBCStats mirrors nvmlFBCStats_t.
type FBCStats struct {
	SessionsCount  uint32
	AverageFPS     uint32
	AverageLatency uint32
}

func DecodeFBCStats(b []byte) (FBCStats, error) {
	if err := checkSize("fbc_stats", b, FBCStatsSize); err != nil {
		return FBCStats{}, err
	}
	return FBCStats{
		SessionsCount:  le.Uint32(b[0:4]),
		AverageFPS:     le.Uint32(b[4:8]),
		AverageLatency: le.Uint32(b[8:12]),
	}, nil
}

// FBCSessionInfo mirrors nvmlFBCSessionInfo_t.
type FBCSessionInfo struct {
	SessionID      uint32
	Pid            uint32
	VgpuInstance   uint32
	DisplayOrdinal uint32
	SessionType    uint32
	SessionFlags   uint32
	HMaxResolution uint32
	VMaxResolution uint32
	HResolution    uint32
	VResolution    uint32
	AverageFPS     uint32
	AverageLatency uint32
}

func DecodeFBCSessionInfo(b []byte) (FBCSessionInfo, error) {
	if err := checkSize("fbc_sessions", b, FBCSessionInfoSize); err != nil {
		return FBCSessionInfo{}, err
	}
	return FBCSessionInfo{
		SessionID:      le.Uint32(b[0:4]),
		Pid:            le.Uint32(b[4:8]),
		VgpuInstance:   le.Uint32(b[8:12]),
		DisplayOrdinal: le.Uint32(b[12:16]),
		SessionType:    le.Uint32(b[16:20]),
		SessionFlags:   le.Uint32(b[20:24]),
		HMaxResolution: le.Uint32(b[24:28]),
		VMaxResolution: le.Uint32(b[28:32]),
		HResolution:    le.Uint32(b[32:36]),
		VResolution:    le.Uint32(b[36:40]),
		AverageFPS:     le.Uint32(b[40:44]),
		AverageLatency: le.Uint32(b[44:48]),
	}, nil
}

func EncodeFBCSessionInfo(s FBCSessionInfo) []byte {
	buf := make([]byte, FBCSessionInfoSize)
	for i, v := range []uint32{
		s.SessionID, s.Pid, s.VgpuInstance, s.DisplayOrdinal,
		s.SessionType, s.SessionFlags, s.HMaxResolution, s.VMaxResolution,
		s.HResolution, s.VResolution, s.AverageFPS, s.AverageLatency,
	} {
		le.PutUint32(buf[i*4:i*4+4], v)
	}
	return buf
}
