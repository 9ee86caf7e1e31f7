package records

import (
	"errors"
	"testing"
	"testing/quick"

	"github.com/danmuck/nvwire/internal/abi"
	"github.com/danmuck/nvwire/internal/codec"
	"github.com/danmuck/nvwire/internal/testutil/testlog"
)

func TestProcessInfoSentinels(t *testing.T) {
	testlog.Start(t)
	raw := abi.ProcessInfo{
		Pid:               42,
		UsedGpuMemory:     0xFFFFFFFFFFFFFFFF,
		GpuInstanceID:     0xFFFFFFFF,
		ComputeInstanceID: 3,
	}
	p := DecodeProcessInfo(raw)
	if p.UsedGpuMemory.IsSome() || p.GpuInstanceID.IsSome() {
		t.Fatalf("expected sentinels to decode as absent: %+v", p)
	}
	if v, ok := p.ComputeInstanceID.Get(); !ok || v != 3 {
		t.Fatalf("expected compute instance 3, got %v", p.ComputeInstanceID)
	}
	if back := EncodeProcessInfo(p); back != raw {
		t.Fatalf("sentinel encode mismatch: got=%+v want=%+v", back, raw)
	}
}

func TestProcessInfoSentinelIdempotence(t *testing.T) {
	testlog.Start(t)
	f := func(pid uint32, mem uint64, gi, ci uint32) bool {
		raw := abi.ProcessInfo{Pid: pid, UsedGpuMemory: mem, GpuInstanceID: gi, ComputeInstanceID: ci}
		p := DecodeProcessInfo(raw)
		return EncodeProcessInfo(p) == raw && DecodeProcessInfo(EncodeProcessInfo(p)) == p
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
	absent := ProcessInfo{Pid: 1}
	if DecodeProcessInfo(EncodeProcessInfo(absent)) != absent {
		t.Fatalf("absent values did not survive encode/decode")
	}
}

func TestProcessInfoZeroInstanceIsPresent(t *testing.T) {
	testlog.Start(t)
	p := DecodeProcessInfo(abi.ProcessInfo{GpuInstanceID: 0})
	if v, ok := p.GpuInstanceID.Get(); !ok || v != 0 {
		t.Fatalf("instance id 0 is a real id, got %v", p.GpuInstanceID)
	}
}

func TestAccountingStatsSentinels(t *testing.T) {
	testlog.Start(t)
	s := DecodeAccountingStats(abi.AccountingStats{
		GpuUtilization:    0xFFFFFFFF,
		MemoryUtilization: 40,
		MaxMemoryUsage:    0xFFFFFFFFFFFFFFFF,
		Time:              7,
		StartTime:         100,
		IsRunning:         5,
	})
	if s.GpuUtilization.IsSome() || s.MaxMemoryUsage.IsSome() {
		t.Fatalf("expected absent utilization and memory: %+v", s)
	}
	if s.MemoryUtilization.Or(0) != 40 || !s.IsRunning || s.Time != 7 || s.StartTime != 100 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestEncoderSessionInfo(t *testing.T) {
	testlog.Start(t)
	s, err := DecodeEncoderSessionInfo(abi.EncoderSessionInfo{SessionID: 1, VgpuInstance: 0, CodecType: 2})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.VgpuInstance.IsSome() || s.CodecType != EncoderAV1 {
		t.Fatalf("unexpected session: %+v", s)
	}
	_, err = DecodeEncoderSessionInfo(abi.EncoderSessionInfo{CodecType: 3})
	var variant codec.UnexpectedVariantError
	if !errors.As(err, &variant) || variant.Tag != 3 || variant.Type != "EncoderType" {
		t.Fatalf("expected EncoderType variant error, got %v", err)
	}
}

func TestFbcSessionFlags(t *testing.T) {
	testlog.Start(t)
	raw := abi.FBCSessionInfo{
		SessionType:  uint32(FbcSessionCuda),
		SessionFlags: uint32(codec.Join(FbcFlagDiffMap, FbcFlagWaitTimeout)),
		VgpuInstance: 9,
	}
	s, err := DecodeFbcSessionInfo(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !s.SessionFlags.Has(FbcFlagDiffMap) || s.SessionFlags.Has(FbcFlagWaitInfinite) {
		t.Fatalf("unexpected flags: %b", s.SessionFlags)
	}
	if s.VgpuInstance.Or(0) != 9 {
		t.Fatalf("expected vgpu instance 9, got %v", s.VgpuInstance)
	}

	raw.SessionFlags |= 1 << 5
	_, err = DecodeFbcSessionInfo(raw)
	var bits codec.UnrecognizedBitsError
	if !errors.As(err, &bits) || bits.Raw != uint64(raw.SessionFlags) {
		t.Fatalf("expected unrecognized bits with raw value, got %v", err)
	}
}

func TestFbcSessionTypeCheckedBeforeFlags(t *testing.T) {
	testlog.Start(t)
	_, err := DecodeFbcSessionInfo(abi.FBCSessionInfo{SessionType: 5, SessionFlags: 1 << 30})
	if !errors.Is(err, codec.ErrUnexpectedVariant) {
		t.Fatalf("expected session type failure first, got %v", err)
	}
}

func TestFbcFlagTotality(t *testing.T) {
	testlog.Start(t)
	f := func(raw uint32) bool {
		_, err := fbcFlags.Validate(FbcFlags(raw))
		valid := raw&^uint32(fbcFlags.Known()) == 0
		return (err == nil) == valid
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
