package records

import (
	"errors"
	"strings"
	"testing"
	"testing/quick"

	"github.com/danmuck/nvwire/internal/abi"
	"github.com/danmuck/nvwire/internal/codec"
	"github.com/danmuck/nvwire/internal/testutil/testlog"
)

func TestPciInfoRoundTrip(t *testing.T) {
	testlog.Start(t)
	in := PciInfo{
		Bus:            0x41,
		BusID:          "00000000:41:00.0",
		Device:         0,
		Domain:         0,
		PciDeviceID:    0x20B010DE,
		PciSubSystemID: codec.Some(uint32(0x145F10DE)),
	}
	raw, err := EncodePciInfo(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodePciInfo(raw, true)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("mismatch: got=%+v want=%+v", out, in)
	}
}

func TestPciInfoRoundTripProperty(t *testing.T) {
	testlog.Start(t)
	f := func(bus, device, domain, pciID, sub uint32, present bool) bool {
		in := PciInfo{Bus: bus, BusID: "0000:01:00.0", Device: device, Domain: domain, PciDeviceID: pciID}
		if present {
			in.PciSubSystemID = codec.Some(sub)
		}
		raw, err := EncodePciInfo(in)
		if err != nil {
			return false
		}
		out, err := DecodePciInfo(abiRoundTrip(raw), present)
		return err == nil && out == in
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func abiRoundTrip(raw abi.PciInfo) abi.PciInfo {
	out, err := abi.DecodePciInfo(abi.EncodePciInfo(raw))
	if err != nil {
		panic(err)
	}
	return out
}

func TestPciInfoSubSystemIDAbsent(t *testing.T) {
	testlog.Start(t)
	raw := abi.PciInfo{PciSubSystemID: 0xDEAD}
	out, err := DecodePciInfo(raw, false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.PciSubSystemID.IsSome() {
		t.Fatalf("expected absent sub-system id, got %v", out.PciSubSystemID)
	}
	back, err := EncodePciInfo(out)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if back.PciSubSystemID != 0 {
		t.Fatalf("expected absent id to encode as 0, got %#x", back.PciSubSystemID)
	}
}

func TestPciInfoBusIDCapacityBoundary(t *testing.T) {
	testlog.Start(t)
	fits := PciInfo{BusID: strings.Repeat("a", abi.PciBusIDBufferSize-1)}
	raw, err := EncodePciInfo(fits)
	if err != nil {
		t.Fatalf("expected 31-byte bus id to fit, got %v", err)
	}
	if raw.BusID[abi.PciBusIDBufferSize-1] != 0 {
		t.Fatalf("expected terminator in last byte")
	}

	_, err = EncodePciInfo(PciInfo{BusID: strings.Repeat("a", abi.PciBusIDBufferSize)})
	var tooLarge codec.ValueTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected ValueTooLargeError, got %v", err)
	}
	if tooLarge.MaxLen != 32 || tooLarge.ActualLen != 33 {
		t.Fatalf("unexpected lengths: %+v", tooLarge)
	}
	var fe codec.FieldError
	if !errors.As(err, &fe) || fe.Field != "bus_id" {
		t.Fatalf("expected bus_id field error, got %v", err)
	}
}

func TestPciInfoInvalidBusID(t *testing.T) {
	testlog.Start(t)
	var raw abi.PciInfo
	copy(raw.BusID[:], []byte{'0', 0xFF, 'x'})
	_, err := DecodePciInfo(raw, true)
	if !errors.Is(err, codec.ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestPciInfoUnterminatedBusID(t *testing.T) {
	testlog.Start(t)
	var raw abi.PciInfo
	copy(raw.BusID[:], strings.Repeat("b", abi.PciBusIDBufferSize))
	out, err := DecodePciInfo(raw, true)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.BusID) != abi.PciBusIDBufferSize {
		t.Fatalf("expected whole buffer as text, got %d bytes", len(out.BusID))
	}
}

func hierarchy(types ...uint32) abi.BridgeChipHierarchy {
	var h abi.BridgeChipHierarchy
	h.BridgeCount = uint8(len(types))
	for i, ty := range types {
		h.BridgeChipInfo[i] = abi.BridgeChipInfo{Type: ty, FwVersion: uint32(i)}
	}
	return h
}

func TestBridgeChipHierarchyDecodesCountedChips(t *testing.T) {
	testlog.Start(t)
	raw := hierarchy(0, 1)
	raw.BridgeChipInfo[5] = abi.BridgeChipInfo{Type: 99}
	out, err := DecodeBridgeChipHierarchy(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ChipCount != 2 || len(out.Chips) != 2 {
		t.Fatalf("expected 2 chips, got %+v", out)
	}
	if out.Chips[0].FwVersion.IsSome() {
		t.Fatalf("expected fw version 0 to decode as absent")
	}
	if v, ok := out.Chips[1].FwVersion.Get(); !ok || v != 1 || out.Chips[1].ChipType != BridgeChipBRO4 {
		t.Fatalf("unexpected chip: %+v", out.Chips[1])
	}
}

func TestBridgeChipHierarchyFailFastOrdering(t *testing.T) {
	testlog.Start(t)
	raw := hierarchy(0, 1, 0, 7, 9)
	_, err := DecodeBridgeChipHierarchy(raw)
	var elem codec.ElementError
	if !errors.As(err, &elem) || elem.Index != 3 {
		t.Fatalf("expected element 3 failure, got %v", err)
	}
	var variant codec.UnexpectedVariantError
	if !errors.As(err, &variant) || variant.Tag != 7 {
		t.Fatalf("expected raw tag 7, got %v", err)
	}
}

func TestBridgeChipHierarchyCountBeyondCapacity(t *testing.T) {
	testlog.Start(t)
	var raw abi.BridgeChipHierarchy
	raw.BridgeCount = abi.MaxPhysicalBridges + 1
	_, err := DecodeBridgeChipHierarchy(raw)
	if !errors.Is(err, codec.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestBridgeChipHierarchyEmpty(t *testing.T) {
	testlog.Start(t)
	out, err := DecodeBridgeChipHierarchy(abi.BridgeChipHierarchy{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Chips == nil || len(out.Chips) != 0 {
		t.Fatalf("expected empty non-nil chips, got %#v", out.Chips)
	}
}

func TestClockOffsetEnums(t *testing.T) {
	testlog.Start(t)
	out, err := DecodeClockOffset(abi.ClockOffset{Type: 2, Pstate: 32, ClockOffsetMHz: -100})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ClockType != ClockMemory || out.State != PerformanceStateUnknown || out.ClockOffsetMHz != -100 {
		t.Fatalf("unexpected clock offset: %+v", out)
	}

	_, err = DecodeClockOffset(abi.ClockOffset{Type: 0, Pstate: 16})
	var fe codec.FieldError
	if !errors.As(err, &fe) || fe.Field != "state" || !errors.Is(err, codec.ErrUnexpectedVariant) {
		t.Fatalf("expected state variant error, got %v", err)
	}

	_, err = DecodeClockOffset(abi.ClockOffset{Type: 4, Pstate: 99})
	if !errors.As(err, &fe) || fe.Field != "clock_type" {
		t.Fatalf("expected clock_type checked first, got %v", err)
	}
}

func TestMemoryRevisionsAreDistinct(t *testing.T) {
	testlog.Start(t)
	v1 := DecodeMemoryInfo(abi.Memory{Total: 10, Free: 4, Used: 6})
	v2 := DecodeMemoryInfoV2(abi.MemoryV2{Version: 2, Total: 10, Reserved: 1, Free: 3, Used: 6})
	if v1.Total != 10 || v1.Used != 6 {
		t.Fatalf("unexpected v1: %+v", v1)
	}
	if v2.Version != 2 || v2.Reserved != 1 || v2.Free != 3 {
		t.Fatalf("unexpected v2: %+v", v2)
	}
}
