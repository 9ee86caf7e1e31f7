package main

import (
	"bytes"
	"encoding/hex"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/nvwire/internal/abi"
	"github.com/danmuck/nvwire/internal/records"
	"github.com/danmuck/nvwire/internal/testutil/testlog"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestKindsCommand(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "KIND")
	assert.Regexp(t, `pci_info\s+68\s+false\s+true`, out)
	assert.Regexp(t, `vgpu_scheduler_log\s+9624\s+false\s+false`, out)
}

func TestDecodeCommand(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "decode", "--kind", "vgpu_version", "--hex", "01000000 09000000")
	require.NoError(t, err)
	assert.JSONEq(t, `{"min":1,"max":9}`, out)

	out, err = run(t, "decode", "--kind", "vgpu_version", "--hex", "0100000009000000", "--format", "yaml")
	require.NoError(t, err)
	assert.YAMLEq(t, "min: 1\nmax: 9\n", out)
}

func TestDecodeCommandCountAndValueType(t *testing.T) {
	testlog.Start(t)
	block := abi.EncodeList([]abi.Sample{{TimeStamp: 1}, {TimeStamp: 2}, {TimeStamp: 3}}, abi.SampleSize, abi.EncodeSample)
	path := filepath.Join(t.TempDir(), "samples.bin")
	require.NoError(t, os.WriteFile(path, block, 0o600))

	out, err := run(t, "decode", "--kind", "samples", "--file", path, "--value-type", "1", "--count", "2")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"timestamp":1,"value":{"type":"unsigned_int","value":0}},
		{"timestamp":2,"value":{"type":"unsigned_int","value":0}}
	]`, out)
}

func TestDecodeCommandNonFiniteDouble(t *testing.T) {
	testlog.Start(t)
	_, nan := records.EncodeSampleValue(records.Float64Value(math.NaN()))
	_, inf := records.EncodeSampleValue(records.Float64Value(math.Inf(-1)))
	block := abi.EncodeList([]abi.Sample{{TimeStamp: 1, SampleValue: nan}, {TimeStamp: 2, SampleValue: inf}}, abi.SampleSize, abi.EncodeSample)

	out, err := run(t, "decode", "--kind", "samples", "--hex", hex.EncodeToString(block), "--value-type", "0")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"timestamp":1,"value":{"type":"double","value":"NaN"}},
		{"timestamp":2,"value":{"type":"double","value":"-Inf"}}
	]`, out)
}

func TestDecodeCommandErrors(t *testing.T) {
	testlog.Start(t)
	_, err := run(t, "decode", "--kind", "nope", "--hex", "00")
	assert.ErrorContains(t, err, "unknown kind")

	_, err = run(t, "decode", "--kind", "vgpu_version")
	assert.Error(t, err)

	_, err = run(t, "decode", "--kind", "vgpu_version", "--hex", "0100")
	assert.ErrorContains(t, err, "decode failed (vgpu_version)")

	clock := hex.EncodeToString(abi.EncodeClockOffset(abi.ClockOffset{Type: 9}))
	_, err = run(t, "decode", "--kind", "clock_offset", "--hex", clock)
	assert.ErrorContains(t, err, "unexpected variant")
}

func TestReencodeCommand(t *testing.T) {
	testlog.Start(t)
	raw := hex.EncodeToString(abi.EncodeProcessInfo(abi.ProcessInfo{
		Pid:               7,
		UsedGpuMemory:     0xFFFFFFFFFFFFFFFF,
		GpuInstanceID:     0xFFFFFFFF,
		ComputeInstanceID: 2,
	}))
	out, err := run(t, "reencode", "--kind", "process_info", "--hex", raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"process_info","input":"`+raw+`","output":"`+raw+`","identical":true}`, out)

	_, err = run(t, "reencode", "--kind", "utilization", "--hex", "0000000000000000")
	assert.ErrorContains(t, err, "decode-only")
}

func TestInspectCommand(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	manifest := filepath.Join(dir, "batch.toml")
	require.NoError(t, os.WriteFile(manifest, []byte(`output = "yaml"

[[record]]
name = "version"
kind = "vgpu_version"
hex = "01000000 09000000"
`), 0o600))

	out, err := run(t, "inspect", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "name: version")
	assert.Contains(t, out, "failed: 0")

	out, err = run(t, "inspect", manifest, "--format", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"), out)
}

func TestInspectCommandReportsFailures(t *testing.T) {
	testlog.Start(t)
	manifest := filepath.Join(t.TempDir(), "batch.toml")
	require.NoError(t, os.WriteFile(manifest, []byte(`[[record]]
name = "short"
kind = "vgpu_version"
hex = "01"
`), 0o600))

	out, err := run(t, "inspect", manifest)
	assert.ErrorContains(t, err, "1 of 1 records")
	assert.Contains(t, out, `"kind": "invalid_value"`)
}

func TestTemplateCommand(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "template")
	require.NoError(t, err)
	assert.Contains(t, out, "[[record]]")

	path := filepath.Join(t.TempDir(), "nvwire.toml")
	_, err = run(t, "template", path)
	require.NoError(t, err)
	_, err = run(t, "template", path)
	assert.ErrorContains(t, err, "already exists")
	_, err = run(t, "template", path, "--force")
	assert.NoError(t, err)
}
