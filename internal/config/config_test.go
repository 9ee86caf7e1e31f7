package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/nvwire/internal/records"
	"github.com/danmuck/nvwire/internal/testutil/testlog"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestDefaultsAndPaths(t *testing.T) {
	testlog.Start(t)
	path := writeManifest(t, `
metrics_file = "out/nvwire.prom"

[[record]]
name = "pci"
kind = "pci_info"
path = "dumps/pci.bin"

[[record]]
name = "samples"
kind = "samples"
hex = "00 01"
value_type = 3
count = 2
sub_system_id = false
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	dir := filepath.Dir(path)
	if m.Output != OutputJSON || m.FailFast {
		t.Fatalf("unexpected defaults: %+v", m)
	}
	if m.MetricsFile != filepath.Join(dir, "out/nvwire.prom") {
		t.Fatalf("metrics path not resolved: %s", m.MetricsFile)
	}
	if len(m.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(m.Records))
	}
	pci := m.Records[0]
	if pci.Path != filepath.Join(dir, "dumps/pci.bin") || !pci.SubSystemID || pci.Count != nil {
		t.Fatalf("unexpected pci spec: %+v", pci)
	}
	s := m.Records[1]
	if s.SubSystemID || s.Count == nil || *s.Count != 2 {
		t.Fatalf("unexpected samples spec: %+v", s)
	}
	p := s.Params()
	if p.ValueType != records.ValueTypeUnsignedLongLong || p.Count.Or(-1) != 2 {
		t.Fatalf("unexpected params: %+v", p)
	}
	b, err := s.Bytes()
	if err != nil || len(b) != 2 || b[1] != 1 {
		t.Fatalf("unexpected hex bytes: %x %v", b, err)
	}
}

func TestLoadManifestRejects(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"unknown kind": `
[[record]]
name = "a"
kind = "gpu_magic"
hex = "00"
`,
		"missing source": `
[[record]]
name = "a"
kind = "vgpu_version"
`,
		"both sources": `
[[record]]
name = "a"
kind = "vgpu_version"
hex = "00"
path = "a.bin"
`,
		"duplicate name": `
[[record]]
name = "a"
kind = "vgpu_version"
hex = "00"

[[record]]
name = "a"
kind = "utilization"
hex = "00"
`,
		"negative count": `
[[record]]
name = "a"
kind = "samples"
hex = "00"
count = -1
`,
		"bad output":  `output = "xml"`,
		"unknown key": `colour = "blue"`,
	}
	for name, body := range cases {
		if _, err := LoadManifest(writeManifest(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestTemplateLoads(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "manifest.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("template should load: %v", err)
	}
	if len(m.Records) != 3 {
		t.Fatalf("expected 3 template records, got %d", len(m.Records))
	}
}
