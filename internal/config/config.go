package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/nvwire/internal/records"
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Manifest describes one batch of captured records to decode.
type Manifest struct {
	Output      string
	FailFast    bool
	MetricsFile string
	Records     []RecordSpec
}

// RecordSpec names one captured block and how to read it. Exactly one of
// Path and Hex is set.
type RecordSpec struct {
	Name        string
	Kind        string
	Path        string
	Hex         string
	SubSystemID bool
	ValueType   uint32
	// Count is nil when the manifest leaves it unset.
	Count *int
}

type fileManifest struct {
	Output      string       `toml:"output"`
	FailFast    bool         `toml:"fail_fast"`
	MetricsFile string       `toml:"metrics_file"`
	Records     []fileRecord `toml:"record"`
}

type fileRecord struct {
	Name        string `toml:"name"`
	Kind        string `toml:"kind"`
	Path        string `toml:"path"`
	Hex         string `toml:"hex"`
	SubSystemID *bool  `toml:"sub_system_id"`
	ValueType   uint32 `toml:"value_type"`
	Count       *int   `toml:"count"`
}

func DefaultManifest() Manifest {
	return Manifest{Output: OutputJSON}
}

// LoadManifest reads a TOML manifest, applies defaults and resolves record
// and metrics paths relative to the manifest's directory.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()

	var raw fileManifest
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Manifest{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Manifest{}, fmt.Errorf("config parse failed (%s): unknown key %s", path, undecoded[0])
	}
	base := filepath.Dir(path)

	if meta.IsDefined("output") {
		m.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("fail_fast") {
		m.FailFast = raw.FailFast
	}
	if meta.IsDefined("metrics_file") {
		m.MetricsFile = resolve(base, strings.TrimSpace(raw.MetricsFile))
	}

	m.Records = make([]RecordSpec, 0, len(raw.Records))
	for _, r := range raw.Records {
		spec := RecordSpec{
			Name:      strings.TrimSpace(r.Name),
			Kind:      strings.TrimSpace(r.Kind),
			Path:      resolve(base, strings.TrimSpace(r.Path)),
			Hex:       strings.TrimSpace(r.Hex),
			ValueType: r.ValueType,
			Count:     r.Count,
		}
		if r.SubSystemID != nil {
			spec.SubSystemID = *r.SubSystemID
		} else {
			spec.SubSystemID = true
		}
		m.Records = append(m.Records, spec)
	}

	if err := ValidateManifest(m); err != nil {
		return Manifest{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return m, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func ValidateManifest(m Manifest) error {
	switch m.Output {
	case OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q", m.Output)
	}
	seen := make(map[string]struct{}, len(m.Records))
	for i, r := range m.Records {
		if err := ValidateRecord(r); err != nil {
			return fmt.Errorf("record[%d] invalid: %w", i, err)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("record[%d] invalid: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	return nil
}

func ValidateRecord(r RecordSpec) error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, ok := records.Lookup(r.Kind); !ok {
		return fmt.Errorf("unknown kind %q", r.Kind)
	}
	if (r.Path == "") == (r.Hex == "") {
		return fmt.Errorf("exactly one of path or hex is required")
	}
	if r.Count != nil && *r.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", *r.Count)
	}
	return nil
}

// Bytes loads the record's raw block from its file or inline hex. Inline hex
// may contain whitespace.
func (r RecordSpec) Bytes() ([]byte, error) {
	if r.Path != "" {
		b, err := os.ReadFile(r.Path)
		if err != nil {
			return nil, fmt.Errorf("record load failed (%s): %w", r.Name, err)
		}
		return b, nil
	}
	b, err := DecodeHex(r.Hex)
	if err != nil {
		return nil, fmt.Errorf("record load failed (%s): %w", r.Name, err)
	}
	return b, nil
}

// DecodeHex parses hex text, ignoring whitespace.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.Join(strings.Fields(s), ""))
}
