package config

import (
	"fmt"
	"os"
)

func Template() string {
	return manifestTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(manifestTemplate), 0o600)
}

const manifestTemplate = `output = "json"
fail_fast = false
metrics_file = ""

[[record]]
name = "gpu0-version"
kind = "vgpu_version"
hex = "01000000 09000000"

[[record]]
name = "gpu0-pci"
kind = "pci_info"
path = "dumps/gpu0-pci.bin"
sub_system_id = true

[[record]]
name = "gpu0-power-samples"
kind = "samples"
path = "dumps/gpu0-power.bin"
value_type = 1
count = 4
`
