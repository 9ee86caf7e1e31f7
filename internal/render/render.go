// Package render writes decoded records in the supported output formats.
package render

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/danmuck/nvwire/internal/codec"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(raw string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(raw)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("render: unknown format %q", raw)
	}
}

// Write renders v to w. JSON is indented and newline-terminated.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("render json failed: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("render yaml failed: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("render: unknown format %q", format)
	}
}

// ErrorView is the rendered form of a decode failure.
type ErrorView struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// Error renders err with its taxonomy kind. A nil err renders as nil.
func Error(err error) *ErrorView {
	if err == nil {
		return nil
	}
	return &ErrorView{Kind: codec.KindOf(err).String(), Message: err.Error()}
}
