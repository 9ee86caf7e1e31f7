// Package inspect decodes a manifest's batch of captured records.
package inspect

import (
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/nvwire/internal/codec"
	"github.com/danmuck/nvwire/internal/config"
	"github.com/danmuck/nvwire/internal/observability"
	"github.com/danmuck/nvwire/internal/records"
	"github.com/danmuck/nvwire/internal/render"
)

// Result is the outcome of one manifest record. Exactly one of Value and Err
// is set.
type Result struct {
	Name  string
	Kind  string
	Value any
	Err   error
}

type resultView struct {
	Name  string            `json:"name" yaml:"name"`
	Kind  string            `json:"kind" yaml:"kind"`
	Value any               `json:"value,omitempty" yaml:"value,omitempty"`
	Error *render.ErrorView `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r Result) view() resultView {
	return resultView{Name: r.Name, Kind: r.Kind, Value: r.Value, Error: render.Error(r.Err)}
}

func (r Result) MarshalJSON() ([]byte, error) { return json.Marshal(r.view()) }

func (r Result) MarshalYAML() (any, error) { return r.view(), nil }

// Report lists results in manifest order.
type Report struct {
	Results []Result `json:"records" yaml:"records"`
	Failed  int      `json:"failed" yaml:"failed"`
}

// ErrBatchFailed is returned when a fail-fast batch stops on a record.
var ErrBatchFailed = errors.New("inspect: batch stopped on record failure")

// Run decodes every record of m. Record failures are kept in the report and
// the batch continues, unless m.FailFast is set, in which case Run stops at
// the first failure and returns the partial report with an error wrapping
// ErrBatchFailed and the record's error.
func Run(m config.Manifest) (Report, error) {
	report := Report{Results: make([]Result, 0, len(m.Records))}
	var runErr error
	for _, spec := range m.Records {
		res := decodeOne(spec)
		report.Results = append(report.Results, res)
		if res.Err == nil {
			continue
		}
		report.Failed++
		log.Warn().
			Str("record", res.Name).
			Str("kind", res.Kind).
			Str("error_kind", codec.KindOf(res.Err).String()).
			Err(res.Err).
			Msg("inspect record failed")
		if m.FailFast {
			runErr = fmt.Errorf("%w (%s): %w", ErrBatchFailed, res.Name, res.Err)
			break
		}
	}
	log.Info().
		Int("records", len(report.Results)).
		Int("failed", report.Failed).
		Msg("inspect batch complete")

	if m.MetricsFile != "" {
		if err := observability.WriteTextfile(m.MetricsFile); err != nil {
			return report, errors.Join(runErr, fmt.Errorf("metrics write failed (%s): %w", m.MetricsFile, err))
		}
	}
	return report, runErr
}

func decodeOne(spec config.RecordSpec) Result {
	res := Result{Name: spec.Name, Kind: spec.Kind}
	entry, ok := records.Lookup(spec.Kind)
	if !ok {
		res.Err = codec.InvalidValueError{Reason: "unknown kind " + spec.Kind}
		return res
	}
	raw, err := spec.Bytes()
	if err != nil {
		res.Err = err
		return res
	}
	v, err := Decode(entry, raw, spec.Params())
	if err != nil {
		res.Err = err
		return res
	}
	res.Value = v
	return res
}

// Decode runs one catalog decode and records its metrics.
func Decode(entry records.Entry, raw []byte, p records.Params) (any, error) {
	start := time.Now()
	v, err := entry.Decode(raw, p)
	elapsed := time.Since(start)
	if err != nil {
		observability.RecordDecode(entry.Kind, elapsed, false, codec.KindOf(err).String())
		return nil, err
	}
	observability.RecordDecode(entry.Kind, elapsed, true, "")
	countUnavailable(v)
	return v, nil
}

func countUnavailable(v any) {
	samples, ok := v.([]records.FieldValueSample)
	if !ok {
		return
	}
	for _, s := range samples {
		var fu codec.FieldUnavailableError
		if errors.As(s.Value.Err(), &fu) {
			observability.RecordFieldUnavailable(fu.Code.String())
		}
	}
}
