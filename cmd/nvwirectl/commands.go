package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/danmuck/nvwire/internal/config"
	"github.com/danmuck/nvwire/internal/inspect"
	"github.com/danmuck/nvwire/internal/records"
	"github.com/danmuck/nvwire/internal/render"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List decodable record kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tSIZE\tLIST\tREENCODE")
			for _, k := range records.Kinds() {
				e, _ := records.Lookup(k)
				fmt.Fprintf(w, "%s\t%d\t%t\t%t\n", e.Kind, e.Size, e.List, e.Reencodable())
			}
			return w.Flush()
		},
	}
}

func newDecodeCmd() *cobra.Command {
	var (
		in     recordInput
		format string
	)
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode one raw record block",
		Long: `Decode one raw record block and print the validated value.

Example:
  nvwirectl decode --kind vgpu_version --hex "01000000 09000000"
  nvwirectl decode --kind samples --file power.bin --value-type 1 --count 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			entry, raw, spec, err := in.load()
			if err != nil {
				return err
			}
			v, err := inspect.Decode(entry, raw, spec.Params())
			if err != nil {
				return fmt.Errorf("decode failed (%s): %w", entry.Kind, err)
			}
			return render.Write(cmd.OutOrStdout(), f, v)
		},
	}
	in.bind(cmd)
	cmd.Flags().StringVar(&format, "format", render.FormatJSON, "output format (json|yaml)")
	return cmd
}

type reencodeResult struct {
	Kind      string `json:"kind" yaml:"kind"`
	Input     string `json:"input" yaml:"input"`
	Output    string `json:"output" yaml:"output"`
	Identical bool   `json:"identical" yaml:"identical"`
}

func newReencodeCmd() *cobra.Command {
	var (
		in     recordInput
		format string
	)
	cmd := &cobra.Command{
		Use:   "reencode",
		Short: "Decode a record and write it back to its raw layout",
		Long: `Decode a record, encode the value back and report whether the bytes
round-trip. Only kinds marked REENCODE by the kinds command are supported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			entry, raw, spec, err := in.load()
			if err != nil {
				return err
			}
			if !entry.Reencodable() {
				return fmt.Errorf("reencode failed (%s): kind is decode-only", entry.Kind)
			}
			v, err := inspect.Decode(entry, raw, spec.Params())
			if err != nil {
				return fmt.Errorf("decode failed (%s): %w", entry.Kind, err)
			}
			out, err := entry.Encode(v)
			if err != nil {
				return fmt.Errorf("encode failed (%s): %w", entry.Kind, err)
			}
			return render.Write(cmd.OutOrStdout(), f, reencodeResult{
				Kind:      entry.Kind,
				Input:     hex.EncodeToString(raw),
				Output:    hex.EncodeToString(out),
				Identical: bytes.Equal(raw, out),
			})
		},
	}
	in.bind(cmd)
	cmd.Flags().StringVar(&format, "format", render.FormatJSON, "output format (json|yaml)")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect MANIFEST",
		Short: "Decode every record listed in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.LoadManifest(args[0])
			if err != nil {
				return err
			}
			if format != "" {
				if m.Output, err = render.ParseFormat(format); err != nil {
					return err
				}
			}
			report, runErr := inspect.Run(m)
			if err := render.Write(cmd.OutOrStdout(), m.Output, report); err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}
			if report.Failed > 0 {
				return fmt.Errorf("inspect failed: %d of %d records did not decode", report.Failed, len(report.Results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "override the manifest output format (json|yaml)")
	return cmd
}
