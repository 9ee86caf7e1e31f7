package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danmuck/nvwire/internal/config"
	"github.com/danmuck/nvwire/internal/logging"
	"github.com/danmuck/nvwire/internal/records"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nvwirectl",
		Short: "Decode and check raw GPU telemetry records",
		Long: `nvwirectl converts fixed-layout telemetry records captured from the
GPU management library into validated values, and writes re-encodable
records back to their raw layout.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			if level == "" {
				return nil
			}
			return logging.SetLevel(level)
		},
	}
	root.PersistentFlags().String("log-level", "", "log level (trace|debug|info|warn|error|off)")

	root.AddCommand(
		newKindsCmd(),
		newDecodeCmd(),
		newReencodeCmd(),
		newInspectCmd(),
		newTemplateCmd(),
	)
	return root
}

// recordInput holds the flags shared by commands that read one record.
type recordInput struct {
	kind        string
	file        string
	hex         string
	count       int
	valueType   uint32
	subSystemID bool
}

func (in *recordInput) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&in.kind, "kind", "", "record kind, as listed by the kinds command")
	f.StringVar(&in.file, "file", "", "path to the raw record block")
	f.StringVar(&in.hex, "hex", "", "raw record block as hex")
	f.IntVar(&in.count, "count", -1, "elements to decode from a list kind (-1 for all)")
	f.Uint32Var(&in.valueType, "value-type", 0, "sample value type for the samples kind")
	f.BoolVar(&in.subSystemID, "sub-system-id", true, "pci_info carries a sub-system id")
	_ = cmd.MarkFlagRequired("kind")
	cmd.MarkFlagsMutuallyExclusive("file", "hex")
	cmd.MarkFlagsOneRequired("file", "hex")
}

// spec converts the flags into a manifest record so the CLI and batch paths
// load and validate input the same way.
func (in *recordInput) spec() (config.RecordSpec, error) {
	s := config.RecordSpec{
		Name:        "cli",
		Kind:        in.kind,
		Path:        in.file,
		Hex:         in.hex,
		SubSystemID: in.subSystemID,
		ValueType:   in.valueType,
	}
	if in.count >= 0 {
		n := in.count
		s.Count = &n
	}
	if err := config.ValidateRecord(s); err != nil {
		return config.RecordSpec{}, err
	}
	return s, nil
}

func (in *recordInput) load() (records.Entry, []byte, config.RecordSpec, error) {
	s, err := in.spec()
	if err != nil {
		return records.Entry{}, nil, config.RecordSpec{}, err
	}
	entry, _ := records.Lookup(s.Kind)
	raw, err := s.Bytes()
	if err != nil {
		return records.Entry{}, nil, config.RecordSpec{}, err
	}
	return entry, raw, s, nil
}

func newTemplateCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "template [PATH]",
		Short: "Print or write a starter inspect manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.Template())
				return err
			}
			if err := config.WriteTemplate(args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
