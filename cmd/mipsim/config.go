package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or save the timing configuration",
		Long: `Config validates the timing configuration selected by --config (or the
defaults) and prints it as JSON, or writes it to --out.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := root.timingConfig()
			if err != nil {
				return err
			}

			if outPath != "" {
				return config.SaveConfig(outPath)
			}

			data, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to serialize timing config: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write the configuration to this file")

	return cmd
}
