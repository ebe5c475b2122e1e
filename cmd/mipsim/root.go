package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/mipsim/timing/latency"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mipsim",
		Short: "MIPS functional simulator with pipeline hazard estimates",
		Long: `Mipsim executes MIPS program images instruction by instruction and
estimates how many cycles a 5-stage pipeline with forwarding would need,
counting data-hazard bubbles and control-transfer flushes.
`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(opts.verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "timing configuration JSON file")

	cmd.AddCommand(
		newRunCmd(opts),
		newBenchCmd(opts),
		newDisasmCmd(),
		newConfigCmd(opts),
	)

	return cmd
}

func configureLogging(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// timingConfig returns the validated timing configuration selected by
// --config, or the defaults.
func (o *rootOptions) timingConfig() (*latency.TimingConfig, error) {
	config := latency.DefaultTimingConfig()
	if o.configPath != "" {
		var err error
		config, err = latency.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		logrus.WithField("path", o.configPath).Debug("loaded timing config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
