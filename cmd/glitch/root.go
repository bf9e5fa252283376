package main

import (
	"fmt"
	"strings"

	"github.com/phanxgames/glitch"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	logLevel   string
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "glitch",
		Short:         "Glitch runs generative background effects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML effect configuration file")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newBenchCmd(flags))
	cmd.AddCommand(newEffectsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// logger builds the command logger. --verbose forces debug level.
func (f *rootFlags) logger(cmd *cobra.Command) (zerolog.Logger, error) {
	level := f.logLevel
	if f.verbose {
		level = "debug"
	}
	log, err := glitch.NewLogger(glitch.LoggerOptions{
		Level:         level,
		HumanReadable: true,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return log, fmt.Errorf("invalid --log-level %q: %w", f.logLevel, err)
	}
	return log, nil
}

// effect resolves the family and options from the positional argument and
// the --config file. The argument wins over the file's effect key.
func (f *rootFlags) effect(args []string) (glitch.Family, glitch.Options, error) {
	var (
		family glitch.Family
		opts   glitch.Options
	)
	if strings.TrimSpace(f.configPath) != "" {
		cfg, err := glitch.LoadConfig(f.configPath)
		if err != nil {
			return "", opts, err
		}
		family, opts = cfg.Effect, cfg.Options
	}
	if len(args) > 0 {
		parsed, err := glitch.ParseFamily(args[0])
		if err != nil {
			return "", opts, fmt.Errorf("%w (run 'glitch effects' for the list)", err)
		}
		family = parsed
	}
	if family == "" {
		family = glitch.FamilyParticles
	}
	return family, opts, nil
}

func familyArgs() []string {
	names := make([]string, len(glitch.Families))
	for i, f := range glitch.Families {
		names[i] = string(f)
	}
	return names
}
