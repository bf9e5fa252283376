package main

import (
	"github.com/phanxgames/glitch"
	"github.com/spf13/cobra"
)

type runOptions struct {
	width, height int
	showFPS       bool
}

func newRunCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:       "run [effect]",
		Short:     "Open a window running an effect",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: familyArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, effectOpts, err := rootFlags.effect(args)
			if err != nil {
				return err
			}
			log, err := rootFlags.logger(cmd)
			if err != nil {
				return err
			}
			return glitch.Run(glitch.RunConfig{
				Width:   opts.width,
				Height:  opts.height,
				Effect:  family,
				Options: effectOpts,
				ShowFPS: opts.showFPS,
				Logger:  &log,
				Debug:   rootFlags.verbose,
			})
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 800, "Window width")
	cmd.Flags().IntVar(&opts.height, "height", 600, "Window height")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "Show the FPS overlay")

	return cmd
}
