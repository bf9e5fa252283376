package main

import (
	"fmt"
	"time"

	"github.com/phanxgames/glitch"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type benchOptions struct {
	frames     int
	count      int
	width      int
	height     int
	profile    string
	profileDir string
}

func newBenchCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &benchOptions{}

	cmd := &cobra.Command{
		Use:       "bench [effect]",
		Short:     "Measure per-frame cost of an effect",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: familyArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.frames, "frames", "n", 600, "Frames to simulate")
	cmd.Flags().IntVar(&opts.count, "count", 0, "Override the entity count")
	cmd.Flags().IntVar(&opts.width, "width", 1280, "Surface width")
	cmd.Flags().IntVar(&opts.height, "height", 720, "Surface height")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Write a profile: cpu or mem")
	cmd.Flags().StringVar(&opts.profileDir, "profile-dir", ".", "Directory for profile output")

	return cmd
}

func runBench(cmd *cobra.Command, rootFlags *rootFlags, opts *benchOptions, args []string) error {
	if opts.frames <= 0 {
		return fmt.Errorf("bench: --frames must be positive")
	}
	family, effectOpts, err := rootFlags.effect(args)
	if err != nil {
		return err
	}
	if opts.count > 0 {
		effectOpts.Count = opts.count
	}
	log, err := rootFlags.logger(cmd)
	if err != nil {
		return err
	}

	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.profileDir), profile.Quiet, profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(opts.profileDir), profile.Quiet, profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("bench: unknown --profile %q (want cpu or mem)", opts.profile)
	}

	h := glitch.NewHeadless(glitch.HeadlessConfig{
		Effect:  family,
		Options: effectOpts,
		Width:   opts.width,
		Height:  opts.height,
		Scale:   1,
		Logger:  &log,
	})
	defer h.Close()

	start := time.Now()
	if err := h.Run(opts.frames); err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	elapsed := time.Since(start)

	st := h.Handle().Engine().State()
	perFrame := elapsed / time.Duration(opts.frames)
	fmt.Fprintf(cmd.OutOrStdout(), "effect:   %s\nframes:   %d\nentities: %d\nlinks:    %d\nper frame: %v (%.0f%% of a 60Hz frame)\n",
		family, opts.frames, st.Store.Len(), len(st.Links), perFrame,
		100*perFrame.Seconds()/glitch.NominalDT)
	return nil
}
