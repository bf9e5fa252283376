package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/glitch"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	frames     int
	out        string
	scriptPath string
	width      int
	height     int
	scale      float64
}

func newRenderCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:       "render [effect]",
		Short:     "Render an effect headlessly to a PNG",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: familyArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.frames, "frames", "n", 120, "Frames to simulate before the final snapshot")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "glitch.png", "Output PNG path")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "JSON script of pointer, resize and snapshot steps")
	cmd.Flags().IntVar(&opts.width, "width", 640, "Surface width")
	cmd.Flags().IntVar(&opts.height, "height", 360, "Surface height")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "Device pixel ratio")

	return cmd
}

func runRender(cmd *cobra.Command, rootFlags *rootFlags, opts *renderOptions, args []string) error {
	if strings.TrimSpace(opts.out) == "" {
		return fmt.Errorf("render: --out is required")
	}
	if opts.frames < 0 {
		return fmt.Errorf("render: --frames must not be negative")
	}
	family, effectOpts, err := rootFlags.effect(args)
	if err != nil {
		return err
	}
	log, err := rootFlags.logger(cmd)
	if err != nil {
		return err
	}

	var script *glitch.Script
	if opts.scriptPath != "" {
		data, err := os.ReadFile(opts.scriptPath)
		if err != nil {
			return fmt.Errorf("render: read script: %w", err)
		}
		script, err = glitch.LoadScript(data)
		if err != nil {
			return err
		}
	}

	h := glitch.NewHeadless(glitch.HeadlessConfig{
		Effect:      family,
		Options:     effectOpts,
		Width:       opts.width,
		Height:      opts.height,
		Scale:       opts.scale,
		SnapshotDir: filepath.Dir(opts.out),
		Logger:      &log,
		Debug:       rootFlags.verbose,
	})
	defer h.Close()

	if script != nil {
		// A script is allowed a generous frame budget on top of --frames.
		if err := h.RunScript(script, opts.frames+100_000); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	} else if err := h.Run(opts.frames); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := glitch.SavePNG(opts.out, h.Surface); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	for _, p := range h.Written() {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	fmt.Fprintln(cmd.OutOrStdout(), opts.out)
	return nil
}
