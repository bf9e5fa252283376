package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	tui "github.com/phanxgames/glitch/term"
)

var errNotTerminal = errors.New("stdout is not a terminal")

type previewOptions struct {
	cellSize int
}

func newPreviewCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:       "preview [effect]",
		Short:     "Preview an effect in the terminal",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: familyArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, effectOpts, err := rootFlags.effect(args)
			if err != nil {
				return err
			}
			if !isTerminal(os.Stdout) {
				return fmt.Errorf("preview: %w; use 'glitch render' instead", errNotTerminal)
			}
			log, err := rootFlags.logger(cmd)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("preview: open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("preview: init terminal: %w", err)
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return tui.Run(ctx, screen, tui.Config{
				Effect:   family,
				Options:  effectOpts,
				CellSize: opts.cellSize,
				Logger:   &log,
				Debug:    rootFlags.verbose,
			})
		},
	}

	cmd.Flags().IntVar(&opts.cellSize, "cell", 4, "Logical pixels per terminal pixel")

	return cmd
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
