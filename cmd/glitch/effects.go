package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phanxgames/glitch"
	"github.com/spf13/cobra"
)

var effectDescriptions = map[glitch.Family]string{
	glitch.FamilyParticles: "drifting dots linked by proximity lines, pushed by the pointer",
	glitch.FamilySnow:      "flakes falling with a gentle sway",
	glitch.FamilyFireflies: "wandering glows that pulse in and out",
	glitch.FamilyBubbles:   "rings rising and wobbling",
	glitch.FamilyStarfield: "stars flying toward the viewer",
	glitch.FamilyPlasma:    "animated sine plasma over a colour ramp",
	glitch.FamilyFog:       "slow Perlin noise fog",
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle   = lipgloss.NewStyle().Bold(true).Width(11)
	countStyle  = lipgloss.NewStyle().Width(7).Align(lipgloss.Right).PaddingRight(2)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newEffectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "effects",
		Short: "List the available effects and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), renderEffects())
			return nil
		},
	}
}

func renderEffects() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(nameStyle.Render("EFFECT") + countStyle.Render("COUNT") + "DESCRIPTION"))
	b.WriteByte('\n')
	for _, f := range glitch.Families {
		def := glitch.DefaultOptions(f)
		count := fmt.Sprint(def.Count)
		colors := def.Color
		if len(def.Colors) > 0 {
			count = "-"
			colors = strings.Join(def.Colors, " ")
		}
		b.WriteString(nameStyle.Render(string(f)))
		b.WriteString(countStyle.Render(count))
		b.WriteString(effectDescriptions[f])
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(colors))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
