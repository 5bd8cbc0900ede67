package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/marquee/internal/presentation/tui"
	"github.com/aretw0/marquee/pkg/adapters/terminal"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/runner"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Show how a text would be chunked",
	Long: `Reads text from a file (or stdin) and prints the chunks it would be shown as,
using the stored layout overridden by any layout flags. Nothing is saved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer f.Close()
			in = f
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		text, err := runner.SanitizeInput(string(data))
		if err != nil {
			return err
		}

		width, _ := cmd.Flags().GetString("width")
		lines, _ := cmd.Flags().GetString("lines")
		indent, _ := cmd.Flags().GetString("indent")
		pretty, _ := cmd.Flags().GetBool("pretty")

		engine := a.engine(ctx)
		defer engine.Close()

		sub := domain.Submission{Width: width, Lines: lines, Indent: indent}
		layout := sub.Apply(engine.Layout()).Normalize()
		chunks := engine.Preview(text, layout)

		out := cmd.OutOrStdout()
		if !pretty && !terminal.IsTerminal(out) {
			_, err := io.WriteString(out, tui.ChunksPlain(chunks))
			return err
		}

		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		rendered, err := render(tui.ChunksMarkdown(chunks, layout))
		if err != nil {
			return fmt.Errorf("failed to render preview: %w", err)
		}
		_, err = io.WriteString(out, rendered)
		return err
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().String("width", "", "Characters per line (5-32)")
	previewCmd.Flags().String("lines", "", "Lines per chunk (1-5)")
	previewCmd.Flags().String("indent", "", "Spaces prepended to every line")
	previewCmd.Flags().Bool("pretty", false, "Render as styled markdown even when not on a terminal")
}
