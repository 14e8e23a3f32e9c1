package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shatter/pkg/effect/shatter"
	"github.com/matzehuels/shatter/pkg/export"
	"github.com/matzehuels/shatter/pkg/pipeline"
	"github.com/matzehuels/shatter/pkg/preview"
	"github.com/matzehuels/shatter/pkg/source"
)

// previewCommand creates the preview command, which plays the animation in
// the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var effect effectFlags
	var format string

	cmd := &cobra.Command{
		Use:   "preview [image]",
		Short: "Play a shatter animation in the terminal",
		Long: `Preview plays the shatter effect over an image in the terminal.

Keys:
  space      play / pause
  ←/→        step one frame (pauses)
  home/end   first / last frame
  r          reshuffle with a new seed
  e          export exactly what is on screen
  q          quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.config.Options()
			effect.apply(cmd, &opts)
			if cmd.Flags().Changed("format") {
				opts.Format = export.Format(format)
			}
			return c.runPreview(cmd.Context(), args[0], opts)
		},
	}

	effect.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(pipeline.DefaultFormat), "format written by the e key: apng, gif")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options) error {
	// Options keep their discard logger: log lines would tear the TUI.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}
	img, err := source.Decode(data)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("decoded source", "format", img.Format, "bounds", img.Bounds())

	build := func(seed uint64) (*shatterPlayer, error) {
		o := opts.Shatter
		o.Seed = seed
		return preview.New[shatter.Options, *shatter.Context](shatter.New(), img.RGBA, o, opts.Animation, opts.Resample)
	}

	seed := opts.Shatter.Seed
	if seed == 0 {
		seed = shatter.NewSeed()
	}
	player, err := build(seed)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	exportSeed := func(seed uint64) (string, *pipeline.Result, error) {
		o := opts
		o.Shatter.Seed = seed
		res, err := runner.Export(ctx, data, o, nil)
		if err != nil {
			return "", nil, err
		}
		if err := writeOutput(res.Filename, res.Data); err != nil {
			return "", nil, err
		}
		return res.Filename, res, nil
	}

	model := NewPreviewModel(player, opts.Animation.FPS, build, exportSeed)
	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	if m, ok := final.(PreviewModel); ok {
		for _, path := range m.Saved {
			printSuccess("Exported animation")
			printFile(path)
		}
		printNextStep("Export this animation", fmt.Sprintf("%s export %s --seed %d", appName, input, m.Seed()))
	}
	return nil
}
