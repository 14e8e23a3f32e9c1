package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shatter/pkg/errors"
	"github.com/matzehuels/shatter/pkg/pipeline"
	"github.com/matzehuels/shatter/pkg/source"
)

// exportCommand creates the export command, which renders an image to an
// animated PNG or GIF.
func (c *CLI) exportCommand() *cobra.Command {
	var effect effectFlags
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "export [image]",
		Short: "Export an image as a shatter animation",
		Long: `Export renders the shatter effect over an image and writes it as an
animated PNG (lossless, partial transparency kept) or a GIF (256 colors,
binary transparency).

Use "-" to read the image from stdin. Runs with an explicit --seed are
cached; rerunning them is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.config.Options()
			effect.apply(cmd, &opts)
			out.apply(cmd, &opts)
			return c.runExport(cmd.Context(), args[0], out.output, opts)
		},
	}

	effect.register(cmd)
	out.register(cmd)
	return cmd
}

func (c *CLI) runExport(ctx context.Context, input, output string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	label := strings.ToUpper(string(opts.Format))
	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %s...", label))
	spinner.Start()

	result, err := runner.Export(ctx, data, opts, spinner.SetProgress)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Encoded %d frames", result.Stats.Frames))

	path := output
	if path == "" {
		path = result.Filename
	}
	if err := writeOutput(path, result.Data); err != nil {
		return err
	}
	if path == "-" {
		return nil
	}

	printSuccess("Exported %s animation", label)
	printFile(path)
	fmt.Println(exportStats(result.Stats.Frames, opts.Animation.OutputSize, len(result.Data), result.CacheHit))
	if opts.Shatter.Seed == 0 {
		printNextStep("Reproduce with", fmt.Sprintf("%s export %s --seed %d", appName, input, result.Seed))
	}
	return nil
}

// readInput reads an image file, or stdin for "-". At most one byte more
// than source.MaxUploadBytes is read so oversized input is still rejected.
func readInput(path string) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(io.LimitReader(r, source.MaxUploadBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// writeOutput writes an artifact, or stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := errors.ValidateFilename(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
