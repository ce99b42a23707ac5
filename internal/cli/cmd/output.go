package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnema/dockpane/internal/cli"
)

const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

// viewFlags are shared by every command that prints a tree.
type viewFlags struct {
	width  int
	height int
	output string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "width", 80, "frame width in cells (default: terminal width)")
	cmd.Flags().IntVar(&f.height, "height", 24, "frame height in cells (default: terminal height)")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputText, "output format: text, yaml, json")
}

// fitTerminal takes the unset dimensions from the terminal stdout is
// attached to, keeping one row for the shell prompt.
func (f *viewFlags) fitTerminal(cmd *cobra.Command) {
	out, isFile := cmd.OutOrStdout().(*os.File)
	if !isFile {
		return
	}
	w, h, ok := terminalSize(out)
	if !ok {
		return
	}
	if !cmd.Flags().Changed("width") {
		f.width = w
	}
	if !cmd.Flags().Changed("height") {
		f.height = max(h-1, 1)
	}
}

func (f *viewFlags) validate() error {
	switch f.output {
	case outputText, outputYAML, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q", f.output)
	}
	if f.width < 0 || f.height < 0 {
		return fmt.Errorf("frame size must not be negative")
	}
	return nil
}

// withHeadless opens a headless docker, runs fn on it and prints the result.
func withHeadless(cmd *cobra.Command, app *cli.App, f *viewFlags, fn func(ctx context.Context, h *cli.Headless) error) error {
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	f.fitTerminal(cmd)
	if err := f.validate(); err != nil {
		return err
	}
	ctx := app.Ctx()
	h, err := app.OpenHeadless(f.width, f.height)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close(ctx) }()

	if fn != nil {
		if err := fn(ctx, h); err != nil {
			return err
		}
	}
	return printTree(ctx, cmd.OutOrStdout(), h, f.output)
}

func printTree(ctx context.Context, w io.Writer, h *cli.Headless, output string) error {
	switch output {
	case outputYAML, outputJSON:
		specs, err := h.Docker.Snapshot(ctx)
		if err != nil {
			return err
		}
		doc := struct {
			Panels any `yaml:"panels" json:"panels"`
		}{Panels: specs}
		if output == outputJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		frame, err := h.Frame(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, frame)
		return err
	}
}
