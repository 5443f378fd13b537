package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/liferpg-core/internal/application/handlers"
)

type exportFlags struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a save to file",
		Long:  "Exports characters and relationships as JSON, or one table as CSV.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", handlers.FormatJSON,
		"Output format ("+strings.Join(handlers.ExportFormats, ", ")+")")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(handlers.ExportFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, handlers.ExportFormats)
	}

	return withDeps(cmd.Context(), func(d *Deps) (err error) {
		w := stdout
		if flags.output != "" {
			f, ferr := os.OpenFile(flags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if ferr != nil {
				return fmt.Errorf("creating file: %w", ferr)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("closing file: %w", cerr)
				}
			}()
			w = f
		}

		snap, err := d.Export.HandleExport(cmd.Context(), w, flags.format)
		if err != nil {
			return err
		}

		if flags.output != "" {
			fmt.Fprintf(stdout, "Exported %d characters and %d relationship edges to %s\n",
				len(snap.Characters), len(snap.Relationships), flags.output)
		}
		return nil
	})
}
