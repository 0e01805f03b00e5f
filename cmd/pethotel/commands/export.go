package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/deleonhotel/pethotel/pkg/stores"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportDocument is the file written by export.
type exportDocument struct {
	Count    int               `json:"count" yaml:"count"`
	Bookings []*stores.Booking `json:"bookings" yaml:"bookings"`
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		format  string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all bookings",
		Long: `Write every booking to stdout or a file as JSON or YAML. The export is a
plain document ({count, bookings}) meant for backups and spreadsheets.`,
		Example: `  # JSON to stdout
  pethotel export

  # YAML file
  pethotel export --format yaml --out bookings.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return usageError("invalid export format %q: must be json or yaml", format)
			}

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				bookings, err := a.store.ListBookings(ctx)
				if err != nil {
					return err
				}

				doc := exportDocument{Count: len(bookings), Bookings: bookings}

				if outFile == "" {
					return writeExport(cmd.OutOrStdout(), format, doc)
				}

				f, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				if err := writeExport(f, format, doc); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("failed to close export file: %w", err)
				}

				log.Info().
					Str("file", outFile).
					Int("bookings", doc.Count).
					Msg("Exported bookings")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format (json|yaml)")
	cmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	return cmd
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}
