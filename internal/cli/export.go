package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/sqlite"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all records as a SQL script",
		Long: "Write a SQL script with a CREATE TABLE statement and one INSERT per\n" +
			"record. Values are serialized by datatype: text values are quoted with\n" +
			"embedded single quotes doubled, numbers and booleans stay bare.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBackend(func(b *sqlite.Backend) error {
				if output == "" {
					if err := b.ExportSQL(cmd.OutOrStdout()); err != nil {
						return fmt.Errorf("exporting: %w", err)
					}
					return nil
				}
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				if err := b.ExportSQL(f); err != nil {
					f.Close()
					return fmt.Errorf("exporting: %w", err)
				}
				// Close errors matter here: a failed flush means a
				// truncated script.
				if err := f.Close(); err != nil {
					return fmt.Errorf("closing output file: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
