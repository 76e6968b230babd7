package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/datatype"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newFieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Manage field definitions",
	}
	cmd.AddCommand(newFieldAddCmd())
	cmd.AddCommand(newFieldListCmd())
	return cmd
}

func newFieldAddCmd() *cobra.Command {
	var name, valueType, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Define a new field",
		Long: "Define a named field with a datatype. Supported datatypes:\n" +
			strings.Join(datatype.Names(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBackend(func(b *sqlite.Backend) error {
				tbl, err := tableFor(b, types.FieldsTable)
				if err != nil {
					return err
				}
				id, err := tbl.Set("", &types.Field{
					Name:        name,
					Description: description,
					ValueType:   valueType,
				})
				if err != nil {
					return fmt.Errorf("adding field: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "field name (required)")
	cmd.Flags().StringVar(&valueType, "type", "", "field datatype (required)")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newFieldListCmd() *cobra.Command {
	var valueType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List field definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBackend(func(b *sqlite.Backend) error {
				tbl, err := tableFor(b, types.FieldsTable)
				if err != nil {
					return err
				}
				filter := map[string]any{}
				if valueType != "" {
					filter["value_type"] = valueType
				}
				results, err := tbl.Fetch(filter)
				if err != nil {
					return fmt.Errorf("listing fields: %w", err)
				}

				if flags.jsonMode {
					fields := make([]*types.Field, 0, len(results))
					for _, r := range results {
						fields = append(fields, r.(*types.Field))
					}
					return printJSON(cmd.OutOrStdout(), fields)
				}
				for _, r := range results {
					f := r.(*types.Field)
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
						f.FieldID, f.Name, f.ValueType, f.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&valueType, "type", "", "filter by datatype")
	return cmd
}
