package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Manage records",
	}
	cmd.AddCommand(newRecordSetCmd())
	cmd.AddCommand(newRecordGetCmd())
	cmd.AddCommand(newRecordListCmd())
	cmd.AddCommand(newRecordDeleteCmd())
	return cmd
}

func newRecordSetCmd() *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "set [field=value ...]",
		Short: "Create or update a record",
		Long: "Create a record, or update one with --id. Each positional argument\n" +
			"stages one field value as field=value; values are validated against\n" +
			"the field's datatype before anything is stored. Values starting with\n" +
			"'{' or '[' are parsed as JSON for object and array fields.",
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValueArgs(args)
			if err != nil {
				return err
			}
			return runWithBackend(func(b *sqlite.Backend) error {
				tbl, err := tableFor(b, types.RecordsTable)
				if err != nil {
					return err
				}

				rec := &types.Record{Name: name}
				if id != "" {
					existing, err := tbl.Get(id)
					if err != nil {
						return fmt.Errorf("loading record: %w", err)
					}
					rec = existing.(*types.Record)
					if name != "" {
						rec.Name = name
					}
				}
				for field, value := range values {
					rec.SetValue(field, value)
				}

				recordID, err := tbl.Set(id, rec)
				if err != nil {
					return fmt.Errorf("storing record: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), recordID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "record ID to update (omit to create)")
	cmd.Flags().StringVar(&name, "name", "", "record name (required on create)")
	return cmd
}

func newRecordGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <record-id>",
		Short: "Show a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBackend(func(b *sqlite.Backend) error {
				tbl, err := tableFor(b, types.RecordsTable)
				if err != nil {
					return err
				}
				got, err := tbl.Get(args[0])
				if err != nil {
					return fmt.Errorf("loading record: %w", err)
				}
				r := got.(*types.Record)

				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), r)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.RecordID, r.Name)
				for field, value := range r.GetValues() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s = %v\n", field, value)
				}
				return nil
			})
		},
	}
}

func newRecordListCmd() *cobra.Command {
	var name string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBackend(func(b *sqlite.Backend) error {
				tbl, err := tableFor(b, types.RecordsTable)
				if err != nil {
					return err
				}
				filter := map[string]any{}
				if name != "" {
					filter["name"] = name
				}
				if limit > 0 {
					filter["limit"] = limit
				}
				if offset > 0 {
					filter["offset"] = offset
				}
				results, err := tbl.Fetch(filter)
				if err != nil {
					return fmt.Errorf("listing records: %w", err)
				}

				if flags.jsonMode {
					records := make([]*types.Record, 0, len(results))
					for _, r := range results {
						records = append(records, r.(*types.Record))
					}
					return printJSON(cmd.OutOrStdout(), records)
				}
				for _, res := range results {
					r := res.(*types.Record)
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d values\n",
						r.RecordID, r.Name, len(r.Values))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by record name")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of records")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of records to skip")
	return cmd
}

func newRecordDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a record and its values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBackend(func(b *sqlite.Backend) error {
				tbl, err := tableFor(b, types.RecordsTable)
				if err != nil {
					return err
				}
				if err := tbl.Delete(args[0]); err != nil {
					return fmt.Errorf("deleting record: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "deleted")
				return nil
			})
		},
	}
}
