// SQL export. Renders the stored records as a portable SQL script, one
// column per defined field, with every value serialized through the
// datatype registry.
package sqlite

import (
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/datatype"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// exportOptions is the serialization convention for SQL literals: single
// quotes are doubled and quotable types are wrapped in single quotes.
var exportOptions = datatype.Options{Escape: true, UseQuotes: true}

// sqlColumnType maps a datatype name to a SQL column type for the
// exported schema.
func sqlColumnType(valueType string) string {
	switch valueType {
	case datatype.TypeNumber:
		return "REAL"
	case datatype.TypeInt:
		return "INTEGER"
	case datatype.TypeBoolean:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// quoteIdent quotes a SQL identifier with double quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ExportSQL writes a SQL script to w containing a CREATE TABLE statement
// for the records table and one INSERT per stored record. Field values
// serialize through the datatype registry with SQL escaping and quoting.
// Returns ErrPantryDetached if the backend is not attached.
func (b *Backend) ExportSQL(w io.Writer) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrPantryDetached
	}

	fieldsTable := newTable(b, types.FieldsTable)
	raw, err := fieldsTable.fetchFields(map[string]any{})
	if err != nil {
		return err
	}
	fields := make([]*types.Field, 0, len(raw))
	for _, v := range raw {
		fields = append(fields, v.(*types.Field))
	}

	if err := b.writeCreateTable(w, fields); err != nil {
		return err
	}

	recordsTable := newTable(b, types.RecordsTable)
	rawRecords, err := recordsTable.fetchRecords(map[string]any{})
	if err != nil {
		return err
	}
	for _, v := range rawRecords {
		if err := b.writeInsert(w, fields, v.(*types.Record)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) writeCreateTable(w io.Writer, fields []*types.Field) error {
	cols := []string{
		`    "record_id" TEXT PRIMARY KEY`,
		`    "name" TEXT NOT NULL`,
	}
	for _, f := range fields {
		cols = append(cols, fmt.Sprintf("    %s %s", quoteIdent(f.Name), sqlColumnType(f.ValueType)))
	}
	_, err := fmt.Fprintf(w, "CREATE TABLE records (\n%s\n);\n", strings.Join(cols, ",\n"))
	return err
}

func (b *Backend) writeInsert(w io.Writer, fields []*types.Field, r *types.Record) error {
	cols := []string{quoteIdent("record_id"), quoteIdent("name")}
	idLit, err := b.registry.Serialize(datatype.TypeString, r.RecordID, exportOptions)
	if err != nil {
		return err
	}
	nameLit, err := b.registry.Serialize(datatype.TypeString, r.Name, exportOptions)
	if err != nil {
		return err
	}
	vals := []string{idLit, nameLit}

	for _, f := range fields {
		v, ok := r.Values[f.Name]
		if !ok {
			continue
		}
		lit, err := b.registry.Serialize(f.ValueType, v, exportOptions)
		if err != nil {
			return fmt.Errorf("serializing %s: %w", f.Name, err)
		}
		cols = append(cols, quoteIdent(f.Name))
		vals = append(vals, lit)
	}

	_, err = fmt.Fprintf(w, "INSERT INTO records (%s) VALUES (%s);\n",
		strings.Join(cols, ", "), strings.Join(vals, ", "))
	return err
}
