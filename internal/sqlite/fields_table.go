// Field CRUD operations for the SQLite backend.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func (t *table) getField(id string) (any, error) {
	row := t.backend.db.QueryRow(
		"SELECT field_id, name, description, value_type, created_at FROM fields WHERE field_id = ?", id)
	return scanField(row)
}

func scanField(row *sql.Row) (*types.Field, error) {
	var f types.Field
	var createdAt string
	var desc sql.NullString
	err := row.Scan(&f.FieldID, &f.Name, &desc, &f.ValueType, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning field: %w", err)
	}
	f.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing field created_at: %w", err)
	}
	if desc.Valid {
		f.Description = desc.String
	}
	return &f, nil
}

func (t *table) setField(id string, data any) (string, error) {
	f, ok := data.(*types.Field)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := f.Validate(); err != nil {
		return "", err
	}

	now := time.Now()
	isCreate := id == "" && f.FieldID == ""
	if isCreate {
		f.FieldID = newUUID()
		f.CreatedAt = now
	} else if id != "" {
		f.FieldID = id
	}

	// Field names are unique; reject duplicates on create.
	if isCreate {
		var existing int
		err := t.backend.db.QueryRow(
			"SELECT 1 FROM fields WHERE name = ?", f.Name).Scan(&existing)
		if err == nil {
			return "", types.ErrDuplicateName
		}
		if err != sql.ErrNoRows {
			return "", fmt.Errorf("checking field name: %w", err)
		}
	}

	var desc sql.NullString
	if f.Description != "" {
		desc = sql.NullString{String: f.Description, Valid: true}
	}

	_, err := t.backend.db.Exec(`
		INSERT INTO fields (field_id, name, description, value_type, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(field_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			value_type = excluded.value_type`,
		f.FieldID, f.Name, desc, f.ValueType,
		f.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("upserting field: %w", err)
	}

	if err := t.persistFieldsJSONL(); err != nil {
		return "", err
	}
	return f.FieldID, nil
}

func (t *table) deleteField(id string) error {
	var exists int
	if err := t.backend.db.QueryRow(
		"SELECT 1 FROM fields WHERE field_id = ?", id).Scan(&exists); err == sql.ErrNoRows {
		return types.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("checking field: %w", err)
	}

	// Cascade delete: record values referencing this field.
	if _, err := t.backend.db.Exec(
		"DELETE FROM record_values WHERE field_id = ?", id); err != nil {
		return fmt.Errorf("deleting field values: %w", err)
	}
	if _, err := t.backend.db.Exec(
		"DELETE FROM fields WHERE field_id = ?", id); err != nil {
		return fmt.Errorf("deleting field: %w", err)
	}

	if err := t.persistFieldsJSONL(); err != nil {
		return err
	}
	return t.persistRecordValuesJSONL()
}

func (t *table) fetchFields(filter map[string]any) ([]any, error) {
	query := "SELECT field_id, name, description, value_type, created_at FROM fields"
	var conditions []string
	var args []any

	if name, ok := filter["name"]; ok {
		n, ok := name.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "name = ?")
		args = append(args, n)
	}
	if valueType, ok := filter["value_type"]; ok {
		vt, ok := valueType.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "value_type = ?")
		args = append(args, vt)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := t.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching fields: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		var f types.Field
		var createdAt string
		var desc sql.NullString
		if err := rows.Scan(&f.FieldID, &f.Name, &desc, &f.ValueType, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if desc.Valid {
			f.Description = desc.String
		}
		results = append(results, &f)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}

// fieldByName loads one field definition by its unique name.
// Returns ErrFieldNotFound if no field has that name.
func (t *table) fieldByName(name string) (*types.Field, error) {
	var f types.Field
	var createdAt string
	var desc sql.NullString
	err := t.backend.db.QueryRow(
		"SELECT field_id, name, description, value_type, created_at FROM fields WHERE name = ?", name).
		Scan(&f.FieldID, &f.Name, &desc, &f.ValueType, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning field: %w", err)
	}
	f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if desc.Valid {
		f.Description = desc.String
	}
	return &f, nil
}

func (t *table) persistFieldsJSONL() error {
	rows, err := t.backend.db.Query(
		"SELECT field_id, name, description, value_type, created_at FROM fields ORDER BY name")
	if err != nil {
		return fmt.Errorf("reading fields for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var f types.Field
		var createdAt string
		var desc sql.NullString
		if err := rows.Scan(&f.FieldID, &f.Name, &desc, &f.ValueType, &createdAt); err != nil {
			return fmt.Errorf("scanning field for JSONL: %w", err)
		}
		f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if desc.Valid {
			f.Description = desc.String
		}
		rec, err := dehydrateField(&f)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(t.backend.dataDir, fieldsFile), records)
}
