// Record CRUD operations for the SQLite backend. Record writes are where
// raw field values meet the datatype registry: every value is validated
// and coerced before anything is persisted.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func (t *table) getRecord(id string) (any, error) {
	row := t.backend.db.QueryRow(
		"SELECT record_id, name, created_at, updated_at FROM records WHERE record_id = ?", id)
	r, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	if err := t.loadRecordValues(r); err != nil {
		return nil, err
	}
	return r, nil
}

func scanRecord(row *sql.Row) (*types.Record, error) {
	var r types.Record
	var createdAt, updatedAt string
	err := row.Scan(&r.RecordID, &r.Name, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing record created_at: %w", err)
	}
	r.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing record updated_at: %w", err)
	}
	r.Values = make(map[string]any)
	return &r, nil
}

// loadRecordValues hydrates all field values for a record. Stored values
// re-validate through the registry so callers always see coerced
// representations.
func (t *table) loadRecordValues(r *types.Record) error {
	rows, err := t.backend.db.Query(`
		SELECT f.name, f.value_type, rv.value
		FROM record_values rv JOIN fields f ON f.field_id = rv.field_id
		WHERE rv.record_id = ?`, r.RecordID)
	if err != nil {
		return fmt.Errorf("loading record values: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, valueType, valueJSON string
		if err := rows.Scan(&name, &valueType, &valueJSON); err != nil {
			return fmt.Errorf("scanning record value: %w", err)
		}
		var stored any
		if err := json.Unmarshal([]byte(valueJSON), &stored); err != nil {
			return fmt.Errorf("parsing record value: %w", err)
		}
		coerced, err := t.backend.hydrateValue(valueType, name, stored)
		if err != nil {
			return fmt.Errorf("hydrating value for %s: %w", name, err)
		}
		r.Values[name] = coerced
	}
	return rows.Err()
}

// coercedValue is one validated field value ready for persistence.
type coercedValue struct {
	fieldID   string
	valueType string
	value     any
}

// validateRecordValues runs every staged value through the datatype
// registry. Returns ErrFieldNotFound for a value keyed by an undefined
// field name, and a ValueError carrying the localized message for the
// first rejected value. On success the record's Values map is replaced
// with the coerced representations.
func (t *table) validateRecordValues(r *types.Record) ([]coercedValue, error) {
	names := make([]string, 0, len(r.Values))
	for name := range r.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	coerced := make([]coercedValue, 0, len(names))
	for _, name := range names {
		f, err := t.fieldByName(name)
		if err != nil {
			return nil, err
		}
		res, err := t.backend.registry.Validate(f.ValueType, f.Name, r.Values[name], t.backend.locale)
		if err != nil {
			return nil, err
		}
		if !res.OK() {
			return nil, &types.ValueError{Field: f.Name, Message: res.Error}
		}
		r.Values[name] = res.Value
		coerced = append(coerced, coercedValue{fieldID: f.FieldID, valueType: f.ValueType, value: res.Value})
	}
	return coerced, nil
}

func (t *table) setRecord(id string, data any) (string, error) {
	r, ok := data.(*types.Record)
	if !ok {
		return "", types.ErrInvalidData
	}
	if r.Name == "" {
		return "", types.ErrInvalidName
	}

	// Validate before touching the database; a rejected value must not
	// leave a partially written record behind.
	coerced, err := t.validateRecordValues(r)
	if err != nil {
		return "", err
	}

	now := time.Now()
	isCreate := id == "" && r.RecordID == ""
	if isCreate {
		r.RecordID = newUUID()
		r.CreatedAt = now
		r.UpdatedAt = now
	} else {
		if id != "" {
			r.RecordID = id
		}
		r.UpdatedAt = now
	}

	_, err = t.backend.db.Exec(`
		INSERT INTO records (record_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(record_id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at`,
		r.RecordID, r.Name,
		r.CreatedAt.Format(time.RFC3339Nano),
		r.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("upserting record: %w", err)
	}

	if err := t.persistRecordValueRows(r.RecordID, coerced); err != nil {
		return "", err
	}

	if err := t.persistRecordsJSONL(); err != nil {
		return "", err
	}
	if err := t.persistRecordValuesJSONL(); err != nil {
		return "", err
	}
	return r.RecordID, nil
}

// persistRecordValueRows replaces all stored values for a record with the
// given coerced set.
func (t *table) persistRecordValueRows(recordID string, values []coercedValue) error {
	if _, err := t.backend.db.Exec(
		"DELETE FROM record_values WHERE record_id = ?", recordID); err != nil {
		return fmt.Errorf("clearing record values: %w", err)
	}
	for _, cv := range values {
		stored, err := t.backend.storageValue(cv.valueType, cv.value)
		if err != nil {
			return fmt.Errorf("converting value for storage: %w", err)
		}
		valueJSON, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("marshaling record value: %w", err)
		}
		if _, err := t.backend.db.Exec(
			"INSERT INTO record_values (record_id, field_id, value) VALUES (?, ?, ?)",
			recordID, cv.fieldID, string(valueJSON)); err != nil {
			return fmt.Errorf("inserting record value: %w", err)
		}
	}
	return nil
}

func (t *table) deleteRecord(id string) error {
	var exists int
	if err := t.backend.db.QueryRow(
		"SELECT 1 FROM records WHERE record_id = ?", id).Scan(&exists); err == sql.ErrNoRows {
		return types.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("checking record: %w", err)
	}

	if _, err := t.backend.db.Exec(
		"DELETE FROM record_values WHERE record_id = ?", id); err != nil {
		return fmt.Errorf("deleting record values: %w", err)
	}
	if _, err := t.backend.db.Exec(
		"DELETE FROM records WHERE record_id = ?", id); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	if err := t.persistRecordsJSONL(); err != nil {
		return err
	}
	return t.persistRecordValuesJSONL()
}

func (t *table) fetchRecords(filter map[string]any) ([]any, error) {
	query := "SELECT record_id, name, created_at, updated_at FROM records"
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

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	// record_id is a UUID v7, so it breaks ties for records created at the
	// same instant.
	query += " ORDER BY created_at DESC, record_id DESC"

	limitClause := ""
	if limit, ok := filter["limit"]; ok {
		l, ok := toInt(limit)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		if l > 0 {
			limitClause = fmt.Sprintf(" LIMIT %d", l)
		}
	}
	if offset, ok := filter["offset"]; ok {
		o, ok := toInt(offset)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		if o > 0 {
			// SQLite requires a LIMIT before OFFSET; -1 means unbounded.
			if limitClause == "" {
				limitClause = " LIMIT -1"
			}
			limitClause += fmt.Sprintf(" OFFSET %d", o)
		}
	}
	query += limitClause

	rows, err := t.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		var r types.Record
		var createdAt, updatedAt string
		if err := rows.Scan(&r.RecordID, &r.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		r.Values = make(map[string]any)
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, res := range results {
		if err := t.loadRecordValues(res.(*types.Record)); err != nil {
			return nil, err
		}
	}
	if results == nil {
		results = []any{}
	}
	return results, nil
}

func (t *table) persistRecordsJSONL() error {
	rows, err := t.backend.db.Query(
		"SELECT record_id, name, created_at, updated_at FROM records ORDER BY created_at, record_id")
	if err != nil {
		return fmt.Errorf("reading records for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var r types.Record
		var createdAt, updatedAt string
		if err := rows.Scan(&r.RecordID, &r.Name, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("scanning record for JSONL: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		rec, err := dehydrateRecord(&r)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(t.backend.dataDir, recordsFile), records)
}

func (t *table) persistRecordValuesJSONL() error {
	rows, err := t.backend.db.Query(
		"SELECT record_id, field_id, value FROM record_values ORDER BY record_id, field_id")
	if err != nil {
		return fmt.Errorf("reading record_values for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var recordID, fieldID, valueJSON string
		if err := rows.Scan(&recordID, &fieldID, &valueJSON); err != nil {
			return fmt.Errorf("scanning record_value for JSONL: %w", err)
		}
		var stored any
		if err := json.Unmarshal([]byte(valueJSON), &stored); err != nil {
			return fmt.Errorf("parsing record_value for JSONL: %w", err)
		}
		rec, err := json.Marshal(recordValueJSON{RecordID: recordID, FieldID: fieldID, Value: stored})
		if err != nil {
			return fmt.Errorf("marshaling record_value for JSONL: %w", err)
		}
		records = append(records, json.RawMessage(rec))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(t.backend.dataDir, recordValuesFile), records)
}
