// JSON record structures for the JSONL data files.
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/datatype"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// fieldJSON represents a field definition in fields.jsonl.
type fieldJSON struct {
	FieldID     string `json:"field_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ValueType   string `json:"value_type"`
	CreatedAt   string `json:"created_at"`
}

// recordJSON represents a record in records.jsonl.
type recordJSON struct {
	RecordID  string `json:"record_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// recordValueJSON represents one field value in record_values.jsonl.
// Value holds the storage form produced by storageValue.
type recordValueJSON struct {
	RecordID string `json:"record_id"`
	FieldID  string `json:"field_id"`
	Value    any    `json:"value"`
}

func dehydrateField(f *types.Field) (json.RawMessage, error) {
	rec := fieldJSON{
		FieldID:     f.FieldID,
		Name:        f.Name,
		Description: f.Description,
		ValueType:   f.ValueType,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling field %s: %w", f.FieldID, err)
	}
	return data, nil
}

func dehydrateRecord(r *types.Record) (json.RawMessage, error) {
	// Nanosecond precision keeps creation order observable across reloads.
	rec := recordJSON{
		RecordID:  r.RecordID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling record %s: %w", r.RecordID, err)
	}
	return data, nil
}

// storageValue converts a coerced value into the form stored in SQLite and
// the JSONL files. Temporal values become their serialized textual
// convention so the stored form is plain JSON; every other coerced value is
// stored as-is.
func (b *Backend) storageValue(valueType string, coerced any) (any, error) {
	switch valueType {
	case datatype.TypeDate, datatype.TypeDatetime, datatype.TypeTime:
		s, err := b.registry.Serialize(valueType, coerced, datatype.Options{})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return coerced, nil
	}
}

// hydrateValue converts a storage value back into its coerced in-memory
// representation by re-validating it through the registry. Values written
// by storageValue always round-trip.
func (b *Backend) hydrateValue(valueType, fieldName string, stored any) (any, error) {
	res, err := b.registry.Validate(valueType, fieldName, stored, b.locale)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, &types.ValueError{Field: fieldName, Message: res.Error}
	}
	return res.Value, nil
}
