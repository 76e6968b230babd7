package types

import "time"

// Record is a named entity carrying one value per defined field.
// Values are keyed by field name and hold coerced representations as
// produced by datatype validation.
type Record struct {
	RecordID  string         // UUID v7, generated on creation.
	Name      string         // Human-readable name (required, non-empty).
	CreatedAt time.Time      // Timestamp of creation.
	UpdatedAt time.Time      // Timestamp of last modification.
	Values    map[string]any // Field values keyed by field name.
}

// SetValue stages a raw value for the named field. Datatype validation and
// coercion happen at the storage boundary when the record is persisted.
func (r *Record) SetValue(fieldName string, value any) {
	if r.Values == nil {
		r.Values = make(map[string]any)
	}
	r.Values[fieldName] = value
	r.UpdatedAt = time.Now()
}

// GetValue returns the value stored for the named field.
// Returns ErrFieldNotFound if the record has no value for that field.
func (r *Record) GetValue(fieldName string) (any, error) {
	if r.Values == nil {
		return nil, ErrFieldNotFound
	}
	v, ok := r.Values[fieldName]
	if !ok {
		return nil, ErrFieldNotFound
	}
	return v, nil
}

// GetValues returns a copy of all field values.
// Returns an empty map (not nil) if no values are set.
func (r *Record) GetValues() map[string]any {
	result := make(map[string]any, len(r.Values))
	for k, v := range r.Values {
		result[k] = v
	}
	return result
}
