package types

import (
	"time"

	"github.com/mesh-intelligence/pantry/pkg/datatype"
)

// Field defines a named, typed attribute that records carry values for.
type Field struct {
	FieldID     string    // UUID v7, generated on creation.
	Name        string    // Unique human-readable name (required, non-empty).
	Description string    // Optional explanation of the field's purpose.
	ValueType   string    // One of the datatype names (datatype.Type*).
	CreatedAt   time.Time // Timestamp of creation.
}

// Validate checks the field definition.
// Returns ErrInvalidName if the name is empty and ErrInvalidValueType if
// the value type is not a recognized datatype.
func (f *Field) Validate() error {
	if f.Name == "" {
		return ErrInvalidName
	}
	if !datatype.IsValidType(f.ValueType) {
		return ErrInvalidValueType
	}
	return nil
}
