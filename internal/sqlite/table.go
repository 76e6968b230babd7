// table dispatch for the SQLite backend.
package sqlite

import "github.com/mesh-intelligence/pantry/pkg/types"

// table implements types.Table for a single entity type. Each table knows
// its name and the backend it belongs to (for DB access, datatype
// validation, and JSONL writes).
type table struct {
	name    string
	backend *Backend
}

func newTable(b *Backend, name string) *table {
	return &table{name: name, backend: b}
}

// Get retrieves an entity by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrPantryDetached
	}
	switch t.name {
	case types.FieldsTable:
		return t.getField(id)
	case types.RecordsTable:
		return t.getRecord(id)
	default:
		return nil, types.ErrTableNotFound
	}
}

// Set creates or updates an entity. If id is empty, generates a UUID v7.
// Returns the entity ID and any error.
func (t *table) Set(id string, data any) (string, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return "", types.ErrPantryDetached
	}
	switch t.name {
	case types.FieldsTable:
		return t.setField(id, data)
	case types.RecordsTable:
		return t.setRecord(id, data)
	default:
		return "", types.ErrTableNotFound
	}
}

// Delete removes an entity by ID with cascading deletes where appropriate.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return types.ErrPantryDetached
	}
	switch t.name {
	case types.FieldsTable:
		return t.deleteField(id)
	case types.RecordsTable:
		return t.deleteRecord(id)
	default:
		return types.ErrTableNotFound
	}
}

// Fetch returns entities matching the filter. Empty filter matches all.
func (t *table) Fetch(filter map[string]any) ([]any, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrPantryDetached
	}
	switch t.name {
	case types.FieldsTable:
		return t.fetchFields(filter)
	case types.RecordsTable:
		return t.fetchRecords(filter)
	default:
		return nil, types.ErrTableNotFound
	}
}

// toInt converts various numeric types to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
