// Package sqlite implements the SQLite storage backend for pantry. The
// SQLite database is the query engine; JSONL files in the data directory
// are the source of truth, loaded on Attach and rewritten atomically after
// every mutation.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/internal/i18n"
	"github.com/mesh-intelligence/pantry/pkg/datatype"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Backend implements the Pantry interface using SQLite as the query engine
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	tables   map[string]*table

	// registry validates and serializes field values; locale selects the
	// language of validation messages.
	registry *datatype.Registry
	locale   string

	logger zerolog.Logger
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize. Validation messages
// render through the embedded locale catalogs.
func NewBackend() *Backend {
	return &Backend{
		tables:   make(map[string]*table),
		registry: datatype.NewRegistry(i18n.Default()),
		logger:   zerolog.Nop(),
	}
}

// WithLogger sets the logger used for backend diagnostics and returns the
// backend for chaining.
func (b *Backend) WithLogger(logger zerolog.Logger) *Backend {
	b.logger = logger
	return b
}

// GetTable returns a Table interface for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrPantryDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrPantryDetached
	}
	t, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return t, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, rebuilds the SQLite schema, and
// loads the JSONL files. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is rebuilt from JSONL on every attach; remove any
	// stale file so the schema is always fresh.
	dbPath := filepath.Join(dataDir, "pantry.db")
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("initializing schema: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.locale = config.EffectiveLocale()

	if err := b.initJSONLFiles(); err != nil {
		db.Close()
		return err
	}
	if err := b.loadAllJSONL(); err != nil {
		db.Close()
		return fmt.Errorf("loading JSONL: %w", err)
	}

	b.attached = true
	b.tables[types.FieldsTable] = newTable(b, types.FieldsTable)
	b.tables[types.RecordsTable] = newTable(b, types.RecordsTable)

	b.logger.Info().Str("data_dir", dataDir).Str("locale", b.locale).Msg("pantry attached")
	return nil
}

// Detach releases all resources held by the backend. Idempotent. After
// Detach, all table operations return ErrPantryDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}
	b.attached = false
	b.tables = make(map[string]*table)

	b.logger.Info().Msg("pantry detached")
	return nil
}

// newUUID generates a UUID v7 string for entity IDs.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}
