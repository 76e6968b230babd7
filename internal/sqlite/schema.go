// Schema DDL for all tables.
package sqlite

// Schema DDL. The SQLite database is rebuilt from the JSONL files on every
// Attach, so no migration support is needed.
const (
	createFields = `CREATE TABLE fields (
    field_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT,
    value_type TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createRecords = `CREATE TABLE records (
    record_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createRecordValues = `CREATE TABLE record_values (
    record_id TEXT NOT NULL,
    field_id TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (record_id, field_id),
    FOREIGN KEY (record_id) REFERENCES records(record_id),
    FOREIGN KEY (field_id) REFERENCES fields(field_id)
);`
)

// schemaSQL is the combined DDL executed on Attach.
const schemaSQL = createFields + "\n" + createRecords + "\n" + createRecordValues
