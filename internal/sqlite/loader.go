// JSONL loading on Attach. The data files are the source of truth; the
// SQLite database is rebuilt from them every time the backend attaches.
package sqlite

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// loadAllJSONL loads fields, records, and record values from the JSONL
// files into the freshly created SQLite schema.
func (b *Backend) loadAllJSONL() error {
	if err := b.loadFieldsJSONL(); err != nil {
		return err
	}
	if err := b.loadRecordsJSONL(); err != nil {
		return err
	}
	return b.loadRecordValuesJSONL()
}

func (b *Backend) loadFieldsJSONL() error {
	path := filepath.Join(b.dataDir, fieldsFile)
	lines, skipped, err := readJSONL(path)
	if err != nil {
		return err
	}
	if skipped > 0 {
		b.logger.Warn().Str("file", fieldsFile).Int("skipped", skipped).Msg("malformed JSONL lines skipped")
	}
	for _, line := range lines {
		var f fieldJSON
		if err := json.Unmarshal(line, &f); err != nil {
			b.logger.Warn().Str("file", fieldsFile).Err(err).Msg("unparseable field record skipped")
			continue
		}
		if _, err := b.db.Exec(
			"INSERT INTO fields (field_id, name, description, value_type, created_at) VALUES (?, ?, ?, ?, ?)",
			f.FieldID, f.Name, f.Description, f.ValueType, f.CreatedAt); err != nil {
			return fmt.Errorf("loading field %s: %w", f.FieldID, err)
		}
	}
	return nil
}

func (b *Backend) loadRecordsJSONL() error {
	path := filepath.Join(b.dataDir, recordsFile)
	lines, skipped, err := readJSONL(path)
	if err != nil {
		return err
	}
	if skipped > 0 {
		b.logger.Warn().Str("file", recordsFile).Int("skipped", skipped).Msg("malformed JSONL lines skipped")
	}
	for _, line := range lines {
		var r recordJSON
		if err := json.Unmarshal(line, &r); err != nil {
			b.logger.Warn().Str("file", recordsFile).Err(err).Msg("unparseable record skipped")
			continue
		}
		if _, err := b.db.Exec(
			"INSERT INTO records (record_id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
			r.RecordID, r.Name, r.CreatedAt, r.UpdatedAt); err != nil {
			return fmt.Errorf("loading record %s: %w", r.RecordID, err)
		}
	}
	return nil
}

func (b *Backend) loadRecordValuesJSONL() error {
	path := filepath.Join(b.dataDir, recordValuesFile)
	lines, skipped, err := readJSONL(path)
	if err != nil {
		return err
	}
	if skipped > 0 {
		b.logger.Warn().Str("file", recordValuesFile).Int("skipped", skipped).Msg("malformed JSONL lines skipped")
	}
	for _, line := range lines {
		var rv recordValueJSON
		if err := json.Unmarshal(line, &rv); err != nil {
			b.logger.Warn().Str("file", recordValuesFile).Err(err).Msg("unparseable record value skipped")
			continue
		}
		valueJSON, err := json.Marshal(rv.Value)
		if err != nil {
			return fmt.Errorf("marshaling value for %s/%s: %w", rv.RecordID, rv.FieldID, err)
		}
		if _, err := b.db.Exec(
			"INSERT INTO record_values (record_id, field_id, value) VALUES (?, ?, ?)",
			rv.RecordID, rv.FieldID, string(valueJSON)); err != nil {
			return fmt.Errorf("loading value for %s/%s: %w", rv.RecordID, rv.FieldID, err)
		}
	}
	return nil
}
