package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")
	content := `{"a": 1}
not json at all

{"b": 2}
{"broken":
{"c": 3}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	records, skipped, err := readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL() error = %v", err)
	}
	if len(records) != 3 {
		t.Errorf("readJSONL() returned %d records, want 3", len(records))
	}
	if skipped != 2 {
		t.Errorf("readJSONL() skipped = %d, want 2", skipped)
	}
}

func TestReadJSONLMissingFile(t *testing.T) {
	if _, _, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Error("readJSONL() on missing file error = nil, want error")
	}
}

func TestWriteJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	in := []json.RawMessage{
		json.RawMessage(`{"id":"one"}`),
		json.RawMessage(`{"id":"two"}`),
	}
	if err := writeJSONL(path, in); err != nil {
		t.Fatalf("writeJSONL() error = %v", err)
	}

	got, skipped, err := readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL() error = %v", err)
	}
	if skipped != 0 {
		t.Errorf("readJSONL() skipped = %d, want 0", skipped)
	}
	if len(got) != 2 || string(got[0]) != `{"id":"one"}` || string(got[1]) != `{"id":"two"}` {
		t.Errorf("round-trip records = %v", got)
	}

	// A write replaces the whole file.
	if err := writeJSONL(path, nil); err != nil {
		t.Fatalf("writeJSONL(nil) error = %v", err)
	}
	got, _, err = readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("readJSONL() after empty write returned %d records, want 0", len(got))
	}
}
