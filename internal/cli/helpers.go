package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// openBackend loads the effective configuration and attaches a backend.
// The caller must Detach when done.
func openBackend() (*sqlite.Backend, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	b := sqlite.NewBackend().WithLogger(newLogger())
	if err := b.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attaching storage: %w", err)
	}
	return b, nil
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseValueArgs splits "field=value" arguments into a map. The value keeps
// everything after the first '='. Values that look like JSON objects or
// arrays are decoded before staging, so object and array fields can be set
// from the command line; everything else stays a string for the datatype
// validators to coerce.
func parseValueArgs(args []string) (map[string]any, error) {
	values := make(map[string]any, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid value %q, expected field=value", arg)
		}
		values[name] = decodeValueArg(value)
	}
	return values, nil
}

func decodeValueArg(s string) any {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}
	return s
}

// runWithBackend attaches a backend, runs fn, and detaches. Errors from fn
// win over detach errors.
func runWithBackend(fn func(b *sqlite.Backend) error) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Detach()
	return fn(b)
}

// tableFor returns the named table from an attached backend.
func tableFor(b *sqlite.Backend, name string) (types.Table, error) {
	tbl, err := b.GetTable(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s table: %w", name, err)
	}
	return tbl, nil
}
