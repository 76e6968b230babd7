package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with the given arguments and returns
// captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flags = rootFlags{}
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// cliDirs returns --config-dir and --data-dir arguments pointing at
// per-test temp directories.
func cliDirs(t *testing.T) []string {
	t.Helper()
	base := t.TempDir()
	return []string{
		"--config-dir", filepath.Join(base, "config"),
		"--data-dir", filepath.Join(base, "data"),
	}
}

func TestCLIVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pantry v")
	assert.Contains(t, out, "github.com/mesh-intelligence/pantry")
}

func TestCLIInit(t *testing.T) {
	dirs := cliDirs(t)
	out, err := runCLI(t, append(dirs, "init")...)
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")

	// init writes config.yaml into the config directory.
	assert.FileExists(t, filepath.Join(dirs[1], "config.yaml"))
	// and creates the JSONL data files.
	assert.FileExists(t, filepath.Join(dirs[3], "fields.jsonl"))
	assert.FileExists(t, filepath.Join(dirs[3], "records.jsonl"))
}

func TestCLIFieldAndRecordFlow(t *testing.T) {
	dirs := cliDirs(t)

	_, err := runCLI(t, append(dirs, "init")...)
	require.NoError(t, err)

	out, err := runCLI(t, append(dirs, "field", "add", "--name", "age", "--type", "int")...)
	require.NoError(t, err)
	fieldID := strings.TrimSpace(out)
	require.NotEmpty(t, fieldID)

	_, err = runCLI(t, append(dirs, "field", "add", "--name", "owner", "--type", "string")...)
	require.NoError(t, err)

	out, err = runCLI(t, append(dirs, "field", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "age")
	assert.Contains(t, out, "owner")

	out, err = runCLI(t, append(dirs, "record", "set", "--name", "alice", "age=42", "owner=O'Brien")...)
	require.NoError(t, err)
	recordID := strings.TrimSpace(out)
	require.NotEmpty(t, recordID)

	out, err = runCLI(t, append(dirs, "record", "get", recordID)...)
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "age = 42")
	assert.Contains(t, out, "owner = O'Brien")

	out, err = runCLI(t, append(dirs, "record", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, recordID)

	_, err = runCLI(t, append(dirs, "record", "delete", recordID)...)
	require.NoError(t, err)

	_, err = runCLI(t, append(dirs, "record", "get", recordID)...)
	require.Error(t, err)
}

func TestCLIRecordSetRejectsInvalidValue(t *testing.T) {
	dirs := cliDirs(t)

	_, err := runCLI(t, append(dirs, "init")...)
	require.NoError(t, err)
	_, err = runCLI(t, append(dirs, "field", "add", "--name", "age", "--type", "int")...)
	require.NoError(t, err)

	_, err = runCLI(t, append(dirs, "record", "set", "--name", "bad", "age=10.5")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age is not an integer")
}

func TestCLIRecordSetLocalizedRejection(t *testing.T) {
	dirs := cliDirs(t)

	_, err := runCLI(t, append(dirs, "init")...)
	require.NoError(t, err)
	_, err = runCLI(t, append(dirs, "field", "add", "--name", "age", "--type", "int")...)
	require.NoError(t, err)

	args := append(dirs, "--locale", "pt-BR", "record", "set", "--name", "bad", "age=x")
	_, err = runCLI(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "não é um número inteiro")
}

func TestCLIExport(t *testing.T) {
	dirs := cliDirs(t)

	_, err := runCLI(t, append(dirs, "init")...)
	require.NoError(t, err)
	_, err = runCLI(t, append(dirs, "field", "add", "--name", "owner", "--type", "string")...)
	require.NoError(t, err)
	_, err = runCLI(t, append(dirs, "record", "set", "--name", "locker", "owner=O'Brien")...)
	require.NoError(t, err)

	out, err := runCLI(t, append(dirs, "export")...)
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE records")
	assert.Contains(t, out, "INSERT INTO records")
	assert.Contains(t, out, "'O''Brien'")
}

func TestCLIRecordSetJSONValues(t *testing.T) {
	dirs := cliDirs(t)

	_, err := runCLI(t, append(dirs, "init")...)
	require.NoError(t, err)
	_, err = runCLI(t, append(dirs, "field", "add", "--name", "meta", "--type", "object")...)
	require.NoError(t, err)
	_, err = runCLI(t, append(dirs, "field", "add", "--name", "tags", "--type", "array")...)
	require.NoError(t, err)

	out, err := runCLI(t, append(dirs, "record", "set", "--name", "shelf",
		`meta={"k":"v"}`, `tags=["a","b"]`)...)
	require.NoError(t, err)
	recordID := strings.TrimSpace(out)

	out, err = runCLI(t, append(dirs, "record", "get", "--json", recordID)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"k": "v"`)
	assert.Contains(t, out, `"a"`)
}

func TestCLIExportToFile(t *testing.T) {
	dirs := cliDirs(t)

	_, err := runCLI(t, append(dirs, "init")...)
	require.NoError(t, err)
	_, err = runCLI(t, append(dirs, "field", "add", "--name", "owner", "--type", "string")...)
	require.NoError(t, err)
	_, err = runCLI(t, append(dirs, "record", "set", "--name", "locker", "owner=ada")...)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.sql")
	_, err = runCLI(t, append(dirs, "export", "--output", path)...)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INSERT INTO records")
	assert.Contains(t, string(data), "'ada'")
}

func TestCLIRecordSetBadValueSyntax(t *testing.T) {
	dirs := cliDirs(t)
	_, err := runCLI(t, append(dirs, "init")...)
	require.NoError(t, err)

	_, err = runCLI(t, append(dirs, "record", "set", "--name", "x", "no-equals-sign")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected field=value")
}
