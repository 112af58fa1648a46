package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs garage with args from an empty working directory.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func setup(t *testing.T) (dir, db string) {
	t.Helper()
	dir = t.TempDir()
	t.Chdir(dir)
	return dir, filepath.Join(dir, "data", "garage.db")
}

func TestVersion(t *testing.T) {
	setup(t)
	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "garage v"+Version)
}

func TestInit(t *testing.T) {
	_, db := setup(t)

	res := execute(t, "", "init", "--db", db)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Initialized database at "+db)

	_, err := os.Stat(db)
	require.NoError(t, err)

	// Running it again keeps the database usable.
	res = execute(t, "", "init", "--db", db)
	require.NoError(t, res.err)
}

func TestShell_Scripted(t *testing.T) {
	_, db := setup(t)

	script := strings.Join([]string{
		"1",
		"b", "Alice",
		"e", "1",
		"b", "Toyota", "Corolla", "2020",
		"bck",
		"b", "Bob",
		"bck",
		"0",
	}, "\n") + "\n"

	res := execute(t, script, "shell", "--db", db)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Owner created.")
	assert.Contains(t, res.stdout, "Car added.")
	assert.Contains(t, res.stdout, "Goodbye!")

	res = execute(t, "", "list", "--db", db)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Alice")
	assert.Contains(t, res.stdout, "Corolla")
	assert.Contains(t, res.stdout, "Bob")
	assert.Less(t, strings.Index(res.stdout, "Alice"), strings.Index(res.stdout, "Bob"))
}

func TestRoot_RunsShell(t *testing.T) {
	_, db := setup(t)

	res := execute(t, "", "--db", db)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "=== Owners & Cars CLI ===")
	assert.Contains(t, res.stdout, "Goodbye!")
}

func TestList_Empty(t *testing.T) {
	_, db := setup(t)

	res := execute(t, "", "list", "--db", db)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No owners yet.")
}

func TestReset(t *testing.T) {
	_, db := setup(t)

	res := execute(t, "1\nb\nAlice\nbck\n0\n", "--db", db)
	require.NoError(t, res.err)

	res = execute(t, "", "reset", "--db", db)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--yes")

	res = execute(t, "", "list", "--db", db)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Alice")

	res = execute(t, "", "reset", "--yes", "--db", db)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Reset database at "+db)

	res = execute(t, "", "list", "--db", db)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No owners yet.")
}

func TestMetricsFile(t *testing.T) {
	dir, db := setup(t)
	metricsPath := filepath.Join(dir, "garage.prom")

	res := execute(t, "1\nb\nAlice\nb\nAlice\nbck\n0\n", "--db", db, "--metrics-file", metricsPath)
	require.NoError(t, res.err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "garage_store_operations_total")
	assert.Contains(t, out, `entity="owner",op="create",result="ok"`)
	assert.Contains(t, out, `entity="owner",op="create",result="constraint"`)
	assert.Contains(t, out, "garage_store_operation_duration_seconds")
}

func TestConfigFileAndLogLevel(t *testing.T) {
	dir, _ := setup(t)
	db := filepath.Join(dir, "from-config.db")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garage.yaml"), []byte("db_path: "+db+"\nlog_level: info\n"), 0o600))

	res := execute(t, "", "init")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, db)
	assert.Contains(t, res.stderr, "SQLite store initialized")

	res = execute(t, "", "init", "--log-level", "loud")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "log_level")
}
