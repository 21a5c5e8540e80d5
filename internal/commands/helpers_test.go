package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simplefinance/simplefinance/internal/commands"
)

// runSimplefinance executes the CLI in-process and returns combined output.
func runSimplefinance(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// newProject initializes dir with the test category fixture and returns the
// config path.
func newProject(t *testing.T) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	_, err := runSimplefinance(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile("../../testdata/categories.json")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.json"), data, 0o644))

	return dir, filepath.Join(dir, "simplefinance.yaml")
}

const statementFile = "../../testdata/statement.csv"
