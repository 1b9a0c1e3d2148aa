package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// cliEnv is an isolated data directory with a config file pointing at it.
type cliEnv struct {
	dir        string
	configPath string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "stockroom.yaml")
	content := "data_dir: " + dir + "\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return &cliEnv{dir: dir, configPath: configPath}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(newAppContext())
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err)
	return out
}
