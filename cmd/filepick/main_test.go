package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv writes a config file that keeps logs inside a temp directory.
func testEnv(t *testing.T, ignore string) (root, cfgPath string) {
	t.Helper()
	root = t.TempDir()
	cfgPath = filepath.Join(root, "config.yaml")
	cfg := "root: " + root + "\nwatch: false\nlogging:\n  file: " + filepath.Join(root, "filepick.log") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	if ignore != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(ignore), 0o644))
	}
	return root, cfgPath
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckCommand(t *testing.T) {
	_, cfgPath := testEnv(t, "# secrets\n*.env\nsecrets/*\n")

	stdout, stderr, err := execute(t, "check", "--config", cfgPath, "main.go", ".env", "secrets/key.pem", "web/secrets/key.pem")
	require.NoError(t, err)
	assert.Equal(t, ".env\t*.env\nsecrets/key.pem\tsecrets/*\n", stdout)
	assert.Contains(t, stderr, "2 patterns")
	assert.Contains(t, stderr, "2 of 4 paths ignored")
}

func TestCheckCommandAll(t *testing.T) {
	_, cfgPath := testEnv(t, "*.log\n")

	stdout, _, err := execute(t, "check", "--all", "--config", cfgPath, "app.log", "main.go")
	require.NoError(t, err)
	assert.Equal(t, "app.log\t*.log\nmain.go\t-\n", stdout)
}

func TestCheckCommandFromFile(t *testing.T) {
	root, cfgPath := testEnv(t, "dist/*\n")
	list := filepath.Join(root, "paths.txt")
	require.NoError(t, os.WriteFile(list, []byte("src/a.go\r\n\ndist/app.js\n"), 0o644))

	stdout, _, err := execute(t, "check", "--config", cfgPath, "--from", list)
	require.NoError(t, err)
	assert.Equal(t, "dist/app.js\tdist/*\n", stdout)
}

func TestCheckCommandIgnoreFileFlag(t *testing.T) {
	root, cfgPath := testEnv(t, "")
	custom := filepath.Join(root, "custom.ignore")
	require.NoError(t, os.WriteFile(custom, []byte("*.go\n"), 0o644))

	stdout, _, err := execute(t, "check", "--config", cfgPath, "--ignore-file", custom, "main.go", "README.md")
	require.NoError(t, err)
	assert.Equal(t, "main.go\t*.go\n", stdout)
}

func TestThemesCommand(t *testing.T) {
	_, cfgPath := testEnv(t, "")

	stdout, _, err := execute(t, "themes", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "* default")
	assert.Contains(t, stdout, "  ocean")
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 6)
}

func TestThemesSet(t *testing.T) {
	root, cfgPath := testEnv(t, "")

	_, stderr, err := execute(t, "themes", "--config", cfgPath, "--set", "ocean", "--root", "/elsewhere")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Theme set to ocean")

	stdout, _, err := execute(t, "themes", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "* ocean")

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "root: "+root, "flag overrides are not saved")

	_, _, err = execute(t, "themes", "--config", cfgPath, "--set", "neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}

func TestInvalidDefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "filepick")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("layout:\n  max_columns: 0\n"), 0o644))

	_, _, err := execute(t, "themes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_columns")
}

func TestInvalidConfigFile(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("read_concurrency: 0\n"), 0o644))

	_, _, err := execute(t, "themes", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read_concurrency")
}

func TestCollectPaths(t *testing.T) {
	t.Run("args only", func(t *testing.T) {
		o := &rootOptions{stdin: strings.NewReader("ignored.go\n")}
		paths, err := o.collectPaths([]string{"a.go", "b.go"}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "b.go"}, paths)
	})

	t.Run("piped stdin without args", func(t *testing.T) {
		o := &rootOptions{stdin: strings.NewReader("a.go\n  b.go  \n")}
		paths, err := o.collectPaths(nil, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "b.go"}, paths)
	})

	t.Run("terminal stdin is not read", func(t *testing.T) {
		o := &rootOptions{stdin: strings.NewReader("a.go\n")}
		paths, err := o.collectPaths(nil, true)
		require.NoError(t, err)
		assert.Empty(t, paths)
	})

	t.Run("from dash appends stdin", func(t *testing.T) {
		o := &rootOptions{from: "-", stdin: strings.NewReader("c.go\n")}
		paths, err := o.collectPaths([]string{"a.go"}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "c.go"}, paths)
	})

	t.Run("missing from file", func(t *testing.T) {
		o := &rootOptions{from: filepath.Join(t.TempDir(), "nope.txt")}
		_, err := o.collectPaths(nil, true)
		assert.Error(t, err)
	})
}

func TestWriteSelection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSelection(&buf, "", []string{"a.go", "dir/b.go"}))
	assert.Equal(t, "a.go\ndir/b.go\n", buf.String())

	buf.Reset()
	require.NoError(t, writeSelection(&buf, "", nil))
	assert.Empty(t, buf.String())

	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeSelection(&buf, path, []string{"x"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
}
