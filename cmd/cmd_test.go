package cmd

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestBuiltinsCmd(t *testing.T) {
	out, _, err := runRoot(t, "builtins")

	assert.NoError(t, err)
	assert.Equal(t, "cd\nhelp\nhistory\npath\n", out)
}

func TestWhichCmd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bits aren't meaningful on windows")
	}

	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(first, "tool"), nil, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(second, "tool"), nil, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(second, "other"), nil, 0755))

	out, _, err := runRoot(t, "which", "--path", first+","+second, "tool", "other")
	assert.NoError(t, err)
	assert.Equal(t, first+"/tool\n"+second+"/other\n", out)

	out, errOut, err := runRoot(t, "which", "--path", first, "missing")
	assert.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "missing: command not found")
}

func TestInitRunAndReport(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("the interpreter uses slash separated paths")
	}

	cfgDir := t.TempDir()
	target := t.TempDir()

	_, _, err := runRoot(t, "--config", cfgDir, "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cfgDir, "config.yaml"))

	out, _, err := runRoot(t, "--config", cfgDir, "run", "-c", "path & cd "+target)
	require.NoError(t, err)
	assert.Equal(t, "Now in "+target+"\n", out)

	out, _, err = runRoot(t, "--config", cfgDir, "events", "report", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "builtin: 2")
	assert.Contains(t, out, "line: 1")
}

func TestReadlineHistoryLimit(t *testing.T) {
	cases := map[string]struct {
		limit    int
		expected int
	}{
		"unlimited": {0, math.MaxInt32},
		"bounded":   {25, 25},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, readlineHistoryLimit(tc.limit))
		})
	}
}
