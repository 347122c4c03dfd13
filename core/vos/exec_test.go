package vos

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts aren't executable on windows")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}

	name = filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(name, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return name
}

func TestOSExecutor(t *testing.T) {
	dir := t.TempDir()

	t.Run("exit status", func(t *testing.T) {
		script := writeScript(t, dir, "fail", "exit 3")

		status, err := OSExecutor{}.Run(&Cmd{Path: script, Args: []string{"fail"}, Dir: dir})
		assert.NoError(t, err)
		assert.Equal(t, 3, status)
	})

	t.Run("args and dir", func(t *testing.T) {
		script := writeScript(t, dir, "show", `echo "$0 $1 $(pwd)"`)
		out := &bytes.Buffer{}

		status, err := OSExecutor{}.Run(&Cmd{
			Path:   script,
			Args:   []string{"show", "hi"},
			Dir:    dir,
			Stdout: out,
		})
		assert.NoError(t, err)
		assert.Equal(t, 0, status)

		realDir, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		assert.Contains(t, []string{script + " hi " + dir + "\n", script + " hi " + realDir + "\n"}, out.String())
	})

	t.Run("spawn failure", func(t *testing.T) {
		status, err := OSExecutor{}.Run(&Cmd{
			Path: filepath.Join(dir, "does-not-exist"),
			Args: []string{"does-not-exist"},
		})
		assert.ErrorIs(t, err, ErrSpawn)
		assert.Equal(t, -1, status)
	})
}

func TestSyncWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewSyncWriter(buf)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			w.Write([]byte("line\n"))
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	assert.Equal(t, bytes.Repeat([]byte("line\n"), 10), buf.Bytes())
}

func TestNewVIOAdapter_nilStreams(t *testing.T) {
	vio := NewNullIO()

	n, err := vio.Stdout().Write([]byte("discarded"))
	assert.NoError(t, err)
	assert.Equal(t, 9, n)

	_, err = vio.Stdin().Read(make([]byte, 1))
	assert.ErrorIs(t, err, os.ErrClosed)
}
