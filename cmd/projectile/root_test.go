package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/opd-ai/go-projectile/pkg/session"
)

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "projectile "+Version)
}

func TestConfigCmd_InitAndShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projectile.json")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"gravity": 9.8`)

	yaml := filepath.Join(dir, "moon.yaml")
	require.NoError(t, os.WriteFile(yaml, []byte("physics:\n  gravity: 1.62\n"), 0o644))
	out, err = execute(t, "--config", yaml, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"gravity": 1.62`)

	out, err = execute(t, "--config", yaml, "--gravity", "3", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"gravity": 3`, "flags override the file")
}

func TestRootCmd_RejectsBadConfig(t *testing.T) {
	_, err := execute(t, "--gravity", "-1", "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "config", "show")
	require.Error(t, err)
}

func TestTraceCmd_PrintsSamplesAndPlot(t *testing.T) {
	out, err := execute(t, "trace", "--no-color", "-l", "20,45,0", "--interval", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "#1: v0=20 (m/s), θ: 45°, h0=0  t_flight=2.89 s")
	assert.Contains(t, out, "#1 lands at t=2.89 s, range 40.82 m")
	assert.Contains(t, out, "Complete!")
	assert.Contains(t, out, "+"+strings.Repeat("-", 80)+"+")

	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		if f := strings.Fields(line); len(f) == 7 && f[1] == "#1" {
			rows = append(rows, f)
		}
	}
	require.GreaterOrEqual(t, len(rows), 3, "samples at t = 0, 1, 2 and beyond")
	assert.Equal(t, []string{"0.00", "#1", "0.00", "0.00", "20.00", "-6.93", "6.93"}, rows[0])
	assert.Equal(t, "1.00", rows[1][0])
}

func TestTraceCmd_InfiniteLaunchNeverLands(t *testing.T) {
	out, err := execute(t, "trace", "--no-color", "-l", "Infinity,45,0", "-l", "20,45,0", "--interval", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 never lands")
	assert.Contains(t, out, "#2 lands at t=2.89 s")
	assert.Contains(t, out, "Complete!")
}

func TestTraceCmd_Errors(t *testing.T) {
	out, err := execute(t, "trace", "--no-color")
	require.Error(t, err)
	assert.Contains(t, out, session.NoProjectilesWarning)

	_, err = execute(t, "trace", "-l", "20,45")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want v0,angle,h0")

	_, err = execute(t, "trace", "--strict", "-l", "fast,45,0")
	require.Error(t, err, "strict mode rejects non-numeric input")

	_, err = execute(t, "trace", "-l", "20,45,0", "--interval", "0")
	require.Error(t, err)
}

func TestTraceCmd_RealtimeStopsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	out, err := execute(t, "trace", "--no-color", "--realtime", "--plot=false", "-l", "10,0,0")
	require.NoError(t, err)
	assert.Contains(t, out, "Complete!")
	assert.NotContains(t, out, "+---")
}
