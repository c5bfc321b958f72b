package pahole_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-kstructs/pahole"
)

// writeTool creates an executable shell script in a temp directory and
// returns its path.
func writeTool(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-pahole")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestCommand_Probe(t *testing.T) {
	tool := writeTool(t, `[ "$1" = "--version" ] && echo v1.27 && exit 0
exit 2
`)
	c := pahole.New(pahole.WithTool(tool))
	assert.NoError(t, c.Probe(context.Background()))
}

func TestCommand_ProbeMissingTool(t *testing.T) {
	c := pahole.New(pahole.WithTool(filepath.Join(t.TempDir(), "does-not-exist")))

	err := c.Probe(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pahole.ErrToolUnavailable)
}

func TestCommand_ProbeNonZeroExit(t *testing.T) {
	tool := writeTool(t, "exit 1\n")
	c := pahole.New(pahole.WithTool(tool))

	err := c.Probe(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pahole.ErrToolUnavailable)
}

func TestCommand_ProbeCustomVersionArg(t *testing.T) {
	tool := writeTool(t, `[ "$1" = "-V" ] && exit 0
exit 1
`)
	c := pahole.New(pahole.WithTool(tool), pahole.WithVersionArg("-V"))
	assert.NoError(t, c.Probe(context.Background()))
}

func TestCommand_Dump(t *testing.T) {
	tool := writeTool(t, `echo "struct $1 {"
echo "	/* size: 8 */"
echo "};"
`)
	c := pahole.New(pahole.WithTool(tool))

	out, err := c.Dump(context.Background(), "vmlinux")
	require.NoError(t, err)
	assert.Equal(t, "struct vmlinux {\n\t/* size: 8 */\n};\n", string(out))
}

func TestCommand_DumpPassesExtraArgs(t *testing.T) {
	tool := writeTool(t, `echo "$@"
`)
	c := pahole.New(pahole.WithTool(tool), pahole.WithArgs("--hex", "-E"))

	out, err := c.Dump(context.Background(), "/boot/vmlinux")
	require.NoError(t, err)
	assert.Equal(t, "--hex -E /boot/vmlinux\n", string(out))
}

func TestCommand_DumpNonZeroExit(t *testing.T) {
	tool := writeTool(t, `echo "partial"
echo "pahole: file not found" >&2
exit 3
`)
	c := pahole.New(pahole.WithTool(tool))

	out, err := c.Dump(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, pahole.ErrExecutionFailed)
	assert.False(t, errors.Is(err, pahole.ErrToolUnavailable))

	var execErr *pahole.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Equal(t, []string{"missing"}, execErr.Args)
	assert.Contains(t, execErr.Error(), "exited with status 3")
	assert.Contains(t, execErr.Error(), "pahole: file not found")
}

func TestCommand_DumpMissingTool(t *testing.T) {
	c := pahole.New(pahole.WithTool(filepath.Join(t.TempDir(), "nope")))

	_, err := c.Dump(context.Background(), "vmlinux")
	require.Error(t, err)
	assert.ErrorIs(t, err, pahole.ErrToolUnavailable)
}

func TestNew_Defaults(t *testing.T) {
	c := pahole.New(pahole.WithTool(""))
	assert.Equal(t, pahole.DefaultTool, c.Tool())
}
