package handoff_test

import (
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/lwmacct/260829-go-pkg-entry/pkg/handoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("测试依赖 sh，跳过 windows")
	}
}

func TestRun_ExitZero(t *testing.T) {
	requireShell(t)

	err := handoff.Run([]string{"sh", "-c", "exit 0"}, os.Environ())
	assert.NoError(t, err)
}

func TestRun_NonZeroExitCode(t *testing.T) {
	requireShell(t)

	err := handoff.Run([]string{"sh", "-c", "exit 3"}, os.Environ())
	require.Error(t, err)

	var exitErr *handoff.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
}

// TestRun_PassesEnvironment 验证下游命令收到的是传入的环境。
func TestRun_PassesEnvironment(t *testing.T) {
	requireShell(t)

	err := handoff.Run(
		[]string{"sh", "-c", `[ "$HANDOFF_PROBE" = present ]`},
		append(os.Environ(), "HANDOFF_PROBE=present"),
	)
	assert.NoError(t, err)
}

func TestRun_EmptyArgv(t *testing.T) {
	err := handoff.Run(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no downstream command")
}

// TestRun_CommandNotStartable 验证无法启动的命令返回启动错误而非 ExitError。
func TestRun_CommandNotStartable(t *testing.T) {
	err := handoff.Run([]string{"/nonexistent-binary-for-test"}, nil)
	require.Error(t, err)

	var exitErr *handoff.ExitError
	assert.False(t, errors.As(err, &exitErr), "start failure should not carry an exit code")
	assert.Contains(t, err.Error(), "start downstream command")
}

func TestTakeover_EmptyArgv(t *testing.T) {
	err := handoff.Takeover(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no downstream command")
}

func TestTakeover_CommandNotFound(t *testing.T) {
	err := handoff.Takeover([]string{"definitely-not-a-real-command-xyz"}, os.Environ())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "look up downstream command")
}

func TestExitError_Error(t *testing.T) {
	err := &handoff.ExitError{Code: 7}
	assert.Equal(t, "downstream command exited with code 7", err.Error())
}
