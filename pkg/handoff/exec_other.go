//go:build !unix

package handoff

import (
	"errors"
	"os"
)

// replaceProcess 在不支持 exec 语义的平台上总是返回 ErrUnsupported，
// [Takeover] 据此退化为 spawn-and-wait。
func replaceProcess(path string, argv []string, env []string) error {
	return errors.ErrUnsupported
}

func exitCode(ps *os.ProcessState) int {
	return ps.ExitCode()
}
