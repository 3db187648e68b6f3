//go:build unix

package handoff

import (
	"os"
	"syscall"
)

// replaceProcess 用下游命令替换当前进程镜像。
//
// syscall.Exec 成功时不返回；任何返回值都是失败。
func replaceProcess(path string, argv []string, env []string) error {
	if env == nil {
		env = os.Environ()
	}

	return syscall.Exec(path, argv, env)
}

// exitCode 从进程状态提取退出码，信号终止映射为 128+信号值。
func exitCode(ps *os.ProcessState) int {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}

	return ps.ExitCode()
}
