package handoff

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
)

// ExitError 携带下游命令的退出码。
//
// 包装进程应以 e.Code 作为自身的退出码结束，
// 使整个容器的退出状态与下游命令一致。
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("downstream command exited with code %d", e.Code)
}

// Takeover 将控制权移交给下游命令。
//
// 在支持的平台上直接替换当前进程镜像（unix exec 语义），
// 成功时永不返回；不支持进程替换的平台退化为 [Run] 的
// spawn-and-wait 模式。argv[0] 通过 PATH 查找。
func Takeover(argv []string, env []string) error {
	if len(argv) == 0 {
		return errors.New("no downstream command given")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("look up downstream command: %w", err)
	}

	err = replaceProcess(path, argv, env)
	if errors.Is(err, errors.ErrUnsupported) {
		return Run(argv, env)
	}

	// 进程替换成功时不会执行到这里
	return fmt.Errorf("exec %s: %w", path, err)
}

// Run 以 spawn-and-wait 方式运行下游命令。
//
// 子进程继承标准输入输出，包装进程收到的信号全部转发给子进程。
// 子进程非零退出时返回 [*ExitError]；因信号终止映射为 128+信号值。
func Run(argv []string, env []string) error {
	if len(argv) == 0 {
		return errors.New("no downstream command given")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start downstream command: %w", err)
	}

	sigCh := make(chan os.Signal, 16)
	signal.Notify(sigCh)
	defer signal.Stop(sigCh)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case sig := <-sigCh:
			_ = cmd.Process.Signal(sig)
		case err := <-done:
			if err == nil {
				return nil
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return &ExitError{Code: exitCode(exitErr.ProcessState)}
			}

			return fmt.Errorf("wait downstream command: %w", err)
		}
	}
}
