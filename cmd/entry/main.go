package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/lwmacct/251219-go-pkg-logm/pkg/logm"

	app "github.com/lwmacct/260829-go-pkg-entry/internal/command/run"
	"github.com/lwmacct/260829-go-pkg-entry/pkg/handoff"
)

func main() {
	_ = logm.Init(logm.PresetAuto()...)

	err := app.Run(context.Background(), os.Args)
	if err == nil {
		return
	}

	// 下游命令的退出码忠实地作为包装进程自身的退出码
	var exitErr *handoff.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	slog.Error("应用程序运行失败", "error", err)
	os.Exit(1)
}
