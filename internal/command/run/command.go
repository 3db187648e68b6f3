// Package run 提供入口命令：物化配置后移交下游命令。
package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260829-go-pkg-entry/internal/command"
	"github.com/lwmacct/260829-go-pkg-entry/internal/command/scan"
	"github.com/lwmacct/260829-go-pkg-entry/internal/config"
	"github.com/lwmacct/260829-go-pkg-entry/pkg/handoff"
	"github.com/lwmacct/260829-go-pkg-entry/pkg/materialize"
)

// Command 入口命令
//
// 用法：entry [flags] -- command [args...]
// 先渲染 root 下命中 glob 的配置文件，再把控制权移交给尾随命令。
var Command = &cli.Command{
	Name:      "entry",
	Usage:     "渲染配置文件中的环境变量占位符，然后移交给下游命令",
	ArgsUsage: "-- command [args...]",
	Action:    action,
	Commands:  []*cli.Command{version.Command, scan.Command},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Value:   command.Defaults.Root,
			Usage:   "配置文件扫描根目录",
		},
		&cli.StringSliceFlag{
			Name:    "globs",
			Aliases: []string{"g"},
			Value:   command.Defaults.Globs,
			Usage:   "文件名 glob 模式，可多次指定",
		},
	},
}

// Run 在第一个 "--" 处切分参数后执行入口命令。
//
// 终止符之后的部分不参与 CLI 解析，原封不动地留给下游命令，
// 因此与子命令同名的下游命令（如 "scan"）不会被误派发。
func Run(ctx context.Context, args []string) error {
	head, tail := splitTerminator(args)
	downstreamArgs = tail

	return Command.Run(ctx, head)
}

// downstreamArgs 终止符之后的下游命令参数，由 [Run] 填充。
var downstreamArgs []string

// splitTerminator 在第一个 "--" 处切分参数，终止符本身不保留。
func splitTerminator(args []string) (head, tail []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}

	return args, nil
}

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := config.Load(cmd, version.GetAppRawName())
	if err != nil {
		return err
	}

	// 没有终止符时退回到 CLI 解析剩下的位置参数
	argv := downstreamArgs
	if len(argv) == 0 {
		argv = cmd.Args().Slice()
	}
	if len(argv) == 0 {
		return errors.New("missing downstream command, usage: entry [flags] -- command [args...]")
	}

	m := materialize.New(cfg.Root, materialize.WithPatterns(cfg.Globs))
	if err := m.Run(); err != nil {
		return fmt.Errorf("config materialization failed: %w", err)
	}

	slog.Debug("Handing off to downstream command", "argv", argv)
	return handoff.Takeover(argv, os.Environ())
}
