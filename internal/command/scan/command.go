// Package scan 提供只读的检查命令。
package scan

import (
	"context"
	"fmt"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260829-go-pkg-entry/internal/command"
	"github.com/lwmacct/260829-go-pkg-entry/internal/config"
	"github.com/lwmacct/260829-go-pkg-entry/pkg/materialize"
)

// Report 扫描结果
type Report struct {
	Root  string              `koanf:"root"`
	Files []materialize.Match `koanf:"files"`
}

// Command 扫描命令：列出命中 glob 的文件及各自包含的占位符，不修改任何文件。
var Command = &cli.Command{
	Name:   "scan",
	Usage:  "列出命中 glob 的配置文件及其占位符（不修改文件）",
	Action: action,
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
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "输出格式: text, json, yaml",
		},
	},
}

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd, version.GetAppRawName())
	if err != nil {
		return err
	}

	m := materialize.New(cfg.Root, materialize.WithPatterns(cfg.Globs))
	matches, err := m.Scan()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	report := Report{Root: cfg.Root, Files: matches}

	switch format := cmd.String("format"); format {
	case "text":
		for _, match := range matches {
			fmt.Printf("%s\n", match.Path)
			for _, name := range match.Placeholders {
				fmt.Printf("  ${%s}\n", name)
			}
		}
		return nil
	case "json":
		return printMarshalled(report, kjson.Parser())
	case "yaml":
		return printMarshalled(report, yaml.Parser())
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

// printMarshalled 用指定解析器序列化报告并打印。
func printMarshalled(report Report, parser koanf.Parser) error {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(report, "koanf"), nil); err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	out, err := k.Marshal(parser)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
