// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - config.yaml / config/config.yaml / /etc/entry/config.yaml
//  3. 内联 YAML - 环境变量 ENTRY_CONFIG
//  4. 环境变量 - 前缀 ENTRY_，另有 TEMPLATE_GLOBS 直接绑定到 globs
//  5. CLI flags - 最高优先级
package config

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260829-go-pkg-entry/pkg/config"
	"github.com/lwmacct/260829-go-pkg-entry/pkg/materialize"
)

// EnvGlobs 承载冒号分隔 glob 列表的环境变量名。
// 未设置或为空时使用默认模式 *.yml:*.yaml。
const EnvGlobs = "TEMPLATE_GLOBS"

// Config 应用配置
type Config struct {
	Root  string   `koanf:"root"  desc:"配置文件扫描根目录"`
	Globs []string `koanf:"globs" desc:"文件名 glob 模式列表，仅与文件 base name 匹配"`
}

// DefaultConfig 返回默认配置
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Root:  ".",
		Globs: materialize.DefaultPatterns(),
	}
}

func Load(cmd *cli.Command, appName string, opts ...config.Option) (*Config, error) {
	return config.Load(
		DefaultConfig(),
		append([]config.Option{
			config.WithCommand(cmd),
			config.WithConfigPaths(config.DefaultPaths(appName)...),
			config.WithConfigEnv("ENTRY_CONFIG"),
			config.WithEnvPrefix("ENTRY_"),
			config.WithEnvSliceBinding(EnvGlobs, "globs", materialize.ParseGlobs),
		}, opts...)...,
	)
}
