// Package command 提供入口包装器的命令行功能。
package command

import "github.com/lwmacct/260829-go-pkg-entry/internal/config"

// Defaults 默认配置 - 单一来源 (Single Source of Truth)
var Defaults = config.DefaultConfig()
