// Author: lwmacct (https://github.com/lwmacct)
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"
)

// Option 配置加载选项。
type Option func(*options)

type options struct {
	cmd         *cli.Command
	configPaths []string
	configEnv   string
	envPrefix   string
	bindings    []binding
}

// binding 一条环境变量到配置 key 的绑定。
// split 非 nil 时，环境变量的值经其切分为字符串切片。
type binding struct {
	envName string
	key     string
	split   func(string) []string
}

// WithCommand 设置 CLI 命令，用户明确指定的 flags 拥有最高优先级。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) { o.cmd = cmd }
}

// WithConfigPaths 设置配置文件搜索路径，按顺序找到第一个即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) { o.configPaths = paths }
}

// WithConfigEnv 设置承载内联 YAML 配置的环境变量名。
//
// 变量非空时，其内容作为一份完整的 YAML 配置参与合并，
// 优先级高于配置文件。适合不方便挂载文件的容器环境。
func WithConfigEnv(envName string) Option {
	return func(o *options) { o.configEnv = envName }
}

// WithEnvPrefix 启用前缀式环境变量覆盖。
//
// 命名规则：前缀 + 大写的 koanf key，点号转下划线。
// 如前缀 "APP_" 时，APP_SERVER_URL → server.url。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// WithEnvBinding 绑定单个环境变量到指定配置 key。
//
// 用于无法通过前缀规则映射的变量名（如第三方约定的变量）。
// 优先级高于 WithEnvPrefix 的自动映射。
func WithEnvBinding(envName, key string) Option {
	return func(o *options) {
		o.bindings = append(o.bindings, binding{envName: envName, key: key})
	}
}

// WithEnvSliceBinding 绑定单个环境变量到切片类型的配置 key，
// 值由 split 函数切分。变量未设置、为空或切分结果为空时绑定不生效，
// 保留更低优先级的取值。
func WithEnvSliceBinding(envName, key string, split func(string) []string) Option {
	return func(o *options) {
		o.bindings = append(o.bindings, binding{envName: envName, key: key, split: split})
	}
}

// DefaultPaths 返回默认配置文件搜索路径
// appName 可选，若提供则包含用户主目录和系统配置目录
func DefaultPaths(appName ...string) []string {
	paths := []string{
		"config.yaml",
		"config/config.yaml",
	}

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	return paths
}

// Load 加载配置，按优先级合并 (从低到高)：
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - WithConfigPaths，按顺序找到第一个即停止
//  3. 内联 YAML - WithConfigEnv 指定的环境变量
//  4. 环境变量(前缀) - WithEnvPrefix
//  5. 环境变量(绑定) - WithEnvBinding / WithEnvSliceBinding
//  6. CLI flags - WithCommand，仅用户明确指定的 flag 生效
//
// 泛型参数 T 为配置结构体类型，必须使用 koanf tag 标记字段。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	configLoaded := false
	for _, path := range o.configPaths {
		if err := k.Load(file.Provider(path), yaml.Parser()); err == nil {
			slog.Debug("Loaded config from file", "path", path)
			configLoaded = true
			break
		}
	}
	if !configLoaded {
		slog.Debug("No config file found, using defaults")
	}

	if o.configEnv != "" {
		if raw := os.Getenv(o.configEnv); raw != "" {
			if err := k.Load(rawbytes.Provider([]byte(raw)), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to parse inline config from %s: %w", o.configEnv, err)
			}
			slog.Debug("Loaded inline config", "env", o.configEnv)
		}
	}

	if o.envPrefix != "" {
		if err := k.Load(confmap.Provider(collectPrefixedEnv(o.envPrefix), "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load env overrides: %w", err)
		}
	}

	if m := collectBoundEnv(o.bindings); len(m) > 0 {
		if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load env bindings: %w", err)
		}
	}

	if o.cmd != nil {
		applyCommandFlags(o.cmd, k, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// envKeyDecoder 返回将环境变量名解码为 koanf key 的函数。
// 规则：去掉前缀、转小写、下划线转点号。
func envKeyDecoder(prefix string) func(string) string {
	return func(name string) string {
		key := strings.TrimPrefix(name, prefix)
		key = strings.ToLower(key)

		return strings.ReplaceAll(key, "_", ".")
	}
}

// collectPrefixedEnv 收集带指定前缀的环境变量，解码为扁平配置 map。
func collectPrefixedEnv(prefix string) map[string]any {
	decode := envKeyDecoder(prefix)

	m := make(map[string]any)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		if key := decode(name); key != "" {
			m[key] = value
		}
	}

	return m
}

// collectBoundEnv 收集显式绑定的环境变量，未设置或为空的绑定不生效。
func collectBoundEnv(bindings []binding) map[string]any {
	m := make(map[string]any)
	for _, b := range bindings {
		value := os.Getenv(b.envName)
		if value == "" {
			continue
		}
		if b.split == nil {
			m[b.key] = value
			continue
		}
		if parts := b.split(value); len(parts) > 0 {
			m[b.key] = parts
		}
	}

	return m
}

// applyCommandFlags 递归遍历配置结构体，把用户明确指定的 CLI flags
// 应用到 koanf 实例。koanf key 的点号和下划线转为连字符得到 flag 名，
// 如 server.url → --server-url。
func applyCommandFlags(cmd *cli.Command, k *koanf.Koanf, typ reflect.Type, prefix string) {
	for i := range typ.NumField() {
		field := typ.Field(i)

		koanfKey := field.Tag.Get("koanf")
		if koanfKey == "" {
			continue
		}

		fullKey := koanfKey
		if prefix != "" {
			fullKey = prefix + "." + koanfKey
		}

		if field.Type.Kind() == reflect.Struct &&
			field.Type != reflect.TypeFor[time.Duration]() &&
			field.Type != reflect.TypeFor[time.Time]() {
			applyCommandFlags(cmd, k, field.Type, fullKey)
			continue
		}

		flagName := strings.ReplaceAll(fullKey, ".", "-")
		flagName = strings.ReplaceAll(flagName, "_", "-")
		if !cmd.IsSet(flagName) {
			continue
		}

		setFlagValue(cmd, k, fullKey, flagName, field.Type)
	}
}

// setFlagValue 根据字段类型从 CLI 取值并写入 koanf。
func setFlagValue(cmd *cli.Command, k *koanf.Koanf, koanfKey, flagName string, fieldType reflect.Type) {
	if fieldType == reflect.TypeFor[time.Duration]() {
		_ = k.Set(koanfKey, cmd.Duration(flagName))
		return
	}

	switch fieldType.Kind() {
	case reflect.String:
		_ = k.Set(koanfKey, cmd.String(flagName))
	case reflect.Bool:
		_ = k.Set(koanfKey, cmd.Bool(flagName))
	case reflect.Int:
		_ = k.Set(koanfKey, cmd.Int(flagName))
	case reflect.Int64:
		_ = k.Set(koanfKey, cmd.Int64(flagName))
	case reflect.Float64:
		_ = k.Set(koanfKey, cmd.Float64(flagName))
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			_ = k.Set(koanfKey, cmd.StringSlice(flagName))
		}
	case reflect.Map:
		if fieldType.Key().Kind() == reflect.String && fieldType.Elem().Kind() == reflect.String {
			_ = k.Set(koanfKey, cmd.StringMap(flagName))
		}
	}
}
