// Package config 提供通用的配置加载功能，可被外部项目复用。
//
// # 特性
//
// 使用泛型支持任意配置结构体类型，配置加载优先级 (从低到高)：
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 WithConfigPaths 选项设置
//  3. 内联 YAML - 通过 WithConfigEnv 选项从环境变量读取
//  4. 环境变量(前缀) - 通过 WithEnvPrefix 选项启用
//  5. 环境变量(绑定) - 通过 WithEnvBinding / WithEnvSliceBinding 设置
//  6. CLI flags - 通过 WithCommand 选项设置，最高优先级
//
// # 快速开始
//
// 定义配置结构体，使用 koanf 和 desc 标签：
//
//	type Config struct {
//	    Root  string   `koanf:"root"  desc:"扫描根目录"`
//	    Globs []string `koanf:"globs" desc:"文件名 glob 模式"`
//	}
//
// 加载配置（使用函数选项模式）：
//
//	cfg, err := config.Load(DefaultConfig(),
//	    config.WithCommand(cmd),
//	    config.WithConfigPaths(config.DefaultPaths("myapp")...),
//	    config.WithEnvPrefix("MYAPP_"),
//	)
//
// # 环境变量(前缀)
//
// 通过 [WithEnvPrefix] 启用环境变量支持，命名规则：
//   - 前缀 + 大写的 koanf key
//   - 点号 (.) 转为下划线 (_)
//
// 示例 (前缀为 "MYAPP_")：
//   - MYAPP_ROOT → root
//   - MYAPP_SERVER_URL → server.url
//
// # 环境变量(绑定)
//
// 无法通过前缀规则映射的变量名使用显式绑定：
//
//	config.WithEnvBinding("REDIS_URL", "redis.url")
//	config.WithEnvSliceBinding("TEMPLATE_GLOBS", "globs", materialize.ParseGlobs)
//
// 切片绑定把变量值交给调用方提供的切分函数，
// 变量未设置、为空或切分结果为空时绑定不生效，保留更低优先级的取值。
//
// # 生成配置示例
//
// 使用 [ExampleYAML] 根据配置结构体生成带注释的 YAML 示例文件，
// 注释来自 desc tag。测试辅助见 [ConfigTestHelper]。
package config
