package materialize

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lwmacct/260829-go-pkg-entry/pkg/envsub"
)

// DefaultPatterns 默认的文件名 glob 模式。
func DefaultPatterns() []string {
	return []string{"*.yml", "*.yaml"}
}

// ParseGlobs 解析冒号分隔的 glob 模式列表。
//
// 空白段被丢弃；输入为空或只含分隔符时返回 nil。
// 对应环境变量 TEMPLATE_GLOBS 的取值格式，如 "*.yml:*.yaml:*.json"。
func ParseGlobs(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ":") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}

	return patterns
}

// Match 描述一个命中 glob 模式的文件及其包含的占位符。
type Match struct {
	Path         string   `koanf:"path"`
	Placeholders []string `koanf:"placeholders"`
}

// Materializer 在目录树内就地渲染配置文件。
//
// 扫描 root 下任意深度的常规文件，文件名命中任一模式的文件
// 会被读取、展开 ${NAME} 占位符后原子地写回原路径。
type Materializer struct {
	root     string
	patterns []string
	env      map[string]string
}

// Option 配置 Materializer 的函数选项。
type Option func(*Materializer)

// WithPatterns 设置文件名 glob 模式，仅与文件 base name 匹配。
func WithPatterns(patterns []string) Option {
	return func(m *Materializer) {
		m.patterns = patterns
	}
}

// WithEnv 设置占位符查找表，默认为当前进程环境的快照。
func WithEnv(env map[string]string) Option {
	return func(m *Materializer) {
		m.env = env
	}
}

// New 创建 Materializer。
func New(root string, opts ...Option) *Materializer {
	m := &Materializer{
		root:     root,
		patterns: DefaultPatterns(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.env == nil {
		m.env = envsub.Environ()
	}

	return m
}

// Run 执行一次完整的渲染。
//
// 先枚举全部命中文件，再逐个渲染。单文件通过写临时文件后 rename
// 保证原子性；首个失败立即中止整次运行（fail-fast），
// 此前已替换的文件保持替换后的状态。
//
// 缺失的环境变量不是错误，对应占位符替换为空字符串。
// 模式列表为空时不触碰任何文件，直接成功。
func (m *Materializer) Run() error {
	matches, err := m.collect()
	if err != nil {
		return err
	}

	for _, path := range matches {
		if err := m.renderFile(path); err != nil {
			return err
		}
		slog.Debug("Rendered config file", "path", path)
	}

	slog.Info("Config materialization done", "root", m.root, "files", len(matches))
	return nil
}

// Scan 只读地枚举命中文件及各自包含的占位符，不修改任何文件。
func (m *Materializer) Scan() ([]Match, error) {
	paths, err := m.collect()
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		matches = append(matches, Match{
			Path:         path,
			Placeholders: envsub.Placeholders(string(data)),
		})
	}

	return matches, nil
}

// collect 校验 root 和模式，返回所有命中的文件路径。
//
// 每个文件只被 WalkDir 访问一次，命中任一模式即入选，
// 因此同一路径不会重复出现。
func (m *Materializer) collect() ([]string, error) {
	info, err := os.Stat(m.root)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", m.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: not a directory", m.root)
	}

	for _, pattern := range m.patterns {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
	}

	if len(m.patterns) == 0 {
		return nil, nil
	}

	var matches []string
	err = filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		base := filepath.Base(path)
		for _, pattern := range m.patterns {
			if ok, _ := filepath.Match(pattern, base); ok {
				matches = append(matches, path)
				return nil
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// renderFile 渲染单个文件：读取、展开占位符、原子写回。
//
// 先写入同目录下的临时文件再 rename 覆盖原路径，
// 中途失败不会让原文件处于半写状态；失败时清理临时文件。
func (m *Materializer) renderFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	rendered := envsub.Expand(string(data), m.env)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(rendered); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", path, err)
	}

	return nil
}
