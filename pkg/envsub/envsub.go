package envsub

import (
	"os"
	"strings"
)

// Expand 展开文本中所有 ${NAME} 形式的占位符。
//
// NAME 为字母、数字、下划线组成的标识符，在 env 中查找：
//   - 存在时替换为对应值
//   - 不存在时替换为空字符串（缺失的变量不是错误）
//
// 畸形或未闭合的 ${ 序列（如 "${", "${}", "${FOO-BAR}"）原样保留，
// 占位符之外的内容逐字节不变。
func Expand(text string, env map[string]string) string {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		j := strings.Index(text[i:], "${")
		if j < 0 {
			b.WriteString(text[i:])
			break
		}
		j += i
		b.WriteString(text[i:j])

		// 扫描标识符，要求紧跟闭合的 }
		k := j + 2
		for k < len(text) && isIdentChar(text[k]) {
			k++
		}
		if k > j+2 && k < len(text) && text[k] == '}' {
			b.WriteString(env[text[j+2:k]])
			i = k + 1
			continue
		}

		// 畸形序列：保留 "${" 本身，从其后继续扫描
		b.WriteString("${")
		i = j + 2
	}

	return b.String()
}

// Placeholders 返回文本中所有合法占位符的标识符。
//
// 按首次出现顺序排列，重复出现的标识符只返回一次。
func Placeholders(text string) []string {
	var names []string
	seen := make(map[string]bool)

	i := 0
	for i < len(text) {
		j := strings.Index(text[i:], "${")
		if j < 0 {
			break
		}
		j += i

		k := j + 2
		for k < len(text) && isIdentChar(text[k]) {
			k++
		}
		if k > j+2 && k < len(text) && text[k] == '}' {
			name := text[j+2 : k]
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i = k + 1
			continue
		}

		i = j + 2
	}

	return names
}

// Environ 返回当前进程环境变量的快照。
//
// 返回 map[string]string，供 [Expand] 作为查找表使用。
// 将环境作为显式参数传递，保证替换逻辑可以在不修改进程环境的情况下测试。
func Environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			vars[name] = value
		}
	}

	return vars
}

// isIdentChar 判断字符是否为占位符标识符的合法组成部分。
func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
