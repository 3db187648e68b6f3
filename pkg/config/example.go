package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

// ExampleYAML 将配置结构体序列化为带注释的 YAML。
//
// 通过 desc tag 自动生成注释，适用于生成 config.example.yaml。
//
// 使用示例：
//
//	yaml := config.ExampleYAML(DefaultConfig())
//	os.WriteFile("config/config.example.yaml", yaml, 0644)
func ExampleYAML[T any](cfg T) []byte {
	node := structToNode(reflect.ValueOf(cfg), reflect.TypeOf(cfg))
	node.HeadComment = "配置示例文件, 复制此文件为 config.yaml 并根据需要修改"

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	_ = enc.Encode(node)
	_ = enc.Close()

	return buf.Bytes()
}

// structToNode 将结构体转换为带注释的 yamlv3.Node。
func structToNode(val reflect.Value, typ reflect.Type) *yamlv3.Node {
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null"}
		}
		val = val.Elem()
		typ = typ.Elem()
	}

	node := &yamlv3.Node{Kind: yamlv3.MappingNode}

	for i := range typ.NumField() {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		key := field.Tag.Get("koanf")
		if key == "" {
			continue
		}
		comment := field.Tag.Get("desc")

		keyNode := &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: key}

		isStruct := field.Type.Kind() == reflect.Struct &&
			field.Type != reflect.TypeFor[time.Duration]() &&
			field.Type != reflect.TypeFor[time.Time]()

		var valNode *yamlv3.Node
		switch {
		case isStruct:
			valNode = structToNode(fieldVal, field.Type)
			keyNode.HeadComment = "\n" + comment // 复杂类型注释放在 key 上方，前面加空行
		case field.Type.Kind() == reflect.Slice:
			valNode = valueToNode(fieldVal, field.Type)
			keyNode.HeadComment = "\n" + comment
		default:
			valNode = valueToNode(fieldVal, field.Type)
			valNode.LineComment = comment
		}

		node.Content = append(node.Content, keyNode, valNode)
	}

	return node
}

// valueToNode 将值转换为 yamlv3.Node。
func valueToNode(val reflect.Value, typ reflect.Type) *yamlv3.Node {
	switch typ {
	case reflect.TypeFor[time.Duration]():
		if d, ok := val.Interface().(time.Duration); ok {
			return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: d.String()}
		}
	case reflect.TypeFor[time.Time]():
		if t, ok := val.Interface().(time.Time); ok {
			return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: t.Format(time.RFC3339)}
		}
	}

	switch val.Kind() {
	case reflect.String:
		return &yamlv3.Node{
			Kind:  yamlv3.ScalarNode,
			Value: val.String(),
			Style: yamlv3.DoubleQuotedStyle,
		}

	case reflect.Bool:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: strconv.FormatBool(val.Bool())}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: strconv.FormatInt(val.Int(), 10)}

	case reflect.Float32, reflect.Float64:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: fmt.Sprintf("%v", val.Float())}

	case reflect.Slice:
		node := &yamlv3.Node{Kind: yamlv3.SequenceNode}
		if val.Len() == 0 {
			node.Style = yamlv3.FlowStyle // [] 形式
		} else {
			for j := range val.Len() {
				elem := val.Index(j)
				elemNode := valueToNode(elem, elem.Type())
				elemNode.Style = 0 // slice 元素不使用引号样式，保持简洁
				node.Content = append(node.Content, elemNode)
			}
		}

		return node

	case reflect.Map:
		node := &yamlv3.Node{Kind: yamlv3.MappingNode}
		if val.Len() == 0 {
			node.Style = yamlv3.FlowStyle // {} 形式
		} else {
			iter := val.MapRange()
			for iter.Next() {
				k, v := iter.Key(), iter.Value()
				node.Content = append(node.Content,
					&yamlv3.Node{Kind: yamlv3.ScalarNode, Value: fmt.Sprintf("%v", k.Interface())},
					valueToNode(v, v.Type()),
				)
			}
		}

		return node

	default:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: fmt.Sprintf("%v", val.Interface())}
	}
}

// ConfigTestHelper 配置测试辅助工具，在测试中维护配置示例文件：
// WriteExampleFile 重新生成示例，ValidateKeys 保证本地配置
// 不包含示例之外的键。
//
//	var helper = config.ConfigTestHelper[Config]{
//	    ExamplePath: "config/config.example.yaml",
//	    ConfigPath:  "config/config.yaml",
//	}
//
//	func TestWriteExample(t *testing.T) { helper.WriteExampleFile(t, DefaultConfig()) }
//	func TestConfigKeysValid(t *testing.T) { helper.ValidateKeys(t) }
type ConfigTestHelper[T any] struct {
	ExamplePath string // 示例文件相对路径（相对于 go.mod 所在目录）
	ConfigPath  string // 配置文件相对路径（相对于 go.mod 所在目录）
}

// WriteExampleFile 根据默认配置重新生成示例文件
func (h *ConfigTestHelper[T]) WriteExampleFile(t *testing.T, defaultConfig T) {
	t.Helper()

	path := filepath.Join(h.projectRoot(t), h.ExamplePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(path, ExampleYAML(defaultConfig), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Logf("✅ 已生成配置示例文件: %s", path)
}

// ValidateKeys 校验配置文件中的键名是否都在示例文件中定义
func (h *ConfigTestHelper[T]) ValidateKeys(t *testing.T) {
	t.Helper()

	root := h.projectRoot(t)
	configPath := filepath.Join(root, h.ConfigPath)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Skipf("%s 不存在，跳过验证", h.ConfigPath)
	}

	valid, err := loadKeySet(filepath.Join(root, h.ExamplePath))
	if err != nil {
		t.Fatalf("无法加载 %s: %v", h.ExamplePath, err)
	}
	configKeys, err := loadKeySet(configPath)
	if err != nil {
		t.Fatalf("无法加载 %s: %v", h.ConfigPath, err)
	}

	for key := range configKeys {
		if !valid[key] {
			t.Errorf("%s 包含无效配置项: %s", h.ConfigPath, key)
		}
	}
}

func (h *ConfigTestHelper[T]) projectRoot(t *testing.T) string {
	t.Helper()

	root, err := FindProjectRoot(2)
	if err != nil {
		t.Fatalf("无法找到项目根目录: %v", err)
	}

	return root
}

// FindProjectRoot 从调用者的源文件向上查找 go.mod，返回所在目录。
//
// skip 指定跳过的调用栈层数，0 表示调用者自身。
func FindProjectRoot(skip int) (string, error) {
	_, filename, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", errors.New("无法获取当前文件路径")
	}

	for dir := filepath.Dir(filename); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		if dir == filepath.Dir(dir) {
			return "", errors.New("未找到 go.mod")
		}
	}
}

// loadKeySet 加载配置文件（按扩展名识别 YAML/JSON）并返回键集合。
func loadKeySet(path string) (map[string]bool, error) {
	parser := koanf.Parser(yaml.Parser())
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parser = kjson.Parser()
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("加载文件失败: %w", err)
	}

	keys := make(map[string]bool)
	for _, key := range k.Keys() {
		keys[key] = true
	}

	return keys, nil
}
