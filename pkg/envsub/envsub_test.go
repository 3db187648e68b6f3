package envsub_test

import (
	"testing"

	"github.com/lwmacct/260829-go-pkg-entry/pkg/envsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_WellFormed(t *testing.T) {
	env := map[string]string{
		"BOT_TOKEN": "abc123",
		"HOST":      "localhost",
		"PORT":      "5432",
		"_PRIVATE":  "hidden",
		"V2":        "two",
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "single placeholder",
			text: `token: "${BOT_TOKEN}"`,
			want: `token: "abc123"`,
		},
		{
			name: "multiple placeholders on one line",
			text: "${HOST}:${PORT}",
			want: "localhost:5432",
		},
		{
			name: "adjacent placeholders",
			text: "${HOST}${PORT}",
			want: "localhost5432",
		},
		{
			name: "underscore and digits in identifier",
			text: "${_PRIVATE}/${V2}",
			want: "hidden/two",
		},
		{
			name: "same placeholder twice",
			text: "${HOST} ${HOST}",
			want: "localhost localhost",
		},
		{
			name: "placeholder only",
			text: "${HOST}",
			want: "localhost",
		},
		{
			name: "no placeholders",
			text: "plain: text\n",
			want: "plain: text\n",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envsub.Expand(tt.text, env))
		})
	}
}

func TestExpand_MissingVariable(t *testing.T) {
	tests := []struct {
		name string
		text string
		env  map[string]string
		want string
	}{
		{
			name: "missing variable becomes empty string",
			text: `token: "${BOT_TOKEN}"`,
			env:  map[string]string{},
			want: `token: ""`,
		},
		{
			name: "nil env map",
			text: "${ANYTHING}",
			env:  nil,
			want: "",
		},
		{
			name: "mix of present and missing",
			text: "${PRESENT}-${MISSING}",
			env:  map[string]string{"PRESENT": "x"},
			want: "x-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envsub.Expand(tt.text, tt.env))
		})
	}
}

func TestExpand_MalformedPassThrough(t *testing.T) {
	env := map[string]string{"FOO": "foo", "BAR": "bar"}

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "unterminated at end of input",
			text: "value: ${FOO",
			want: "value: ${FOO",
		},
		{
			name: "empty braces",
			text: "${}",
			want: "${}",
		},
		{
			name: "bare dollar brace",
			text: "cost: ${",
			want: "cost: ${",
		},
		{
			name: "illegal character in identifier",
			text: "${FOO-BAR}",
			want: "${FOO-BAR}",
		},
		{
			name: "bare dollar is not a placeholder",
			text: "$FOO and $$FOO",
			want: "$FOO and $$FOO",
		},
		{
			name: "malformed followed by well-formed",
			text: "${ ${FOO}",
			want: "${ foo",
		},
		{
			name: "space inside braces",
			text: "${ FOO }",
			want: "${ FOO }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envsub.Expand(tt.text, env))
		})
	}
}

// TestExpand_ContentOutsidePlaceholders 验证占位符之外的内容逐字节不变
func TestExpand_ContentOutsidePlaceholders(t *testing.T) {
	text := "# comment\nkey: \"${VAL}\"\nother: [1, 2, 3]\nunicode: 配置\n"
	want := "# comment\nkey: \"v\"\nother: [1, 2, 3]\nunicode: 配置\n"

	got := envsub.Expand(text, map[string]string{"VAL": "v"})
	assert.Equal(t, want, got)
}

// TestExpand_FixedPoint 验证替换结果是稳定不动点：
// 第一遍展开后的输出再展开一次不再发生变化。
func TestExpand_FixedPoint(t *testing.T) {
	env := map[string]string{"A": "resolved"}
	text := "a: ${A}\nb: ${MISSING}\nc: ${broken\n"

	once := envsub.Expand(text, env)
	twice := envsub.Expand(once, env)
	assert.Equal(t, once, twice)
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "ordered and deduplicated",
			text: "${B} ${A} ${B} ${C}",
			want: []string{"B", "A", "C"},
		},
		{
			name: "malformed sequences skipped",
			text: "${} ${A-B} ${OK}",
			want: []string{"OK"},
		},
		{
			name: "no placeholders",
			text: "nothing here",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envsub.Placeholders(tt.text))
		})
	}
}

func TestEnviron(t *testing.T) {
	t.Setenv("ENVSUB_TEST_VAR", "snapshot-value")

	vars := envsub.Environ()
	require.NotEmpty(t, vars)
	assert.Equal(t, "snapshot-value", vars["ENVSUB_TEST_VAR"])
}
