package envsub_test

import (
	"fmt"

	"github.com/lwmacct/260829-go-pkg-entry/pkg/envsub"
)

// Example_basic 演示基本的占位符替换。
func Example_basic() {
	env := map[string]string{
		"DATABASE_HOST": "localhost",
		"DATABASE_PORT": "5432",
	}

	result := envsub.Expand("dsn: ${DATABASE_HOST}:${DATABASE_PORT}", env)
	fmt.Println(result)

	// Output:
	// dsn: localhost:5432
}

// Example_missingVariable 演示缺失变量替换为空字符串，而不是报错。
func Example_missingVariable() {
	result := envsub.Expand(`token: "${BOT_TOKEN}"`, map[string]string{})
	fmt.Println(result)

	// Output:
	// token: ""
}

// Example_malformed 演示畸形序列原样保留。
func Example_malformed() {
	env := map[string]string{"FOO": "foo"}

	fmt.Println(envsub.Expand("a: ${FOO", env))
	fmt.Println(envsub.Expand("b: ${}", env))
	fmt.Println(envsub.Expand("c: $FOO", env))

	// Output:
	// a: ${FOO
	// b: ${}
	// c: $FOO
}

// Example_placeholders 演示提取文本中的占位符标识符。
func Example_placeholders() {
	text := "host: ${HOST}\nport: ${PORT}\nhost2: ${HOST}\n"
	fmt.Println(envsub.Placeholders(text))

	// Output:
	// [HOST PORT]
}
