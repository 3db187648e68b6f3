// Package materialize 在启动阶段就地渲染目录树内的配置文件。
//
// 扫描根目录下任意深度的常规文件，文件名（base name）命中任一
// glob 模式的文件会被读取，其中的 ${NAME} 占位符按进程环境展开
// 后原子地写回原路径。
//
// # 核心约束
//
//  1. 单文件原子：写临时文件后 rename，不会留下半写的配置
//  2. 整体 fail-fast：首个文件系统错误立即中止，已替换的文件保持原状
//  3. 缺失变量不报错：替换为空字符串（见 [envsub] 包）
//  4. 不做内容类型校验：glob 范围由运维方通过 TEMPLATE_GLOBS 控制
//
// 典型用途是容器入口处的配置物化：渲染完成后由 [handoff] 包
// 将控制权移交给真正的应用进程。
//
// [envsub]: github.com/lwmacct/260829-go-pkg-entry/pkg/envsub
// [handoff]: github.com/lwmacct/260829-go-pkg-entry/pkg/handoff
package materialize
