// Package envsub 提供 ${NAME} 风格的环境变量占位符替换。
//
// 与 envsubst 的语义对齐，但更保守：只处理 ${NAME} 形式，
// 不支持 $NAME 裸引用，也不支持 ${NAME:-default} 等扩展语法。
//
// # 核心语义
//
//  1. NAME 为字母、数字、下划线组成的非空标识符
//  2. 缺失的环境变量替换为空字符串，而不是报错
//  3. 畸形或未闭合的 ${ 序列原样保留
//  4. 占位符之外的内容逐字节不变
//
// 缺失变量不报错是刻意的设计：部署环境往往只配置了部分变量，
// 替换阶段不应该因此中断，代价是可能静默产生空配置值。
//
// 详见 [Expand] 文档。
package envsub
