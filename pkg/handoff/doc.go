// Package handoff 实现启动包装进程向下游命令的移交。
//
// 配置物化完成后，包装进程的使命就结束了，控制权交给真正的
// 应用进程：优先替换进程镜像（unix exec 语义，下游直接接管
// 标准输入输出和信号），不支持时退化为 spawn-and-wait 并把
// 下游的退出状态忠实地作为包装进程自身的退出码。
//
// 移交是不可逆的：一旦发起，包装进程不再执行任何后续工作。
package handoff
