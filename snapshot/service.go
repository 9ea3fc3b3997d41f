package snapshot

import "context"

// Service 快照服务的客户端接口
// 快照服务只负责断点的增删查和长轮询，不提供任何实时执行控制
type Service interface {
	// GetDebuggerID 获取调试会话标识
	GetDebuggerID() string
	// CreateBreakpoint 创建断点，返回服务端落库后的断点
	CreateBreakpoint(ctx context.Context, breakpoint *Breakpoint) (*Breakpoint, error)
	// DeleteBreakpoint 删除断点
	DeleteBreakpoint(ctx context.Context, id string) error
	// GetBreakpoint 获取单个断点，完成捕获的断点会带上栈帧和变量表
	GetBreakpoint(ctx context.Context, id string) (*Breakpoint, error)
	// ListBreakpoints 列出debuggee上的全部断点
	ListBreakpoints(ctx context.Context) ([]*Breakpoint, error)
	// WaitForUpdates 长轮询，阻塞直到断点列表发生变化或超时，返回变化后的断点列表
	WaitForUpdates(ctx context.Context) ([]*Breakpoint, error)
}
