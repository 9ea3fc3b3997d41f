package adapter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fansqz/cdp-snapshot-adapter/constants"
	"github.com/fansqz/cdp-snapshot-adapter/protocol"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
)

// NotificationType 适配器主动产生的内部通知
// 不注册监听器，路由器把通知塞进通道，由传输层消费，避免隐藏的控制流
type NotificationType string

const (
	// NotificationResumed resume请求触发，传输层据此下发Debugger.resumed事件
	NotificationResumed NotificationType = "resumed"
	// NotificationBreakpointListChanged 断点状态变化，用于刷新扩展面板
	NotificationBreakpointListChanged NotificationType = "breakpointListChanged"
)

// Notification 类型化的通知
type Notification struct {
	Type NotificationType
}

// Adapter CDP请求路由器
// 本身没有状态机，只是一个围绕对象表的无状态分发器：
// 收到CDP请求信封，按Domain.method分发到对应的处理函数，
// 断点操作转给快照服务客户端，快照数据走翻译链路。
type Adapter struct {
	service    snapshot.Service
	store      *ObjectStore
	sourceRoot string
	// 单调试器单客户端的使用场景，16的缓冲足够
	notifications chan Notification
}

func NewAdapter(service snapshot.Service, sourceRoot string) *Adapter {
	return &Adapter{
		service:       service,
		store:         NewObjectStore(),
		sourceRoot:    sourceRoot,
		notifications: make(chan Notification, 16),
	}
}

// Notifications 传输层消费的通知通道
func (a *Adapter) Notifications() <-chan Notification {
	return a.notifications
}

func (a *Adapter) notify(notificationType NotificationType) {
	select {
	case a.notifications <- Notification{Type: notificationType}:
	default:
		// 通道满说明传输层没在消费，丢弃比阻塞请求处理更好
		logrus.Warnf("[Adapter] notification %s dropped, channel full", notificationType)
	}
}

// Dispatch 处理一个CDP请求，返回结果或者类型化的失败
// 未建模的域（Console、Profiler等）一律返回空结果
func (a *Adapter) Dispatch(ctx context.Context, request *protocol.Request) (interface{}, error) {
	domain, method := request.SplitMethod()
	logrus.Infof("[Adapter] Dispatch %s", request.Method)
	switch constants.CDPDomain(domain) {
	case constants.DomainDebugger:
		return a.dispatchDebugger(ctx, method, request.Params)
	case constants.DomainRuntime:
		return a.dispatchRuntime(ctx, method, request.Params)
	default:
		return &protocol.EmptyResult{}, nil
	}
}
