package snapshot

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fansqz/cdp-snapshot-adapter/utils"
	"github.com/fansqz/cdp-snapshot-adapter/utils/gosync"
)

// Watcher 持续长轮询快照服务，把断点变化转成两类消息：
// Hits里是刚完成捕获的快照，Changes里是每次断点列表的变化。
// 通过context取消，不是裸的无限循环。
type Watcher struct {
	service Service
	status  *utils.StatusManager
	hits    chan *Breakpoint
	changes chan []*Breakpoint
	// 已经推送过的快照id，避免同一个快照重复触发paused事件
	notified map[string]bool
}

func NewWatcher(service Service) *Watcher {
	return &Watcher{
		service:  service,
		status:   utils.NewStatusManager(),
		hits:     make(chan *Breakpoint, 16),
		changes:  make(chan []*Breakpoint, 16),
		notified: make(map[string]bool),
	}
}

// Hits 完成捕获的快照
func (w *Watcher) Hits() <-chan *Breakpoint {
	return w.hits
}

// Changes 断点列表变化
func (w *Watcher) Changes() <-chan []*Breakpoint {
	return w.changes
}

// Start 启动后台轮询任务，ctx取消后任务退出并关闭两个通道
func (w *Watcher) Start(ctx context.Context) {
	w.status.Set(utils.Running)
	gosync.Go(ctx, func(ctx context.Context) {
		defer func() {
			w.status.Set(utils.Finish)
			close(w.hits)
			close(w.changes)
		}()
		for {
			if ctx.Err() != nil {
				logrus.Infof("[Watcher] context cancelled, stop polling")
				return
			}
			breakpoints, err := w.service.WaitForUpdates(ctx)
			if err != nil {
				if ctx.Err() != nil {
					logrus.Infof("[Watcher] context cancelled, stop polling")
					return
				}
				logrus.Errorf("[Watcher] wait for updates fail, err = %v", err)
				// 瞬时错误退避一秒再试
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}
			w.dispatch(ctx, breakpoints)
		}
	})
}

// IsRunning 轮询任务是否在运行
func (w *Watcher) IsRunning() bool {
	return w.status.Is(utils.Running)
}

func (w *Watcher) dispatch(ctx context.Context, breakpoints []*Breakpoint) {
	select {
	case w.changes <- breakpoints:
	case <-ctx.Done():
		return
	}
	for _, bp := range breakpoints {
		if !bp.IsSnapshot() || w.notified[bp.ID] {
			continue
		}
		w.notified[bp.ID] = true
		logrus.Infof("[Watcher] breakpoint %s captured", bp.ID)
		select {
		case w.hits <- bp:
		case <-ctx.Done():
			return
		}
	}
}
