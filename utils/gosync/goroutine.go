package gosync

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Go 封装的go协程工具，会兜住panic，避免一个后台任务把整个桥服务带崩
func Go(ctx context.Context, task func(ctx context.Context)) {
	go func(ctx context.Context, f func(ctx context.Context)) {
		defer func() {
			if err := recover(); err != nil {
				logrus.Errorf("[gosync] goroutine panic recovered: %v", err)
			}
		}()
		f(ctx)
	}(ctx, task)
}
