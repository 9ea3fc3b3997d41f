package utils

import "sync"

const (
	// Init 轮询任务初始化状态
	Init = "Init"
	// Running 轮询任务运行中
	Running = "running"
	// Finish 轮询任务结束
	Finish = "finish"
)

// StatusManager 记录后台长轮询任务的状态
type StatusManager struct {
	lock   sync.RWMutex
	status string
}

func NewStatusManager() *StatusManager {
	return &StatusManager{
		status: Init,
	}
}

func (s *StatusManager) Set(status string) {
	defer s.lock.Unlock()
	s.lock.Lock()
	s.status = status
}

func (s *StatusManager) Is(statusList ...string) bool {
	defer s.lock.RUnlock()
	s.lock.RLock()
	for _, status := range statusList {
		if s.status == status {
			return true
		}
	}
	return false
}
