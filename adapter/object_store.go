package adapter

import (
	"fmt"
	"sync"

	e "github.com/fansqz/cdp-snapshot-adapter/error"
	"github.com/fansqz/cdp-snapshot-adapter/protocol"
)

// ObjectStore objectId到属性列表的映射
// objectId用快照id+角色+下标命名，跨快照天然唯一，不需要全局计数器。
// 条目只增不删，会话是短生命周期的单快照使用，不做淘汰。
type ObjectStore struct {
	mutex      sync.RWMutex
	properties map[string][]*protocol.PropertyDescriptor
}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		properties: map[string][]*protocol.PropertyDescriptor{},
	}
}

// Put 存入一个完整构建好的属性列表
// 列表在插入前已经构建完成，不会出现半成品条目被读到
func (s *ObjectStore) Put(objectID string, properties []*protocol.PropertyDescriptor) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.properties[objectID] = properties
}

// Get 按objectId查属性列表，顺序和存入时一致
func (s *ObjectStore) Get(objectID string) ([]*protocol.PropertyDescriptor, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	properties, ok := s.properties[objectID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", e.ErrObjectNotFound, objectID)
	}
	return properties, nil
}

// ObjectID 变量表条目的对象标识
func ObjectID(snapshotID string, index int) string {
	return fmt.Sprintf("%s-object-%d", snapshotID, index)
}

// EmptyObjectID 没有成员的普通Object使用的标识
func EmptyObjectID(snapshotID string, index int) string {
	return fmt.Sprintf("%s-empty-%d", snapshotID, index)
}

// FrameID 合成栈帧的标识
func FrameID(snapshotID string, index int) string {
	return fmt.Sprintf("%s-frame-%d", snapshotID, index)
}
