package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fansqz/cdp-snapshot-adapter/protocol"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
)

// 浏览器扩展面板的伴生通道
// 只承载一个很小的协议：面板初始化/确认/请求加载快照，
// 桥服务推断点信息列表。不属于CDP核心，但共用适配器的通知。

// handleExtension 扩展面板的websocket连接
func (s *Server) handleExtension(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("[Extension] upgrade fail, err = %v", err)
		return
	}
	s.mutex.Lock()
	s.extension = conn
	s.mutex.Unlock()
	logrus.Infof("[Extension] panel connected from %s", conn.RemoteAddr())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logrus.Infof("[Extension] panel disconnected: %v", err)
			break
		}
		message := &protocol.ExtensionMessage{}
		if err = json.Unmarshal(data, message); err != nil {
			logrus.Errorf("[Extension] parse message error, err = %v", err)
			continue
		}
		switch message.Name {
		case protocol.ExtensionInitialized:
			s.refreshBreakpointLists(r.Context())
		case protocol.ExtensionAcknowledged:
			// 面板确认收到列表，无事可做
		case protocol.ExtensionLoadSnapshot:
			s.handleLoadSnapshot(r, message.Data)
		default:
			// 未识别的消息只记错误，不关通道
			logrus.Errorf("[Extension] unrecognized message name %q", message.Name)
		}
	}

	s.mutex.Lock()
	if s.extension == conn {
		s.extension = nil
	}
	s.mutex.Unlock()
	_ = conn.Close()
}

// handleLoadSnapshot 面板点开某个快照，按id拉取并推送paused事件
func (s *Server) handleLoadSnapshot(r *http.Request, snapshotID string) {
	if snapshotID == "" {
		logrus.Errorf("[Extension] loadSnapshot without snapshot id")
		return
	}
	breakpoint, err := s.service.GetBreakpoint(r.Context(), snapshotID)
	if err != nil {
		logrus.Errorf("[Extension] get breakpoint %s fail, err = %v", snapshotID, err)
		return
	}
	s.loadSnapshot(r.Context(), breakpoint)
}

// broadcastBreakpointLists 把断点信息列表推给扩展面板
// 数据体按协议约定是JSON字符串化后的列表
func (s *Server) broadcastBreakpointLists(lists *protocol.BreakpointInfoLists) {
	s.mutex.Lock()
	conn := s.extension
	s.mutex.Unlock()
	if conn == nil {
		return
	}
	data, err := json.Marshal(lists)
	if err != nil {
		logrus.Errorf("[Extension] marshal lists fail, err = %v", err)
		return
	}
	message := &protocol.ExtensionMessage{
		Name: protocol.ExtensionUpdateLists,
		Data: string(data),
	}
	s.extensionWriteMutex.Lock()
	defer s.extensionWriteMutex.Unlock()
	if err = conn.WriteJSON(message); err != nil {
		logrus.Errorf("[Extension] send lists fail, err = %v", err)
	}
}

// splitBreakpointInfoLists 把断点按是否完成捕获拆成待命中和快照两个列表
func splitBreakpointInfoLists(breakpoints []*snapshot.Breakpoint) *protocol.BreakpointInfoLists {
	lists := &protocol.BreakpointInfoLists{
		PendingBreakpointInfoList: []*protocol.BreakpointInfo{},
		CapturedSnapshotInfoList:  []*protocol.BreakpointInfo{},
	}
	for _, breakpoint := range breakpoints {
		info := &protocol.BreakpointInfo{
			Name: breakpointDisplayName(breakpoint),
			ID:   breakpoint.ID,
		}
		if breakpoint.IsFinalState {
			lists.CapturedSnapshotInfoList = append(lists.CapturedSnapshotInfoList, info)
		} else {
			lists.PendingBreakpointInfoList = append(lists.PendingBreakpointInfoList, info)
		}
	}
	return lists
}

// breakpointDisplayName 列表里的展示名，取"路径:行号"
func breakpointDisplayName(breakpoint *snapshot.Breakpoint) string {
	if breakpoint.Location == nil {
		return breakpoint.ID
	}
	return fmt.Sprintf("%s:%d", breakpoint.Location.Path, breakpoint.Location.Line)
}
