package protocol

// 浏览器扩展面板使用的伴生通道协议，和CDP通道相互独立

// ExtensionMessage 扩展通道的消息信封
type ExtensionMessage struct {
	Name string `json:"name"`
	Data string `json:"data,omitempty"`
}

// 扩展通道的消息名
const (
	ExtensionInitialized  = "initialized"
	ExtensionAcknowledged = "acknowledged"
	ExtensionLoadSnapshot = "loadSnapshot"
	ExtensionUpdateLists  = "updateBreakpointInfoLists"
)

// BreakpointInfo 断点的展示投影，只用于列表
type BreakpointInfo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// BreakpointInfoLists updateBreakpointInfoLists消息的数据体
// 发送前会被JSON字符串化后放进ExtensionMessage.Data
type BreakpointInfoLists struct {
	PendingBreakpointInfoList []*BreakpointInfo `json:"pendingBreakpointInfoList"`
	CapturedSnapshotInfoList  []*BreakpointInfo `json:"capturedSnapshotInfoList"`
}
