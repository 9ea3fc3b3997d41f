package protocol

// Event CDP事件信封，主动推送，没有id
type Event struct {
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// PausedEventBody Debugger.paused事件的参数
// 由一个已完成捕获的快照合成，hitBreakpoints只包含触发快照的那个断点id
type PausedEventBody struct {
	CallFrames     []*CallFrame `json:"callFrames"`
	Reason         string       `json:"reason"`
	HitBreakpoints []string     `json:"hitBreakpoints"`
}

// ScriptParsedEventBody Debugger.scriptParsed事件的参数
// 虚拟脚本列表：绝对路径同时作为scriptId和url，endLine是文件的行数
type ScriptParsedEventBody struct {
	ScriptID    string `json:"scriptId"`
	URL         string `json:"url"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}
