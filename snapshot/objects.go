package snapshot

// Action 断点命中时执行的动作
type Action string

const (
	// ActionCapture 命中时捕获一次变量状态，断点转为快照
	ActionCapture Action = "CAPTURE"
	// ActionLog 命中时打印日志，不产生快照
	ActionLog Action = "LOG"
)

// SourceLocation 断点位置，Line是快照服务使用的一索引行号
type SourceLocation struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

func NewSourceLocation(path string, line int) *SourceLocation {
	return &SourceLocation{Path: path, Line: line}
}

// StatusMessage 变量或断点上附带的状态信息
// IsError为true时表示捕获该变量出错，这不是翻译错误，只做记录
type StatusMessage struct {
	IsError     bool   `json:"isError"`
	RefersTo    string `json:"refersTo,omitempty"`
	Description string `json:"description,omitempty"`
}

// Variable 变量表中的一行，或者某个局部变量/成员
// Value和VarTableIndex互斥：有值的是直接值，有索引的是对变量表的引用
// 两者都没有的条目是状态标记，不是真实变量
type Variable struct {
	Name          string         `json:"name,omitempty"`
	Value         *string        `json:"value,omitempty"`
	VarTableIndex *int           `json:"varTableIndex,omitempty"`
	Members       []*Variable    `json:"members,omitempty"`
	Status        *StatusMessage `json:"status,omitempty"`
}

// StackFrame 捕获时的一个栈帧
type StackFrame struct {
	Function  string          `json:"function"`
	Location  *SourceLocation `json:"location"`
	Arguments []*Variable     `json:"arguments,omitempty"`
	Locals    []*Variable     `json:"locals,omitempty"`
}

// Breakpoint 快照服务中的断点
// IsFinalState为false时是待命中的断点；为true且动作是CAPTURE时，
// 它携带捕获到的栈帧和变量表，也就是一个快照
type Breakpoint struct {
	ID            string          `json:"id"`
	Action        Action          `json:"action"`
	Location      *SourceLocation `json:"location"`
	Condition     string          `json:"condition,omitempty"`
	IsFinalState  bool            `json:"isFinalState"`
	CreateTime    string          `json:"createTime,omitempty"`
	FinalTime     string          `json:"finalTime,omitempty"`
	StackFrames   []*StackFrame   `json:"stackFrames,omitempty"`
	VariableTable []*Variable     `json:"variableTable,omitempty"`
	Status        *StatusMessage  `json:"status,omitempty"`
}

// IsSnapshot 只有完成捕获的CAPTURE断点才可以当作快照翻译
func (b *Breakpoint) IsSnapshot() bool {
	return b.IsFinalState && b.Action == ActionCapture
}
