package protocol

import (
	"encoding/json"
	"strings"
)

// Request CDP请求信封
// method形如"Domain.method"，id用于请求和响应的关联
type Request struct {
	ID     int64           `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// SplitMethod 按第一个'.'拆分method，得到domain和方法名
func (r *Request) SplitMethod() (domain string, method string) {
	idx := strings.Index(r.Method, ".")
	if idx < 0 {
		return r.Method, ""
	}
	return r.Method[:idx], r.Method[idx+1:]
}

// GetScriptSourceParams Debugger.getScriptSource的参数
// scriptId在本适配器中就是源文件的绝对路径
type GetScriptSourceParams struct {
	ScriptID string `json:"scriptId"`
}

// RemoveBreakpointParams Debugger.removeBreakpoint的参数
type RemoveBreakpointParams struct {
	BreakpointID string `json:"breakpointId"`
}

// SetBreakpointByUrlParams Debugger.setBreakpointByUrl的参数
// urlRegex变体不支持，url必填
type SetBreakpointByUrlParams struct {
	LineNumber   int    `json:"lineNumber"`
	URL          string `json:"url"`
	URLRegex     string `json:"urlRegex,omitempty"`
	ColumnNumber int    `json:"columnNumber,omitempty"`
	Condition    string `json:"condition,omitempty"`
}

// GetPropertiesParams Runtime.getProperties的参数
type GetPropertiesParams struct {
	ObjectID string `json:"objectId"`
}
