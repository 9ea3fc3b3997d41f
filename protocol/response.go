package protocol

// Response CDP响应信封，id与请求的id对应
// result和error互斥，处理失败时返回结构化的error而不是静默丢弃响应
type Response struct {
	ID     int64          `json:"id"`
	Result interface{}    `json:"result,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

// ResponseError JSON-RPC风格的错误体
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// 错误码，按失败类别固定
const (
	ErrorCodeInternal      = -32000
	ErrorCodeNotFound      = -32001
	ErrorCodeDataShape     = -32002
	ErrorCodeNotSupported  = -32601
	ErrorCodeInvalidParams = -32602
)

// EmptyResult 空结果，序列化为{}
type EmptyResult struct{}

// EnableResult Debugger.enable的结果
type EnableResult struct {
	DebuggerID string `json:"debuggerId"`
}

// GetScriptSourceResult Debugger.getScriptSource的结果
type GetScriptSourceResult struct {
	ScriptSource string `json:"scriptSource"`
}

// SetBreakpointByUrlResult Debugger.setBreakpointByUrl的结果
type SetBreakpointByUrlResult struct {
	BreakpointID string     `json:"breakpointId"`
	Locations    []*Location `json:"locations"`
}

// GetPropertiesResult Runtime.getProperties的结果
type GetPropertiesResult struct {
	Result []*PropertyDescriptor `json:"result"`
}
