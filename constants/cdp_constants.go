package constants

// CDPDomain CDP请求方法中"Domain.method"的Domain部分
type CDPDomain string

const (
	DomainDebugger CDPDomain = "Debugger"
	DomainRuntime  CDPDomain = "Runtime"
)

// Debugger域的方法分组
// 快照是一次性捕获，只有一部分CDP方法可以映射到快照服务上，
// 其余方法分为：不支持（实时调试才有意义）、空实现、暂未实现三类。
var (
	// DebuggerUnsupportedMethods 依赖实时执行控制的方法，对快照无意义，直接报错
	DebuggerUnsupportedMethods = []string{
		"continueToLocation",
		"evaluateOnCallFrame",
		"restartFrame",
		"scheduleStepIntoAsync",
		"setReturnValue",
		"setScriptSource",
		"setVariableValue",
		"stepInto",
		"stepOut",
		"stepOver",
	}
	// DebuggerNoopMethods 接受但不做任何事的方法，返回空结果
	DebuggerNoopMethods = []string{
		"disable",
		"pause",
		"pauseOnAsyncCall",
		"setAsyncCallStackDepth",
		"setBlackboxedRanges",
		"setBlackboxPatterns",
		"setBreakpointsActive",
		"setPauseOnExceptions",
		"setSkipAllPauses",
	}
	// DebuggerEmptyMethods 暂未实现的方法，返回空结果
	DebuggerEmptyMethods = []string{
		"getPossibleBreakpoints",
		"getStackTrace",
		"searchInContent",
		"setBreakpoint",
		"setBreakpointOnFunctionCall",
	}
)

// Runtime域的方法分组
var (
	// RuntimeUnsupportedMethods 依赖实时运行时的方法
	RuntimeUnsupportedMethods = []string{
		"addBinding",
		"awaitPromise",
		"callFunctionOn",
		"compileScript",
		"evaluate",
		"getIsolateId",
		"getHeapUsage",
		"globalLexicalScopeNames",
		"queryObjects",
		"removeBinding",
		"runScript",
		"terminateExecution",
	}
	// RuntimeNoopMethods 空实现的方法
	RuntimeNoopMethods = []string{
		"disable",
		"discardConsoleEntries",
		"enable",
		"releaseObject",
		"releaseObjectGroup",
		"runIfWaitingForDebugger",
		"setAsyncCallStackDepth",
		"setCustomObjectFormatterEnabled",
		"setMaxCallStackSizeToCapture",
	}
)

// RemoteObjectType CDP远程对象的类型标签
type RemoteObjectType string

const (
	TypeObject    RemoteObjectType = "object"
	TypeFunction  RemoteObjectType = "function"
	TypeUndefined RemoteObjectType = "undefined"
	TypeString    RemoteObjectType = "string"
	TypeNumber    RemoteObjectType = "number"
	TypeBoolean   RemoteObjectType = "boolean"
	TypeSymbol    RemoteObjectType = "symbol"
)

// RemoteObjectSubtype CDP远程对象的子类型标签
type RemoteObjectSubtype string

const (
	SubtypeArray      RemoteObjectSubtype = "array"
	SubtypeNull       RemoteObjectSubtype = "null"
	SubtypeNode       RemoteObjectSubtype = "node"
	SubtypeRegexp     RemoteObjectSubtype = "regexp"
	SubtypeDate       RemoteObjectSubtype = "date"
	SubtypeMap        RemoteObjectSubtype = "map"
	SubtypeSet        RemoteObjectSubtype = "set"
	SubtypeWeakmap    RemoteObjectSubtype = "weakmap"
	SubtypeWeakset    RemoteObjectSubtype = "weakset"
	SubtypeIterator   RemoteObjectSubtype = "iterator"
	SubtypeGenerator  RemoteObjectSubtype = "generator"
	SubtypeError      RemoteObjectSubtype = "error"
	SubtypeProxy      RemoteObjectSubtype = "proxy"
	SubtypePromise    RemoteObjectSubtype = "promise"
	SubtypeTypedarray RemoteObjectSubtype = "typedarray"
)

// RecognizedSubtypes "#<ClassName>"包装值中小写类名可以直接当作subtype的集合
var RecognizedSubtypes = []string{
	"array", "null", "node", "regexp", "date", "map", "set",
	"weakmap", "weakset", "iterator", "generator", "error",
	"proxy", "promise", "typedarray",
}

// TypedArrayClassNames 已知的TypedArray类名
var TypedArrayClassNames = []string{
	"Int8Array", "Uint8Array", "Uint8ClampedArray",
	"Int16Array", "Uint16Array", "Int32Array", "Uint32Array",
	"Float32Array", "Float64Array", "BigInt64Array", "BigUint64Array",
}

// NoisyVariableNames 捕获代理内部字段，出现无值条目时只按Info级别记录
var NoisyVariableNames = []string{
	"__proto__", "constructor", "hasOwnProperty", "caller", "arguments",
}

// PausedReasonOther 快照没有更精确的暂停原因，统一使用other
const PausedReasonOther = "other"

// CDP事件名
const (
	EventPaused       = "Debugger.paused"
	EventResumed      = "Debugger.resumed"
	EventScriptParsed = "Debugger.scriptParsed"
)
