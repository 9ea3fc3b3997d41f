package protocol

import "github.com/fansqz/cdp-snapshot-adapter/constants"

// RemoteObject CDP的远程对象描述符
// 一旦构建完成就不再修改，objectId作为后续Runtime.getProperties查询的key
type RemoteObject struct {
	Type                constants.RemoteObjectType    `json:"type"`
	Subtype             constants.RemoteObjectSubtype `json:"subtype,omitempty"`
	ClassName           string                        `json:"className,omitempty"`
	Value               interface{}                   `json:"value,omitempty"`
	UnserializableValue string                        `json:"unserializableValue,omitempty"`
	Description         string                        `json:"description,omitempty"`
	ObjectID            string                        `json:"objectId,omitempty"`
}

// PropertyDescriptor 对象的一个属性
type PropertyDescriptor struct {
	Name         string        `json:"name"`
	Value        *RemoteObject `json:"value,omitempty"`
	Writable     bool          `json:"writable"`
	Configurable bool          `json:"configurable"`
	Enumerable   bool          `json:"enumerable"`
}

// Location 脚本中的位置，lineNumber是CDP的零索引行号
type Location struct {
	ScriptID     string `json:"scriptId"`
	LineNumber   int    `json:"lineNumber"`
	ColumnNumber int    `json:"columnNumber"`
}

// Scope 作用域，object.objectId指向该作用域的属性表
type Scope struct {
	Type   string        `json:"type"`
	Object *RemoteObject `json:"object"`
}

// CallFrame 合成的CDP调用栈帧
// 快照服务只给出函数名、文件和行号，作用域链由变量表翻译而来
type CallFrame struct {
	CallFrameID  string        `json:"callFrameId"`
	FunctionName string        `json:"functionName"`
	Location     *Location     `json:"location"`
	URL          string        `json:"url"`
	ScopeChain   []*Scope      `json:"scopeChain"`
	This         *RemoteObject `json:"this"`
}
