package adapter

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/fansqz/cdp-snapshot-adapter/constants"
	e "github.com/fansqz/cdp-snapshot-adapter/error"
	"github.com/fansqz/cdp-snapshot-adapter/protocol"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
	"github.com/fansqz/cdp-snapshot-adapter/utils"
)

// TranslateSnapshot 把一个完成捕获的快照合成CDP的Debugger.paused事件参数
// CDP期望的是"程序此刻停住了"，快照给到的是"程序当时的一次性捕获"，
// 这里把捕获到的栈帧和变量表伪装成暂停现场：每个栈帧配一个local作用域，
// 作用域的属性列表存进对象表，等前端按objectId懒加载。
func (a *Adapter) TranslateSnapshot(breakpoint *snapshot.Breakpoint) (*protocol.PausedEventBody, error) {
	logrus.Infof("[Adapter] TranslateSnapshot %s", breakpoint.ID)
	if !breakpoint.IsFinalState {
		return nil, e.ErrSnapshotNotFinal
	}
	resolver := NewVariableResolver(breakpoint.ID, breakpoint.VariableTable, a.store)
	if _, err := resolver.Resolve(); err != nil {
		return nil, err
	}

	callFrames := make([]*protocol.CallFrame, 0, len(breakpoint.StackFrames))
	for index, frame := range breakpoint.StackFrames {
		callFrame, err := a.translateStackFrame(resolver, breakpoint.ID, index, frame)
		if err != nil {
			return nil, err
		}
		callFrames = append(callFrames, callFrame)
	}
	return &protocol.PausedEventBody{
		CallFrames:     callFrames,
		Reason:         constants.PausedReasonOther,
		HitBreakpoints: []string{breakpoint.ID},
	}, nil
}

// translateStackFrame 翻译单个栈帧，输出顺序和输入顺序一致
func (a *Adapter) translateStackFrame(resolver *VariableResolver, snapshotID string, index int, frame *snapshot.StackFrame) (*protocol.CallFrame, error) {
	// 独立的arguments字段不是本翻译支持的捕获形状
	if len(frame.Arguments) > 0 {
		return nil, e.NewDataShapeError("stack frame %d carries arguments data", index)
	}
	if frame.Location == nil {
		return nil, e.NewDataShapeError("stack frame %d has no location", index)
	}

	locals := frame.Locals
	this := &protocol.RemoteObject{Type: constants.TypeUndefined}
	// 约定：最后一个local名为context且带反向引用时，它是帧的this绑定，
	// 从普通locals里摘出来，不进作用域属性列表
	if len(locals) > 0 {
		last := locals[len(locals)-1]
		if last.Name == "context" && last.VarTableIndex != nil {
			descriptor, ok := resolver.descriptorAt(*last.VarTableIndex)
			if !ok {
				return nil, e.NewDataShapeError("frame %d context references unresolvable table entry %d", index, *last.VarTableIndex)
			}
			this = descriptor
			locals = locals[:len(locals)-1]
		}
	}

	properties, err := resolver.resolveMembers(locals)
	if err != nil {
		return nil, err
	}
	scopeID := utils.GetUUID()
	a.store.Put(scopeID, properties)

	line, err := ToZeroIndexed(frame.Location.Line)
	if err != nil {
		return nil, err
	}
	scriptPath := filepath.Join(a.sourceRoot, frame.Location.Path)
	return &protocol.CallFrame{
		CallFrameID:  FrameID(snapshotID, index),
		FunctionName: frame.Function,
		Location: &protocol.Location{
			ScriptID:     scriptPath,
			LineNumber:   line,
			ColumnNumber: 0,
		},
		URL: scriptPath,
		ScopeChain: []*protocol.Scope{
			{
				Type: "local",
				Object: &protocol.RemoteObject{
					Type:        constants.TypeObject,
					ClassName:   "Object",
					Description: "Object",
					ObjectID:    scopeID,
				},
			},
		},
		This: this,
	}, nil
}
