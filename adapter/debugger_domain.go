package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fansqz/cdp-snapshot-adapter/constants"
	e "github.com/fansqz/cdp-snapshot-adapter/error"
	"github.com/fansqz/cdp-snapshot-adapter/protocol"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
	"github.com/fansqz/cdp-snapshot-adapter/utils"
)

var (
	debuggerUnsupported = utils.List2set(constants.DebuggerUnsupportedMethods)
	debuggerNoop        = utils.List2set(constants.DebuggerNoopMethods)
	debuggerEmpty       = utils.List2set(constants.DebuggerEmptyMethods)
)

// dispatchDebugger Debugger域的方法分发
// 方法集合是封闭枚举的，集合之外的方法明确报"unrecognized method"，
// 不允许静默吞掉
func (a *Adapter) dispatchDebugger(ctx context.Context, method string, params json.RawMessage) (interface{}, error) {
	switch method {
	case "enable":
		return a.onDebuggerEnable()
	case "getScriptSource":
		return a.onGetScriptSource(params)
	case "removeBreakpoint":
		return a.onRemoveBreakpoint(ctx, params)
	case "resume":
		return a.onResume()
	case "setBreakpointByUrl":
		return a.onSetBreakpointByUrl(ctx, params)
	}
	switch {
	case debuggerUnsupported.Contains(method):
		return nil, fmt.Errorf("%w: Debugger.%s", e.ErrNotSupportedOnSnapshot, method)
	case debuggerNoop.Contains(method), debuggerEmpty.Contains(method):
		return &protocol.EmptyResult{}, nil
	}
	return nil, fmt.Errorf("%w: Debugger.%s", e.ErrMethodNotRecognized, method)
}

func (a *Adapter) onDebuggerEnable() (interface{}, error) {
	return &protocol.EnableResult{DebuggerID: a.service.GetDebuggerID()}, nil
}

// onGetScriptSource scriptId就是绝对路径，直接读文件内容
func (a *Adapter) onGetScriptSource(params json.RawMessage) (interface{}, error) {
	args := &protocol.GetScriptSourceParams{}
	if err := json.Unmarshal(params, args); err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrInvalidParams, err)
	}
	source, err := os.ReadFile(args.ScriptID)
	if err != nil {
		return nil, fmt.Errorf("read script %s fail: %w", args.ScriptID, err)
	}
	return &protocol.GetScriptSourceResult{ScriptSource: string(source)}, nil
}

func (a *Adapter) onRemoveBreakpoint(ctx context.Context, params json.RawMessage) (interface{}, error) {
	args := &protocol.RemoveBreakpointParams{}
	if err := json.Unmarshal(params, args); err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrInvalidParams, err)
	}
	if err := a.service.DeleteBreakpoint(ctx, args.BreakpointID); err != nil {
		return nil, err
	}
	a.notify(NotificationBreakpointListChanged)
	return &protocol.EmptyResult{}, nil
}

func (a *Adapter) onResume() (interface{}, error) {
	a.notify(NotificationResumed)
	return &protocol.EmptyResult{}, nil
}

// onSetBreakpointByUrl 创建一个CAPTURE型断点
// 行号从CDP的零索引翻回快照服务的一索引；响应里按CDP的习惯
// 把路径和零索引行号原样回显成唯一的location
func (a *Adapter) onSetBreakpointByUrl(ctx context.Context, params json.RawMessage) (interface{}, error) {
	args := &protocol.SetBreakpointByUrlParams{}
	if err := json.Unmarshal(params, args); err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrInvalidParams, err)
	}
	if args.URL == "" {
		if args.URLRegex != "" {
			return nil, fmt.Errorf("%w: urlRegex is not supported", e.ErrInvalidParams)
		}
		return nil, fmt.Errorf("%w: url is required", e.ErrInvalidParams)
	}
	created, err := a.service.CreateBreakpoint(ctx, &snapshot.Breakpoint{
		Action:    snapshot.ActionCapture,
		Location:  snapshot.NewSourceLocation(args.URL, ToOneIndexed(args.LineNumber)),
		Condition: args.Condition,
	})
	if err != nil {
		return nil, err
	}
	logrus.Infof("[Adapter] breakpoint %s set at %s:%d", created.ID, args.URL, args.LineNumber)
	a.notify(NotificationBreakpointListChanged)

	line, err := ToZeroIndexed(created.Location.Line)
	if err != nil {
		return nil, err
	}
	return &protocol.SetBreakpointByUrlResult{
		BreakpointID: created.ID,
		Locations: []*protocol.Location{
			{
				ScriptID:     args.URL,
				LineNumber:   line,
				ColumnNumber: 0,
			},
		},
	}, nil
}
