package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fansqz/cdp-snapshot-adapter/constants"
	e "github.com/fansqz/cdp-snapshot-adapter/error"
	"github.com/fansqz/cdp-snapshot-adapter/protocol"
	"github.com/fansqz/cdp-snapshot-adapter/utils"
)

var (
	runtimeUnsupported = utils.List2set(constants.RuntimeUnsupportedMethods)
	runtimeNoop        = utils.List2set(constants.RuntimeNoopMethods)
)

// dispatchRuntime Runtime域的方法分发
func (a *Adapter) dispatchRuntime(ctx context.Context, method string, params json.RawMessage) (interface{}, error) {
	if method == "getProperties" {
		return a.onGetProperties(params)
	}
	switch {
	case runtimeUnsupported.Contains(method):
		return nil, fmt.Errorf("%w: Runtime.%s", e.ErrNotSupportedOnSnapshot, method)
	case runtimeNoop.Contains(method):
		return &protocol.EmptyResult{}, nil
	}
	return nil, fmt.Errorf("%w: Runtime.%s", e.ErrMethodNotRecognized, method)
}

// onGetProperties 按objectId取之前解析快照时存下的属性列表
// 查不到只可能是客户端拿着过期/别的会话的objectId来问
func (a *Adapter) onGetProperties(params json.RawMessage) (interface{}, error) {
	args := &protocol.GetPropertiesParams{}
	if err := json.Unmarshal(params, args); err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrInvalidParams, err)
	}
	properties, err := a.store.Get(args.ObjectID)
	if err != nil {
		return nil, err
	}
	return &protocol.GetPropertiesResult{Result: properties}, nil
}
