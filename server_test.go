package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	e "github.com/fansqz/cdp-snapshot-adapter/error"
	"github.com/fansqz/cdp-snapshot-adapter/protocol"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{e.ErrNotSupportedOnSnapshot, protocol.ErrorCodeNotSupported},
		{e.ErrMethodNotRecognized, protocol.ErrorCodeNotSupported},
		{e.ErrInvalidParams, protocol.ErrorCodeInvalidParams},
		{e.ErrInvalidLineNumber, protocol.ErrorCodeInvalidParams},
		{e.ErrObjectNotFound, protocol.ErrorCodeNotFound},
		{e.ErrBreakpointNotFound, protocol.ErrorCodeNotFound},
		{e.NewDataShapeError("bad shape"), protocol.ErrorCodeDataShape},
		{assert.AnError, protocol.ErrorCodeInternal},
	}
	for _, test := range tests {
		assert.Equal(t, test.code, errorCode(test.err), "err = %v", test.err)
	}
}

func TestSplitBreakpointInfoLists(t *testing.T) {
	breakpoints := []*snapshot.Breakpoint{
		{ID: "bp-1", Location: snapshot.NewSourceLocation("a.js", 3)},
		{ID: "bp-2", IsFinalState: true, Location: snapshot.NewSourceLocation("b.js", 7)},
		{ID: "bp-3"},
	}
	lists := splitBreakpointInfoLists(breakpoints)
	assert.Equal(t, 2, len(lists.PendingBreakpointInfoList))
	assert.Equal(t, 1, len(lists.CapturedSnapshotInfoList))
	assert.Equal(t, &protocol.BreakpointInfo{Name: "a.js:3", ID: "bp-1"}, lists.PendingBreakpointInfoList[0])
	assert.Equal(t, &protocol.BreakpointInfo{Name: "b.js:7", ID: "bp-2"}, lists.CapturedSnapshotInfoList[0])
	// 没有位置信息时退回用id做展示名
	assert.Equal(t, "bp-3", lists.PendingBreakpointInfoList[1].Name)
}

func TestHandleDiscovery(t *testing.T) {
	config := defaultConfig()
	config.DebuggeeID = "debuggee-1"
	config.SourceRoot = "/workspace/app"
	server := NewServer(config, nil, nil, nil, nil)

	recorder := httptest.NewRecorder()
	server.handleDiscovery(recorder, httptest.NewRequest(http.MethodGet, "/json", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var descriptors []map[string]string
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &descriptors))
	assert.Equal(t, 1, len(descriptors))
	assert.Equal(t, "debuggee-1", descriptors[0]["id"])
	assert.Equal(t, "ws://127.0.0.1:9229/cdp", descriptors[0]["webSocketDebuggerUrl"])
}

func TestBreakpointDisplayName(t *testing.T) {
	assert.Equal(t, "src/main.js:12", breakpointDisplayName(&snapshot.Breakpoint{
		ID:       "bp-1",
		Location: snapshot.NewSourceLocation("src/main.js", 12),
	}))
}
