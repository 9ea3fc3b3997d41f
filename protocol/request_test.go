package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMethod(t *testing.T) {
	request := &Request{Method: "Debugger.setBreakpointByUrl"}
	domain, method := request.SplitMethod()
	assert.Equal(t, "Debugger", domain)
	assert.Equal(t, "setBreakpointByUrl", method)

	// 只按第一个'.'拆分
	request = &Request{Method: "Domain.method.with.dots"}
	domain, method = request.SplitMethod()
	assert.Equal(t, "Domain", domain)
	assert.Equal(t, "method.with.dots", method)

	request = &Request{Method: "nodot"}
	domain, method = request.SplitMethod()
	assert.Equal(t, "nodot", domain)
	assert.Equal(t, "", method)
}

func TestResponseMarshal(t *testing.T) {
	// result和error互斥，空的一边不出现在JSON里
	data, err := json.Marshal(&Response{ID: 7, Result: &EmptyResult{}})
	assert.Nil(t, err)
	assert.JSONEq(t, `{"id":7,"result":{}}`, string(data))

	data, err = json.Marshal(&Response{ID: 8, Error: &ResponseError{Code: ErrorCodeNotFound, Message: "object identifier not found"}})
	assert.Nil(t, err)
	assert.JSONEq(t, `{"id":8,"error":{"code":-32001,"message":"object identifier not found"}}`, string(data))
}
