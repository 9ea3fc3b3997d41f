package error

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSupportedOnSnapshot 快照是一次性的捕获结果，不支持单步、求值、修改变量等实时操作
	ErrNotSupportedOnSnapshot = errors.New("operation not supported against a point-in-time capture")
	// ErrMethodNotRecognized 未知的CDP方法
	ErrMethodNotRecognized = errors.New("unrecognized method")
	// ErrObjectNotFound objectId在属性表中不存在
	ErrObjectNotFound = errors.New("object identifier not found")
	// ErrBreakpointNotFound 断点不存在
	ErrBreakpointNotFound = errors.New("breakpoint not found")
	// ErrInvalidLineNumber 一索引的行号不能小于1
	ErrInvalidLineNumber = errors.New("invalid line number, one-indexed line numbers start at 1")
	// ErrInvalidParams 请求参数校验失败
	ErrInvalidParams = errors.New("invalid request params")
	// ErrSnapshotNotFinal 未完成捕获的断点不能当作快照翻译
	ErrSnapshotNotFinal = errors.New("breakpoint is still pending, not a snapshot")
)

// DataShapeError 捕获数据不符合变量表/栈帧的预期形状
// 该错误会中断整个快照的翻译，不存在部分翻译成功的快照
type DataShapeError struct {
	Detail string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("snapshot data shape violation: %s", e.Detail)
}

func NewDataShapeError(format string, args ...interface{}) *DataShapeError {
	return &DataShapeError{Detail: fmt.Sprintf(format, args...)}
}

// IsDataShapeError 判断err是否是数据形状错误
func IsDataShapeError(err error) bool {
	var target *DataShapeError
	return errors.As(err, &target)
}
