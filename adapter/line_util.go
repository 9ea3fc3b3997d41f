package adapter

import (
	e "github.com/fansqz/cdp-snapshot-adapter/error"
)

// 快照服务使用一索引行号，CDP使用零索引行号，两个方向互为逆运算

// ToZeroIndexed 一索引转零索引，一索引行号不可能小于1
func ToZeroIndexed(line int) (int, error) {
	if line < 1 {
		return 0, e.ErrInvalidLineNumber
	}
	return line - 1, nil
}

// ToOneIndexed 零索引转一索引
func ToOneIndexed(line int) int {
	return line + 1
}
