package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	e "github.com/fansqz/cdp-snapshot-adapter/error"
)

func TestLineTranslationRoundTrip(t *testing.T) {
	// 两个方向互为逆运算
	for _, line := range []int{1, 2, 10, 1337, 100000} {
		zero, err := ToZeroIndexed(line)
		assert.Nil(t, err)
		assert.Equal(t, line-1, zero)
		assert.Equal(t, line, ToOneIndexed(zero))
	}
	for _, line := range []int{0, 5, 99} {
		zero, err := ToZeroIndexed(ToOneIndexed(line))
		assert.Nil(t, err)
		assert.Equal(t, line, zero)
	}
}

func TestToZeroIndexedInvalid(t *testing.T) {
	// 一索引行号不可能小于1
	for _, line := range []int{0, -1, -100} {
		_, err := ToZeroIndexed(line)
		assert.ErrorIs(t, err, e.ErrInvalidLineNumber)
	}
}
