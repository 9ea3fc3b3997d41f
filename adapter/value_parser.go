package adapter

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fansqz/cdp-snapshot-adapter/constants"
	"github.com/fansqz/cdp-snapshot-adapter/protocol"
)

var (
	functionPattern = regexp.MustCompile(`^function\s*[A-Za-z0-9_$]*\s*\(.*\)\s*$`)
	regexpPattern   = regexp.MustCompile(`^/.*/[a-z]*$`)
)

// ParseValue 把快照服务的字符串值翻译成最可能对应的CDP远程对象
// 匹配顺序固定，大小写敏感，第一个命中的规则生效。
// 上游捕获格式本身无法区分数字42和字符串"42"，这种歧义按原样保留，
// 不做任何启发式修复。
func ParseValue(raw string) *protocol.RemoteObject {
	// 字面量关键字
	switch raw {
	case "undefined":
		return &protocol.RemoteObject{Type: constants.TypeUndefined}
	case "null":
		return &protocol.RemoteObject{
			Type:        constants.TypeObject,
			Subtype:     constants.SubtypeNull,
			Description: raw,
		}
	case "true", "false":
		return &protocol.RemoteObject{
			Type:        constants.TypeBoolean,
			Value:       raw == "true",
			Description: raw,
		}
	case "NaN", "Infinity", "-Infinity":
		// 无法JSON序列化的数字用unserializableValue携带字面量
		return &protocol.RemoteObject{
			Type:                constants.TypeNumber,
			UnserializableValue: raw,
			Description:         raw,
		}
	}
	if strings.HasPrefix(raw, "Symbol(") {
		return &protocol.RemoteObject{
			Type:        constants.TypeSymbol,
			Description: raw,
		}
	}
	if functionPattern.MatchString(raw) {
		// 捕获数据里永远没有函数体，补一个空函数体标记
		return &protocol.RemoteObject{
			Type:        constants.TypeFunction,
			ClassName:   "Function",
			Description: raw + " { }",
		}
	}
	if regexpPattern.MatchString(raw) {
		return &protocol.RemoteObject{
			Type:        constants.TypeObject,
			Subtype:     constants.SubtypeRegexp,
			ClassName:   "RegExp",
			Description: raw,
		}
	}
	if number, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(number, 0) && !math.IsNaN(number) {
		return &protocol.RemoteObject{
			Type:        constants.TypeNumber,
			Value:       number,
			Description: raw,
		}
	}
	return &protocol.RemoteObject{
		Type:  constants.TypeString,
		Value: raw,
	}
}
