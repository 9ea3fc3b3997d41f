package adapter

import (
	"github.com/sirupsen/logrus"

	"github.com/fansqz/cdp-snapshot-adapter/constants"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
	"github.com/fansqz/cdp-snapshot-adapter/utils"
)

var noisyVariableNames = utils.List2set(constants.NoisyVariableNames)

// classifyStatusVariable 处理没有可用值的变量表条目
// 这不是错误路径：这类条目是状态标记，分三档记录日志，从不返回错误。
func classifyStatusVariable(variable *snapshot.Variable) {
	switch {
	case variable.Status != nil && variable.Status.IsError:
		// 捕获代理明确标记了"该变量捕获出错"
		logrus.Debugf("[StatusClassifier] variable %q reported capture error: %s",
			variable.Name, variable.Status.Description)
	case noisyVariableNames.Contains(variable.Name):
		// 已知的内部噪声字段
		logrus.Infof("[StatusClassifier] skipping internal field %q", variable.Name)
	default:
		// 未识别的捕获形状，值得人工排查，所以用更显眼的级别
		logrus.Warnf("[StatusClassifier] variable %q carries neither value nor reference, unrecognized capture shape",
			variable.Name)
	}
}
