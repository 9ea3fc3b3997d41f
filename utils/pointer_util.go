package utils

// GetPointValue 取值的指针，测试里构造可选字段用
func GetPointValue[T any](value T) *T {
	return &value
}
