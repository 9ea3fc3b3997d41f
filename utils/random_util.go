package utils

import (
	"log"

	"github.com/google/uuid"
)

// GetUUID 生成作用域等一次性标识使用的uuid
func GetUUID() string {
	u1, err := uuid.NewUUID()
	if err != nil {
		log.Fatal(err)
	}
	return u1.String()
}
