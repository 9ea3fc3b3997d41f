package main

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFile(t *testing.T) {
	configPath := path.Join(t.TempDir(), "config.yaml")
	content := `
serviceUrl: http://localhost:9100
debuggeeId: debuggee-1
sourceRoot: /workspace/app
listenAddr: 127.0.0.1:9230
logLevel: debug
`
	assert.Nil(t, os.WriteFile(configPath, []byte(content), 0644))

	config, err := loadConfigFile(configPath)
	assert.Nil(t, err)
	assert.Equal(t, "http://localhost:9100", config.ServiceURL)
	assert.Equal(t, "debuggee-1", config.DebuggeeID)
	assert.Equal(t, "/workspace/app", config.SourceRoot)
	assert.Equal(t, "127.0.0.1:9230", config.ListenAddr)
	assert.Equal(t, "debug", config.LogLevel)
	// 文件里没写的字段保留默认值
	assert.Equal(t, "/var/cdp-snapshot-adapter.log", config.LogFile)
}

func TestLoadConfigFileMissing(t *testing.T) {
	// 文件不存在时用默认配置
	config, err := loadConfigFile("/no/such/config.yaml")
	assert.Nil(t, err)
	assert.Equal(t, "127.0.0.1:9229", config.ListenAddr)

	config, err = loadConfigFile("")
	assert.Nil(t, err)
	assert.Equal(t, "info", config.LogLevel)
}
