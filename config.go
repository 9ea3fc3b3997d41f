package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config 桥服务的配置
// 来源按优先级合并：命令行flag > yaml配置文件 > 交互式提问
type Config struct {
	// ServiceURL 快照服务地址
	ServiceURL string `yaml:"serviceUrl"`
	// DebuggeeID 被调试进程在快照服务中的标识
	DebuggeeID string `yaml:"debuggeeId"`
	// SourceRoot 源码根目录，虚拟脚本列表和栈帧路径都基于它
	SourceRoot string `yaml:"sourceRoot"`
	// ListenAddr CDP和扩展通道的监听地址
	ListenAddr string `yaml:"listenAddr"`
	LogFile    string `yaml:"logFile"`
	LogLevel   string `yaml:"logLevel"`
}

func defaultConfig() *Config {
	return &Config{
		ListenAddr: "127.0.0.1:9229",
		LogFile:    "/var/cdp-snapshot-adapter.log",
		LogLevel:   "info",
	}
}

// loadConfigFile 读取yaml配置文件，文件不存在时返回默认配置
func loadConfigFile(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s fail: %w", path, err)
	}
	return config, nil
}

// completeConfig 必填项缺失时，在终端里交互式问一遍
// 不是终端（比如被service管理）就直接报错
func completeConfig(config *Config) error {
	missing := map[string]*string{}
	if config.ServiceURL == "" {
		missing["snapshot service url"] = &config.ServiceURL
	}
	if config.DebuggeeID == "" {
		missing["debuggee id"] = &config.DebuggeeID
	}
	if config.SourceRoot == "" {
		missing["source root directory"] = &config.SourceRoot
	}
	if len(missing) == 0 {
		return nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("missing required config and stdin is not a terminal")
	}
	reader := bufio.NewReader(os.Stdin)
	for _, name := range []string{"snapshot service url", "debuggee id", "source root directory"} {
		target, ok := missing[name]
		if !ok {
			continue
		}
		fmt.Printf("%s: ", name)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		value := strings.TrimSpace(line)
		if value == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		*target = value
	}
	return nil
}
