package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/fansqz/cdp-snapshot-adapter/adapter"
	"github.com/fansqz/cdp-snapshot-adapter/scanner"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
)

// 定义版本号
const Version = "1.0.0"

func main() {
	showVersion := flag.Bool("version", false, "Show the version number")
	configPath := flag.String("config", "", "Path to yaml config file")
	serviceURL := flag.String("service", "", "Snapshot service url")
	debuggeeID := flag.String("debuggee", "", "Debuggee id")
	sourceRoot := flag.String("root", "", "Source root directory")
	listenAddr := flag.String("listen", "", "Listen address")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Version: %s\n", Version)
		return
	}

	config, err := loadConfigFile(*configPath)
	if err != nil {
		fmt.Printf("load config fail: %v\n", err)
		os.Exit(1)
	}
	// flag优先于配置文件
	if *serviceURL != "" {
		config.ServiceURL = *serviceURL
	}
	if *debuggeeID != "" {
		config.DebuggeeID = *debuggeeID
	}
	if *sourceRoot != "" {
		config.SourceRoot = *sourceRoot
	}
	if *listenAddr != "" {
		config.ListenAddr = *listenAddr
	}
	// 还缺的必填项在终端里问
	if err = completeConfig(config); err != nil {
		fmt.Printf("config incomplete: %v\n", err)
		os.Exit(1)
	}

	SetupLogger(config.LogFile, config.LogLevel)
	defer CloseLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 虚拟脚本列表：前端需要的"已解析脚本"从文件系统扫出来
	scripts, err := scanner.Scan(ctx, config.SourceRoot)
	if err != nil {
		logrus.Errorf("[main] scan source root fail, err = %v", err)
		os.Exit(1)
	}

	client := snapshot.NewClient(config.ServiceURL, config.DebuggeeID)
	watcher := snapshot.NewWatcher(client)
	watcher.Start(ctx)

	bridge := adapter.NewAdapter(client, config.SourceRoot)
	server := NewServer(config, bridge, client, watcher, scripts)
	if err = server.Run(ctx); err != nil {
		logrus.Errorf("[main] server exited, err = %v", err)
		os.Exit(1)
	}
}
