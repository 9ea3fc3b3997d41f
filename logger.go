package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logFile *os.File

// SetupLogger 日志同时写到文件和标准输出
func SetupLogger(path string, level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	logFile, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, os.ModePerm)
	if err != nil {
		// 打不开日志文件就只写标准输出
		logrus.Warnf("open log file %s fail, err = %v", path, err)
		return
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, logFile))
}

func CloseLogger() {
	if logFile != nil {
		_ = logFile.Close()
	}
}
