package glog

import (
	"go.uber.org/zap/zapcore"
)

// Config glog 配置
type Config struct {
	// Path 日志文件路径，为空时不写文件
	Path string `json:"path" yaml:"path"`
	// Level 日志级别: debug, info, warn, error, dpanic, panic, fatal
	Level string `json:"level" yaml:"level"`
	// PrintConsole 是否同时输出到控制台
	PrintConsole bool `json:"printConsole" yaml:"printConsole"`
	// File 文件切割配置
	File FileConfig `json:"file" yaml:"file"`
}

// FileConfig lumberjack 切割配置
type FileConfig struct {
	// MaxSize 单个日志文件最大大小（MB）
	MaxSize int `json:"maxSize" yaml:"maxSize"`
	// MaxBackups 最多保留的旧文件数
	MaxBackups int `json:"maxBackups" yaml:"maxBackups"`
	// MaxAge 旧文件保留天数
	MaxAge int `json:"maxAge" yaml:"maxAge"`
	Compress  bool `json:"compress" yaml:"compress"`
	LocalTime bool `json:"localTime" yaml:"localTime"`
}

// DefaultConfig 库被引用时的默认配置：只输出到控制台，不落盘
func DefaultConfig() *Config {
	return &Config{
		Path:         "",
		Level:        "info",
		PrintConsole: true,
		File: FileConfig{
			MaxSize:    500,
			MaxBackups: 100,
			MaxAge:     30,
			LocalTime:  true,
		},
	}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "dpanic":
		return zapcore.DPanicLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
