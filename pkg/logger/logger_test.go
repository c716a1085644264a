package logger

import (
	"testing"

	gormlogger "gorm.io/gorm/logger"

	"emploi/config"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "info", Format: format})
		if err != nil {
			t.Fatalf("format=%s 初始化失败: %v", format, err)
		}
		if l == nil {
			t.Fatalf("format=%s 返回 nil", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "verbose", Format: "json"}); err == nil {
		t.Error("无效日志级别应返回错误")
	}
}

func TestGormLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"debug": gormlogger.Info,
		"info":  gormlogger.Warn,
		"warn":  gormlogger.Warn,
		"error": gormlogger.Error,
		"fatal": gormlogger.Silent,
	}
	for in, want := range cases {
		if got := GormLogLevel(in); got != want {
			t.Errorf("GormLogLevel(%q)=%v，期望 %v", in, got, want)
		}
	}
}
