package logger

import (
	"fmt"
	"io"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateConfig 日志轮转配置
type RotateConfig struct {
	Filename string // 日志文件路径

	// 按大小轮转（lumberjack）
	MaxSize    int  // 单个文件最大尺寸，单位 MB
	MaxBackups int  // 保留旧文件数量
	Compress   bool // 是否 gzip 压缩旧文件

	// 通用
	MaxAge    int  // 保留天数
	LocalTime bool // 备份文件名使用本地时间

	// 按时间轮转（file-rotatelogs）
	RotationTime time.Duration
}

// NewRotateBySize 按文件大小轮转
func NewRotateBySize(cfg *RotateConfig) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	}
}

// NewProductionRotateBySize 生产环境默认按大小轮转：100MB，保留 30 天
func NewProductionRotateBySize(filename string) io.WriteCloser {
	return NewRotateBySize(&RotateConfig{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 10,
		MaxAge:     30,
		Compress:   true,
		LocalTime:  true,
	})
}

// NewRotateByTime 按时间轮转
func NewRotateByTime(cfg *RotateConfig) (io.WriteCloser, error) {
	opts := []rotatelogs.Option{
		rotatelogs.WithLinkName(cfg.Filename),
	}
	if cfg.MaxAge > 0 {
		opts = append(opts, rotatelogs.WithMaxAge(time.Duration(cfg.MaxAge)*24*time.Hour))
	}
	if cfg.RotationTime > 0 {
		opts = append(opts, rotatelogs.WithRotationTime(cfg.RotationTime))
	}
	if cfg.LocalTime {
		opts = append(opts, rotatelogs.WithClock(rotatelogs.Local))
	} else {
		opts = append(opts, rotatelogs.WithClock(rotatelogs.UTC))
	}

	w, err := rotatelogs.New(cfg.Filename+".%Y%m%d%H", opts...)
	if err != nil {
		return nil, fmt.Errorf("create rotatelogs failed: %w", err)
	}
	return w, nil
}
