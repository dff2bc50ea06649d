package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	pkgConfig "github.com/junbin-yang/go-toaster/pkg/config"
	"github.com/junbin-yang/go-toaster/pkg/logger"
)

const AppName = "toaster"

// Config 应用配置
type Config struct {
	Device DeviceConfig `yaml:"device" json:"device" ini:"device"`
	Logger LoggerConfig `yaml:"logger" json:"logger" ini:"logger"`
	Demo   DemoConfig   `yaml:"demo" json:"demo" ini:"demo"`
}

// DeviceConfig 设备配置
type DeviceConfig struct {
	Name string `yaml:"name" json:"name" ini:"name" env:"TOASTER_DEVICE_NAME"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string        `yaml:"level" json:"level" ini:"level" env:"TOASTER_LOG_LEVEL"`
	Output       string        `yaml:"output" json:"output" ini:"output" env:"TOASTER_LOG_OUTPUT"` // stderr, stdout 或文件路径
	Rotate       string        `yaml:"rotate" json:"rotate" ini:"rotate"`                          // 空, size 或 time
	MaxSize      int           `yaml:"max_size" json:"max_size" ini:"max_size"`
	MaxBackups   int           `yaml:"max_backups" json:"max_backups" ini:"max_backups"`
	MaxAge       int           `yaml:"max_age" json:"max_age" ini:"max_age"`
	Compress     bool          `yaml:"compress" json:"compress" ini:"compress"`
	RotationTime time.Duration `yaml:"rotation_time" json:"rotation_time" ini:"rotation_time"`
}

// DemoConfig 演示脚本配置
type DemoConfig struct {
	Cycles int `yaml:"cycles" json:"cycles" ini:"cycles" env:"TOASTER_DEMO_CYCLES"`
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults 在解析配置文件前调用，文件中显式给出的值（包括 demo.cycles: 0）会覆盖默认值
func (c *Config) SetDefaults() {
	c.Device.Name = AppName
	c.Logger.Level = "info"
	c.Logger.Output = "stderr"
	c.Demo.Cycles = 1
}

// applyDefaults 补全显式写成空字符串的字段
func (c *Config) applyDefaults() {
	if c.Device.Name == "" {
		c.Device.Name = AppName
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Output == "" {
		c.Logger.Output = "stderr"
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Logger.Level); err != nil {
		return err
	}
	switch c.Logger.Rotate {
	case "", "size", "time":
	default:
		return fmt.Errorf("unknown logger.rotate %q", c.Logger.Rotate)
	}
	if c.Demo.Cycles < 0 {
		return fmt.Errorf("demo.cycles must not be negative, got %d", c.Demo.Cycles)
	}
	return nil
}

// Load 加载配置，path 为空时按默认路径查找，找不到则使用默认配置
func Load(path string, opts ...pkgConfig.Option) (*Config, *pkgConfig.Manager[Config], error) {
	opts = append([]pkgConfig.Option{pkgConfig.WithAppName(AppName)}, opts...)
	mgr := pkgConfig.New[Config](opts...)

	cfg, err := mgr.Load(path)
	if err != nil {
		if path == "" && errors.Is(err, pkgConfig.ErrConfigNotFound) {
			return Default(), mgr, nil
		}
		return nil, nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", mgr.Path(), err)
	}
	return cfg, mgr, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// output 根据配置创建日志输出，标准输出/错误的 Close 为空操作
func (c LoggerConfig) output() (io.WriteCloser, error) {
	switch c.Output {
	case "", "stderr":
		return nopCloser{os.Stderr}, nil
	case "stdout":
		return nopCloser{os.Stdout}, nil
	}

	rc := &logger.RotateConfig{
		Filename:     c.Output,
		MaxSize:      c.MaxSize,
		MaxBackups:   c.MaxBackups,
		MaxAge:       c.MaxAge,
		Compress:     c.Compress,
		LocalTime:    true,
		RotationTime: c.RotationTime,
	}
	switch c.Rotate {
	case "size":
		if c.MaxSize == 0 {
			return logger.NewProductionRotateBySize(c.Output), nil
		}
		return logger.NewRotateBySize(rc), nil
	case "time":
		return logger.NewRotateByTime(rc)
	}

	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file failed: %w", err)
	}
	return f, nil
}

// NewLogger 根据配置创建日志，调用方在 Sync 之后负责关闭返回的输出
func (c LoggerConfig) NewLogger() (*logger.ZapLogger, io.Closer, error) {
	level, err := logger.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}
	out, err := c.output()
	if err != nil {
		return nil, nil, err
	}
	return logger.New(out, level, logger.AddCaller()), out, nil
}
