package config

import (
	"time"

	"github.com/junbin-yang/go-toaster/pkg/logger"
)

const defaultWatchDebounce = 500 * time.Millisecond

type options struct {
	appName          string       // 应用名称
	serializer       Serializer   // 默认序列化器
	forceFormat      Serializer   // 强制指定的格式（优先级最高）
	supportedFormats []Serializer // 支持的配置格式列表
	defaultPaths     []string     // 默认配置路径模板
	enableWatch      bool         // 是否启用配置监听
	watchDebounce    time.Duration
	log              logger.Logger
}

func defaultOptions() options {
	return options{
		appName:          "app",
		serializer:       &YAMLSerializer{},
		supportedFormats: []Serializer{&YAMLSerializer{}, &JSONSerializer{}, &INISerializer{}},
		defaultPaths: []string{
			"./{{.AppName}}",
			"{{.ExecDir}}/{{.AppName}}",
			"/etc/{{.AppName}}",
		},
		watchDebounce: defaultWatchDebounce,
	}
}

// Option 配置管理器选项
type Option func(*options)

// WithAppName 设置应用名称（用于默认配置文件名）
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithSerializer 设置默认序列化器
func WithSerializer(s Serializer) Option {
	return func(o *options) {
		o.serializer = s
	}
}

// WithForceFormat 强制指定配置格式（无视文件后缀）
func WithForceFormat(s Serializer) Option {
	return func(o *options) {
		o.forceFormat = s
	}
}

// WithDefaultPaths 设置默认配置文件查找路径
func WithDefaultPaths(paths ...string) Option {
	return func(o *options) {
		o.defaultPaths = paths
	}
}

// WithConfigFormats 设置支持的配置格式列表
func WithConfigFormats(formats ...Serializer) Option {
	return func(o *options) {
		o.supportedFormats = formats
	}
}

// WithConfigWatch 启用配置文件监听（文件变化自动重载）
func WithConfigWatch(enable bool, interval time.Duration) Option {
	return func(o *options) {
		o.enableWatch = enable
		o.watchDebounce = interval
		if interval <= 0 {
			o.watchDebounce = defaultWatchDebounce
		}
	}
}

// WithLogger 设置监听日志输出
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}
