package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/junbin-yang/go-toaster/pkg/logger"
)

// Defaulter 由配置类型实现，在解析文件前填充默认值，文件中显式给出的值会覆盖默认值
type Defaulter interface {
	SetDefaults()
}

// Manager 通用配置管理器，T 为配置结构体类型
type Manager[T any] struct {
	options

	mu         sync.RWMutex
	instance   *T         // 当前配置
	configPath string     // 配置文件路径
	serializer Serializer // 当前使用的序列化器
	callbacks  []func(old, new *T)

	watchMu   sync.Mutex
	watcher   *fsnotify.Watcher
	watchQuit chan struct{}
	watchDone chan struct{}
}

// New 创建配置管理器
func New[T any](opts ...Option) *Manager[T] {
	m := &Manager[T]{options: defaultOptions()}
	for _, opt := range opts {
		opt(&m.options)
	}
	if m.log == nil {
		m.log = logger.Default()
	}
	m.serializer = m.options.serializer
	return m
}

// Load 加载配置文件
// customPath: 自定义配置路径，空字符串使用默认路径
func (m *Manager[T]) Load(customPath string) (*T, error) {
	var (
		path string
		ser  Serializer
		err  error
	)

	if customPath != "" {
		if err = validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid custom config path: %w", err)
		}
		path, ser = customPath, m.chooseSerializer(customPath)
	} else if path, ser, err = m.findDefaultConfigPath(); err != nil {
		return nil, fmt.Errorf("default config not found: %w", err)
	}

	cfg, err := m.parse(path, ser)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.instance = cfg
	m.configPath = path
	m.serializer = ser
	m.mu.Unlock()

	if m.enableWatch {
		if err := m.startWatch(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Get 获取当前配置，未加载时返回 nil
func (m *Manager[T]) Get() *T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instance
}

// Path 返回当前配置文件路径
func (m *Manager[T]) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configPath
}

// Save 保存配置到文件
func (m *Manager[T]) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.instance == nil || m.configPath == "" {
		return ErrNotLoaded
	}

	data, err := m.serializer.Marshal(m.instance)
	if err != nil {
		return fmt.Errorf("marshal config failed: %w", err)
	}

	// 先写入临时文件（避免文件损坏）
	tmpPath := m.configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp config failed: %w", err)
	}
	if err := os.Rename(tmpPath, m.configPath); err != nil {
		return fmt.Errorf("rename temp config failed: %w", err)
	}
	return nil
}

// Reload 手动重新加载配置，成功后触发 OnChange 回调
func (m *Manager[T]) Reload() error {
	m.mu.RLock()
	path, ser := m.configPath, m.serializer
	m.mu.RUnlock()

	if path == "" {
		return ErrNotLoaded
	}
	if err := validateConfigPath(path); err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}

	cfg, err := m.parse(path, ser)
	if err != nil {
		return err
	}

	m.mu.Lock()
	old := m.instance
	m.instance = cfg
	callbacks := make([]func(old, new *T), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	// 回调在锁外执行
	for _, fn := range callbacks {
		fn(old, cfg)
	}
	return nil
}

// OnChange 注册配置变更回调
func (m *Manager[T]) OnChange(fn func(old, new *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// EnableWatch 动态启用/禁用配置监听
func (m *Manager[T]) EnableWatch(enable bool) error {
	m.enableWatch = enable
	if !enable {
		m.stopWatch()
		return nil
	}
	if m.Path() == "" {
		return nil
	}
	return m.startWatch()
}

// Close 关闭配置管理器（停止监听）
func (m *Manager[T]) Close() {
	m.stopWatch()
}

/* ------------------------------ 内部方法 ------------------------------ */

// parse 读取并解析到新实例，再应用环境变量覆盖
func (m *Manager[T]) parse(path string, ser Serializer) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file failed: %w", err)
	}

	cfg := new(T)
	if d, ok := any(cfg).(Defaulter); ok {
		d.SetDefaults()
	}
	if err := ser.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal failed (%s): %w", ser.GetName(), err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides failed: %w", err)
	}
	return cfg, nil
}

// chooseSerializer 强制格式 > 后缀识别 > 默认
func (m *Manager[T]) chooseSerializer(path string) Serializer {
	if m.forceFormat != nil {
		return m.forceFormat
	}

	ext := filepath.Ext(path)
	for _, format := range m.supportedFormats {
		for _, e := range format.GetFileExts() {
			if e == ext {
				return format
			}
		}
	}
	return m.options.serializer
}

// findDefaultConfigPath 查找默认配置路径
func (m *Manager[T]) findDefaultConfigPath() (string, Serializer, error) {
	execPath, _ := os.Executable()
	execDir := filepath.Dir(execPath)

	for _, pathTpl := range m.defaultPaths {
		basePath := replacePathVars(pathTpl, map[string]string{
			"AppName": m.appName,
			"ExecDir": execDir,
		})

		// 先尝试无后缀文件，可执行文件本身与应用同名时跳过
		if isConfigCandidate(basePath, execPath) {
			return basePath, m.chooseSerializer(basePath), nil
		}

		for _, format := range m.supportedFormats {
			for _, ext := range format.GetFileExts() {
				fullPath := basePath + ext
				if isConfigCandidate(fullPath, execPath) {
					return fullPath, format, nil
				}
			}
		}
	}

	return "", nil, ErrConfigNotFound
}

// startWatch 监听配置文件所在目录，编辑器的重命名写入也能捕获
func (m *Manager[T]) startWatch() error {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.watcher != nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher failed: %w", err)
	}

	path := filepath.Clean(m.Path())
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("add watch path failed: %w", err)
	}

	m.watcher = w
	m.watchQuit = make(chan struct{})
	m.watchDone = make(chan struct{})
	go m.watchLoop(w, path, m.watchQuit, m.watchDone)
	return nil
}

// stopWatch 停止配置文件监听并等待协程退出
func (m *Manager[T]) stopWatch() {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.watcher == nil {
		return
	}
	close(m.watchQuit)
	<-m.watchDone
	_ = m.watcher.Close()
	m.watcher = nil
}

// watchLoop 监听文件变化循环
func (m *Manager[T]) watchLoop(w *fsnotify.Watcher, path string, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var debounce <-chan time.Time
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce = time.After(m.watchDebounce)
			}

		case <-debounce:
			debounce = nil
			if err := m.Reload(); err != nil {
				m.log.Warn("config auto reload failed", logger.String("path", path), logger.Err(err))
			} else {
				m.log.Info("config auto reloaded", logger.String("path", path))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			m.log.Warn("config watch error", logger.Err(err))

		case <-quit:
			return
		}
	}
}
