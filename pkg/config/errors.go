package config

import "errors"

var (
	// ErrNotLoaded 尚未调用 Load
	ErrNotLoaded = errors.New("config not loaded")

	// ErrConfigNotFound 默认路径下没有找到配置文件
	ErrConfigNotFound = errors.New("no valid config file found")
)
