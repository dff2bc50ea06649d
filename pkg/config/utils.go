package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// replacePathVars 替换路径模板变量
func replacePathVars(tpl string, vars map[string]string) string {
	result := tpl
	for k, v := range vars {
		result = strings.ReplaceAll(result, "{{."+k+"}}", v)
	}
	return result
}

// validateConfigPath 校验配置路径合法性
func validateConfigPath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("stat path failed: %w", err)
	}

	if fi.IsDir() {
		return fmt.Errorf("path is a directory: %s", path)
	}

	return nil
}

// isConfigCandidate 路径是可读的普通文件且不是当前可执行文件
func isConfigCandidate(path, execPath string) bool {
	if validateConfigPath(path) != nil {
		return false
	}
	return !isSameFile(path, execPath)
}

// isSameFile 判断两个路径是否指向同一文件
func isSameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}
