package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgConfig "github.com/junbin-yang/go-toaster/pkg/config"
	"github.com/junbin-yang/go-toaster/pkg/logger"
)

func testdata(name string) string {
	return filepath.Join("..", "testdata", name)
}

func TestLoad_YAML(t *testing.T) {
	cfg, mgr, err := Load(testdata("toaster.yml"))
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	defer mgr.Close()

	if cfg.Device.Name != "kitchen" {
		t.Errorf("device.name = %s", cfg.Device.Name)
	}
	if cfg.Logger.Level != "debug" || cfg.Logger.Output != "stdout" {
		t.Errorf("logger = %+v", cfg.Logger)
	}
	if cfg.Demo.Cycles != 2 {
		t.Errorf("demo.cycles = %d", cfg.Demo.Cycles)
	}
}

func TestLoad_INIAndJSON(t *testing.T) {
	tests := []struct {
		file   string
		name   string
		level  string
		cycles int
	}{
		{"toaster.json", "breakroom", "warn", 3},
		{"toaster.ini", "diner", "error", 4},
	}
	for _, tt := range tests {
		cfg, _, err := Load(testdata(tt.file))
		if err != nil {
			t.Fatalf("%s: %v", tt.file, err)
		}
		if cfg.Device.Name != tt.name || cfg.Logger.Level != tt.level || cfg.Demo.Cycles != tt.cycles {
			t.Errorf("%s: got %+v", tt.file, cfg)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	want := Default()
	if *cfg != *want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoad_MissingDefaultFallsBack(t *testing.T) {
	cfg, _, err := Load("", pkgConfig.WithDefaultPaths(filepath.Join(t.TempDir(), "{{.AppName}}")))
	if err != nil {
		t.Fatalf("默认配置回退失败: %v", err)
	}
	if cfg.Device.Name != AppName || cfg.Demo.Cycles != 1 {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoad_MissingCustomPath(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("不存在的自定义路径应报错")
	}
}

func TestLoad_InvalidLevel(t *testing.T) {
	_, _, err := Load(testdata("invalid_level.yml"))
	if err == nil || !strings.Contains(err.Error(), "verbose") {
		t.Errorf("期望级别校验错误, got %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TOASTER_DEVICE_NAME", "office")
	t.Setenv("TOASTER_DEMO_CYCLES", "9")

	cfg, _, err := Load(testdata("toaster.yml"))
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.Device.Name != "office" || cfg.Demo.Cycles != 9 {
		t.Errorf("got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Logger.Rotate = "weekly"
	if err := cfg.Validate(); err == nil {
		t.Error("未知 rotate 应报错")
	}

	cfg = Default()
	cfg.Demo.Cycles = -1
	if err := cfg.Validate(); err == nil {
		t.Error("负数 cycles 应报错")
	}
}

func TestLoggerConfig_NewLogger(t *testing.T) {
	dir := t.TempDir()
	tests := []LoggerConfig{
		{Level: "info", Output: "stderr"},
		{Level: "debug", Output: filepath.Join(dir, "plain.log")},
		{Level: "info", Output: filepath.Join(dir, "size.log"), Rotate: "size", MaxSize: 1},
		{Level: "info", Output: filepath.Join(dir, "time.log"), Rotate: "time", MaxAge: 1},
	}
	for _, lc := range tests {
		l, out, err := lc.NewLogger()
		if err != nil {
			t.Fatalf("%+v: %v", lc, err)
		}
		l.Info("hello")
		_ = l.Sync()
		if err := out.Close(); err != nil {
			t.Errorf("%+v: close: %v", lc, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "plain.log"))
	if err != nil || !strings.Contains(string(data), "hello") {
		t.Errorf("plain.log = %q, %v", data, err)
	}

	if _, _, err := (LoggerConfig{Level: "loud"}).NewLogger(); err == nil {
		t.Error("未知级别应报错")
	}
}

func TestParseLevelMatchesConfig(t *testing.T) {
	level, err := logger.ParseLevel(Default().Logger.Level)
	if err != nil || level != logger.InfoLevel {
		t.Errorf("默认级别 %s, %v", level, err)
	}
}

func TestLoggerConfig_SizeRotateDefaultLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prod.log")
	l, out, err := LoggerConfig{Level: "info", Output: path, Rotate: "size"}.NewLogger()
	if err != nil {
		t.Fatalf("创建日志失败: %v", err)
	}
	l.Info("rotated")
	_ = l.Sync()
	if err := out.Close(); err != nil {
		t.Fatalf("关闭日志输出失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "rotated") {
		t.Errorf("prod.log = %q, %v", data, err)
	}
}

func TestLoggerConfig_StdCloseIsNop(t *testing.T) {
	for _, output := range []string{"stderr", "stdout"} {
		_, out, err := LoggerConfig{Level: "info", Output: output}.NewLogger()
		if err != nil {
			t.Fatalf("%s: %v", output, err)
		}
		if err := out.Close(); err != nil {
			t.Errorf("%s: close: %v", output, err)
		}
	}
	// 标准错误仍可写
	if _, err := os.Stderr.Write(nil); err != nil {
		t.Errorf("stderr 已被关闭: %v", err)
	}
}

func TestLoad_ExecutableNotTakenAsConfig(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Skipf("无法获取可执行文件路径: %v", err)
	}

	// 可执行文件与应用同名且位于默认路径上，应回退到默认配置
	cfg, _, err := Load("",
		pkgConfig.WithAppName(filepath.Base(exe)),
		pkgConfig.WithDefaultPaths("{{.ExecDir}}/{{.AppName}}"),
	)
	if err != nil {
		t.Fatalf("可执行文件被当作配置解析: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_ExplicitZeroCycles(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file    string
		content string
		cycles  int
	}{
		{"zero.yml", "demo:\n  cycles: 0\n", 0},
		{"omitted.yml", "device:\n  name: attic\n", 1},
		{"zero.json", `{"demo": {"cycles": 0}}`, 0},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.file)
		if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, _, err := Load(path)
		if err != nil {
			t.Fatalf("%s: %v", tt.file, err)
		}
		if cfg.Demo.Cycles != tt.cycles {
			t.Errorf("%s: demo.cycles = %d, want %d", tt.file, cfg.Demo.Cycles, tt.cycles)
		}
	}
}

func TestLoad_EmptyStringsFilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.yml")
	content := "device:\n  name: \"\"\nlogger:\n  level: \"\"\n  output: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}
