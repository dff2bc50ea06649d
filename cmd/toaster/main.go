package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/junbin-yang/go-toaster/internal/config"
	"github.com/junbin-yang/go-toaster/pkg/logger"
	"github.com/junbin-yang/go-toaster/pkg/toaster"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("TOASTER_CONFIG"), "配置文件路径，为空时按默认路径查找")
		cycles     = flag.Int("cycles", 0, "完整循环次数，0 表示使用配置值")
	)
	flag.Parse()

	// 1. 加载配置
	cfg, mgr, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()
	if *cycles > 0 {
		cfg.Demo.Cycles = *cycles
	}

	// 2. 初始化日志，输出在 Sync 之后关闭
	log, out, err := cfg.Logger.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	logger.ReplaceDefault(log)

	source := mgr.Path()
	if source == "" {
		source = "default"
	}
	demo := log.Named("demo").With(logger.String("config", source))

	code := 0
	if err := run(cfg, demo); err != nil {
		demo.Error("demo failed", logger.Err(err))
		code = 1
	}
	_ = log.Sync()
	_ = out.Close()
	if code != 0 {
		os.Exit(code)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	dev := toaster.NewDevice(
		toaster.WithName(cfg.Device.Name),
		toaster.WithRecorder(toaster.NewLogRecorder(log, cfg.Device.Name)),
	)

	// 允许的转换：完整循环
	for i := 0; i < cfg.Demo.Cycles; i++ {
		log.Debug("cycle", logger.Int("n", i+1))
		for _, op := range toaster.Operations() {
			if err := dev.Do(op); err != nil {
				return err
			}
		}
	}

	// 不允许的转换：Idle 时按拉杆
	if err := expectRejected(log, dev, toaster.PullLever); err != nil {
		return err
	}

	// 不允许的转换：烤制中再放面包
	if err := dev.InsertBread(); err != nil {
		return err
	}
	if err := dev.PullLever(); err != nil {
		return err
	}
	if err := expectRejected(log, dev, toaster.InsertBread); err != nil {
		return err
	}

	if err := dev.EjectBread(); err != nil {
		return err
	}
	return dev.RemoveBread()
}

// expectRejected 执行一个预期失败的操作并记录
func expectRejected(log logger.Logger, dev *toaster.Device, op toaster.Operation) error {
	err := dev.Do(op)
	if err == nil {
		return fmt.Errorf("%s unexpectedly accepted", op)
	}
	if !errors.Is(err, toaster.ErrInvalidOperation) {
		return err
	}
	log.Warn("operation rejected",
		logger.Stringer("op", op),
		logger.Stringer("state", dev.State()),
		logger.Err(err),
	)
	return nil
}
