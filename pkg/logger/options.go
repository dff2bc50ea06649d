package logger

import "go.uber.org/zap"

type Option = zap.Option

func AddCaller() Option              { return zap.AddCaller() }
func AddCallerSkip(skip int) Option  { return zap.AddCallerSkip(skip) }
func AddStacktrace(lvl Level) Option { return zap.AddStacktrace(toZapLevel(lvl)) }
func Fields(fields ...Field) Option  { return zap.Fields(fields...) }
