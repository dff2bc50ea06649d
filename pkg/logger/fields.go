package logger

import (
	"time"

	"go.uber.org/zap"
)

type Field = zap.Field

func String(key, val string) Field                 { return zap.String(key, val) }
func Int(key string, val int) Field                { return zap.Int(key, val) }
func Bool(key string, val bool) Field              { return zap.Bool(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
func Stringer(key string, val interface{ String() string }) Field {
	return zap.Stringer(key, val)
}
func Any(key string, val interface{}) Field { return zap.Any(key, val) }
func Err(err error) Field                   { return zap.Error(err) }
