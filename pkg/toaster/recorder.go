package toaster

import "github.com/junbin-yang/go-toaster/pkg/logger"

// Recorder 接收当前状态的通知，同步调用，不返回错误
type Recorder interface {
	Record(state State)
}

// RecorderFunc 函数适配器
type RecorderFunc func(state State)

func (f RecorderFunc) Record(state State) { f(state) }

// LogRecorder 将状态写入日志
type LogRecorder struct {
	log  logger.Logger
	name string
}

// NewLogRecorder 创建日志记录器，log 为 nil 时使用默认日志
func NewLogRecorder(log logger.Logger, name string) *LogRecorder {
	if log == nil {
		log = logger.Default()
	}
	return &LogRecorder{log: log, name: name}
}

func (r *LogRecorder) Record(state State) {
	r.log.Info("toaster state",
		logger.String("device", r.name),
		logger.Stringer("state", state),
	)
}

type nopRecorder struct{}

func (nopRecorder) Record(State) {}

// NopRecorder 丢弃所有通知
var NopRecorder Recorder = nopRecorder{}
