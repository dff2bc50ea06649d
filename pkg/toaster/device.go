package toaster

import "github.com/junbin-yang/go-toaster/pkg/statemachine"

const defaultDeviceName = "toaster"

// Device 烤面包机，对外提供四个操作
//
// 当前状态只在转换成功后更新；失败时状态不变，也不通知 Recorder。
// 同一个 Device 的调用由调用方串行化。
type Device struct {
	name     string
	recorder Recorder
	fsm      statemachine.StateMachine[State, Operation]
}

// Option Device 配置选项
type Option func(*Device)

// WithRecorder 设置状态通知对象
func WithRecorder(r Recorder) Option {
	return func(d *Device) {
		if r != nil {
			d.recorder = r
		}
	}
}

// WithName 设置设备名称，用于日志
func WithName(name string) Option {
	return func(d *Device) {
		if name != "" {
			d.name = name
		}
	}
}

// NewDevice 创建处于 Idle 状态的设备，并报告初始状态
func NewDevice(opts ...Option) *Device {
	d := &Device{name: defaultDeviceName}
	for _, opt := range opts {
		opt(d)
	}
	if d.recorder == nil {
		d.recorder = NewLogRecorder(nil, d.name)
	}

	d.fsm = statemachine.NewFSM(Idle, State.Handle,
		statemachine.WithObserver[State, Operation](d.recorder.Record),
		statemachine.WithNotifyInitial[State, Operation](),
	)
	return d
}

// Name 返回设备名称
func (d *Device) Name() string { return d.name }

// State 返回当前状态
func (d *Device) State() State { return d.fsm.Current() }

// Can 检查当前状态是否允许该操作
func (d *Device) Can(op Operation) bool { return d.fsm.Can(op) }

// InsertBread 放入面包，仅 Idle 时允许，成功后进入 BreadInserted
func (d *Device) InsertBread() error { return d.Do(InsertBread) }

// PullLever 按下拉杆，仅 BreadInserted 时允许，成功后进入 Toasting
func (d *Device) PullLever() error { return d.Do(PullLever) }

// EjectBread 弹出面包，仅 Toasting 时允许，成功后进入 BreadEjected
func (d *Device) EjectBread() error { return d.Do(EjectBread) }

// RemoveBread 取走面包，仅 BreadEjected 时允许，成功后回到 Idle
func (d *Device) RemoveBread() error { return d.Do(RemoveBread) }

// Do 执行操作，失败时返回 *InvalidOperationError
func (d *Device) Do(op Operation) error {
	return d.fsm.Trigger(op)
}
