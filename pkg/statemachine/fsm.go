package statemachine

import "sync"

var _ StateMachine[string, string] = (*FSM[string, string])(nil)

// FSM 有限状态机实现
type FSM[S, E comparable] struct {
	mu            sync.RWMutex
	current       S
	handle        HandlerFunc[S, E]
	observers     []ObserverFunc[S]
	notifyInitial bool
}

// Option FSM 配置选项
type Option[S, E comparable] func(*FSM[S, E])

// WithObserver 添加状态提交后的回调
func WithObserver[S, E comparable](fn ObserverFunc[S]) Option[S, E] {
	return func(f *FSM[S, E]) {
		if fn != nil {
			f.observers = append(f.observers, fn)
		}
	}
}

// WithNotifyInitial 创建时向回调报告初始状态
func WithNotifyInitial[S, E comparable]() Option[S, E] {
	return func(f *FSM[S, E]) {
		f.notifyInitial = true
	}
}

// NewFSM 创建新的有限状态机
func NewFSM[S, E comparable](initial S, handle HandlerFunc[S, E], opts ...Option[S, E]) *FSM[S, E] {
	f := &FSM[S, E]{
		current: initial,
		handle:  handle,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.notifyInitial {
		f.notify(initial)
	}
	return f
}

// Current 返回当前状态
func (f *FSM[S, E]) Current() S {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Can 检查是否可以触发事件
func (f *FSM[S, E]) Can(event E) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, err := f.handle(f.current, event)
	return err == nil
}

// Trigger 触发事件进行状态转换，失败时状态不变且不通知
func (f *FSM[S, E]) Trigger(event E) error {
	f.mu.Lock()
	next, err := f.handle(f.current, event)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.current = next
	f.mu.Unlock()

	// 回调在锁外执行，允许回调中读取 Current
	f.notify(next)
	return nil
}

func (f *FSM[S, E]) notify(state S) {
	for _, fn := range f.observers {
		fn(state)
	}
}
