package statemachine

// HandlerFunc 根据当前状态和事件解析目标状态
// 必须是纯函数：不修改任何状态，不允许的事件返回错误
type HandlerFunc[S, E comparable] func(from S, event E) (S, error)

// ObserverFunc 在状态提交后调用
type ObserverFunc[S comparable] func(state S)

// StateMachine 定义所有状态机的核心接口
type StateMachine[S, E comparable] interface {
	// Current 返回当前状态
	Current() S

	// Trigger 触发事件以转换状态
	Trigger(event E) error

	// Can 检查是否可以从当前状态触发事件
	Can(event E) bool
}
