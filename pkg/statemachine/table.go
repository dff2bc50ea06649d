package statemachine

import "fmt"

// Transition 定义状态转换规则
type Transition[S, E comparable] struct {
	From  S // 源状态
	Event E // 触发事件
	To    S // 目标状态
}

// transitionKey 唯一标识一个转换
type transitionKey[S, E comparable] struct {
	from  S
	event E
}

// Table 转换表，(源状态, 事件) 到目标状态的部分函数
type Table[S, E comparable] struct {
	edges map[transitionKey[S, E]]S
	order []Transition[S, E]
}

// NewTable 创建转换表
func NewTable[S, E comparable](transitions ...Transition[S, E]) (*Table[S, E], error) {
	t := &Table[S, E]{edges: make(map[transitionKey[S, E]]S)}
	for _, tr := range transitions {
		if err := t.Add(tr.From, tr.Event, tr.To); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustTable 与 NewTable 相同，出错时 panic，用于包级变量初始化
func MustTable[S, E comparable](transitions ...Transition[S, E]) *Table[S, E] {
	t, err := NewTable(transitions...)
	if err != nil {
		panic(err)
	}
	return t
}

// Add 添加状态转换规则
func (t *Table[S, E]) Add(from S, event E, to S) error {
	key := transitionKey[S, E]{from: from, event: event}
	if _, exists := t.edges[key]; exists {
		return fmt.Errorf("%w: %v on %v", ErrDuplicateTransition, from, event)
	}
	t.edges[key] = to
	t.order = append(t.order, Transition[S, E]{From: from, Event: event, To: to})
	return nil
}

// Next 查找目标状态
func (t *Table[S, E]) Next(from S, event E) (S, bool) {
	to, ok := t.edges[transitionKey[S, E]{from: from, event: event}]
	return to, ok
}

// Can 检查转换是否存在
func (t *Table[S, E]) Can(from S, event E) bool {
	_, ok := t.Next(from, event)
	return ok
}

// Handle 实现 HandlerFunc，未定义的转换返回 *TransitionError
func (t *Table[S, E]) Handle(from S, event E) (S, error) {
	to, ok := t.Next(from, event)
	if !ok {
		return from, newTransitionError(from, event)
	}
	return to, nil
}

// Events 返回从指定状态可触发的事件，按添加顺序
func (t *Table[S, E]) Events(from S) []E {
	var events []E
	for _, tr := range t.order {
		if tr.From == from {
			events = append(events, tr.Event)
		}
	}
	return events
}

// Transitions 返回所有转换规则的副本
func (t *Table[S, E]) Transitions() []Transition[S, E] {
	return append([]Transition[S, E]{}, t.order...)
}

// Len 返回转换规则数量
func (t *Table[S, E]) Len() int {
	return len(t.order)
}
