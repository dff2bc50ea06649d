package toaster

import "fmt"

// State 烤面包机状态，取值固定为下列四种
type State uint8

const (
	Idle State = iota
	BreadInserted
	Toasting
	BreadEjected
)

var stateNames = [...]string{
	Idle:          "idle",
	BreadInserted: "bread_inserted",
	Toasting:      "toasting",
	BreadEjected:  "bread_ejected",
}

// States 返回所有状态
func States() []State {
	return []State{Idle, BreadInserted, Toasting, BreadEjected}
}

func (s State) String() string {
	if s.Valid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Valid 检查是否为已知状态
func (s State) Valid() bool {
	return int(s) < len(stateNames)
}

// InsertBread 放入面包
func (s State) InsertBread() (State, error) { return s.next(InsertBread) }

// PullLever 按下拉杆
func (s State) PullLever() (State, error) { return s.next(PullLever) }

// EjectBread 弹出面包
func (s State) EjectBread() (State, error) { return s.next(EjectBread) }

// RemoveBread 取出面包
func (s State) RemoveBread() (State, error) { return s.next(RemoveBread) }

// Handle 将操作分派给同名方法，返回目标状态
func (s State) Handle(op Operation) (State, error) {
	switch op {
	case InsertBread:
		return s.InsertBread()
	case PullLever:
		return s.PullLever()
	case EjectBread:
		return s.EjectBread()
	case RemoveBread:
		return s.RemoveBread()
	}
	return s, &InvalidOperationError{Op: op, State: s}
}

// Can 检查当前状态是否允许该操作
func (s State) Can(op Operation) bool {
	return transitions.Can(s, op)
}

// next 查表得到目标状态，接收者本身不变
func (s State) next(op Operation) (State, error) {
	next, ok := transitions.Next(s, op)
	if !ok {
		return s, &InvalidOperationError{Op: op, State: s}
	}
	return next, nil
}
