package toaster

import "github.com/junbin-yang/go-toaster/pkg/statemachine"

type edge = statemachine.Transition[State, Operation]

// transitions 转换表，每个状态恰好一条出边
var transitions = statemachine.MustTable(
	edge{From: Idle, Event: InsertBread, To: BreadInserted},
	edge{From: BreadInserted, Event: PullLever, To: Toasting},
	edge{From: Toasting, Event: EjectBread, To: BreadEjected},
	edge{From: BreadEjected, Event: RemoveBread, To: Idle},
)

// Transitions 返回转换表副本
func Transitions() []statemachine.Transition[State, Operation] {
	return transitions.Transitions()
}
