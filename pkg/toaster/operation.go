package toaster

import "fmt"

// Operation 可对烤面包机执行的操作
type Operation uint8

const (
	InsertBread Operation = iota
	PullLever
	EjectBread
	RemoveBread
)

var operationNames = [...]string{
	InsertBread: "insert_bread",
	PullLever:   "pull_lever",
	EjectBread:  "eject_bread",
	RemoveBread: "remove_bread",
}

// Operations 返回所有操作
func Operations() []Operation {
	return []Operation{InsertBread, PullLever, EjectBread, RemoveBread}
}

func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return fmt.Sprintf("Operation(%d)", uint8(o))
}
