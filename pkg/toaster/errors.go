package toaster

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation 当前状态不允许该操作
var ErrInvalidOperation = errors.New("invalid operation")

// InvalidOperationError 记录尝试的操作和所在状态
type InvalidOperationError struct {
	Op    Operation
	State State
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation: cannot %s while %s", e.Op, e.State)
}

func (e *InvalidOperationError) Unwrap() error {
	return ErrInvalidOperation
}
