package statemachine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition 当状态转换不被允许时返回
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrDuplicateTransition 当转换规则已存在时返回
	ErrDuplicateTransition = errors.New("duplicate transition")
)

// TransitionError 记录被拒绝的转换
type TransitionError struct {
	From  string
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: event %q not permitted from state %q", e.Event, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func newTransitionError[S, E comparable](from S, event E) *TransitionError {
	return &TransitionError{From: fmt.Sprint(from), Event: fmt.Sprint(event)}
}
