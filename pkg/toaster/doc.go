// Package toaster 实现一个四状态的烤面包机状态机
//
// 状态按单一环路流转：
//
//	Idle → BreadInserted → Toasting → BreadEjected → Idle
//
// 每个状态只允许一个操作，其它操作返回 ErrInvalidOperation 且不改变状态。
// Device 持有当前状态，每次成功转换后通知 Recorder。
package toaster
