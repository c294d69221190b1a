package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized 调用方不具备管理员权限
	ErrUnauthorized = errors.New("caller is not an administrator")
	// ErrNotFound 目标实体不存在
	ErrNotFound = errors.New("entity not found")
	// ErrValidation 请求参数校验失败
	ErrValidation = errors.New("validation failed")
	// ErrInvalidApprovalStatus 审核状态字符串不在枚举集合内
	ErrInvalidApprovalStatus = fmt.Errorf("%w: invalid approval status", ErrValidation)
	// ErrInvalidSortKey 排序键语法非法（区别于未识别，未识别时回退默认键）
	ErrInvalidSortKey = fmt.Errorf("%w: malformed sort key", ErrValidation)
	// ErrStorageUnavailable 后端存储不可达或超时
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// CascadeError 级联删除失败
// 记录失败发生时的根实体与已执行到的步骤，底层原因通过 Unwrap 暴露
type CascadeError struct {
	// Entity 根实体类型（account / company / review）
	Entity string
	// ID 根实体 ID
	ID uint
	// Step 失败时所处的步骤序号，从 1 开始
	Step int
	// Err 底层原因
	Err error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade delete of %s %d failed at step %d: %v", e.Entity, e.ID, e.Step, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}
