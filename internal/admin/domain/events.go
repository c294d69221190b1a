package domain

import (
	"context"
	"time"
)

// EventPublisher 管理操作审计事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// NopPublisher 不发布任何事件的空实现，测试与降级场景使用
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return nil
}

// CompanyStatusChangedEvent 企业审核状态变更事件
type CompanyStatusChangedEvent struct {
	CompanyID uint           `json:"company_id"`
	From      ApprovalStatus `json:"from"`
	To        ApprovalStatus `json:"to"`
	AdminID   uint           `json:"admin_id"`
	Timestamp time.Time      `json:"timestamp"`
}

// JobPostingPublishChangedEvent 职位上下架事件
type JobPostingPublishChangedEvent struct {
	JobPostingID uint      `json:"job_posting_id"`
	Published    bool      `json:"published"`
	AdminID      uint      `json:"admin_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// AccountDeletedEvent 账号级联删除完成事件
type AccountDeletedEvent struct {
	AccountID uint      `json:"account_id"`
	AdminID   uint      `json:"admin_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CompanyDeletedEvent 企业级联删除完成事件
type CompanyDeletedEvent struct {
	CompanyID uint      `json:"company_id"`
	AdminID   uint      `json:"admin_id"`
	Timestamp time.Time `json:"timestamp"`
}
