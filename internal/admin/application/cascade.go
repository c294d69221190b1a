package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"github.com/wyfcoding/jobboard/pkg/logger"
	"github.com/wyfcoding/jobboard/pkg/metrics"
)

// Kafka 审计事件主题
const (
	topicAccountDeleted = "admin.account.deleted"
	topicCompanyDeleted = "admin.company.deleted"
)

// cascadeStep 级联删除中的一个有序步骤
type cascadeStep struct {
	name string
	fn   func(repos domain.Repositories) error
}

// CascadeService 级联删除协调器
// 根实体（账号、企业）连同全部依赖实体在单个事务内删除：
// 依赖方先于被依赖方删除，任一步骤失败整体回滚，不做自动重试
type CascadeService struct {
	uow       domain.UnitOfWork
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewCascadeService 创建级联删除协调器，metrics 允许为 nil
func NewCascadeService(uow domain.UnitOfWork, publisher domain.EventPublisher, m *metrics.Metrics) *CascadeService {
	return &CascadeService{uow: uow, publisher: publisher, metrics: m}
}

// DeleteAccountCascade 删除账号及其名下申请、收藏、留言、评价、简历
func (s *CascadeService) DeleteAccountCascade(ctx context.Context, actor domain.Identity, accountID uint) error {
	steps := []cascadeStep{
		{"applications", func(r domain.Repositories) error { return r.Applications.DeleteByAccount(ctx, accountID) }},
		{"scraps", func(r domain.Repositories) error { return r.Scraps.DeleteByAccount(ctx, accountID) }},
		{"comments", func(r domain.Repositories) error { return r.Comments.DeleteByAccount(ctx, accountID) }},
		{"reviews", func(r domain.Repositories) error { return r.Reviews.DeleteByAccount(ctx, accountID) }},
		{"resume", func(r domain.Repositories) error { return r.Resumes.DeleteByAccount(ctx, accountID) }},
		{"account", func(r domain.Repositories) error { return r.Accounts.Delete(ctx, accountID) }},
	}

	err := s.run(ctx, "account", accountID, func(r domain.Repositories) error {
		_, err := r.Accounts.Get(ctx, accountID)
		return err
	}, steps)
	if err != nil {
		return err
	}

	s.publish(ctx, topicAccountDeleted, fmt.Sprintf("account-%d", accountID), domain.AccountDeletedEvent{
		AccountID: accountID,
		AdminID:   actor.AccountID,
		Timestamp: time.Now(),
	})
	return nil
}

// DeleteCompanyCascade 删除企业及其职位、职位下的申请与收藏、企业评价及留言
func (s *CascadeService) DeleteCompanyCascade(ctx context.Context, actor domain.Identity, companyID uint) error {
	steps := []cascadeStep{
		{"applications", func(r domain.Repositories) error { return r.Applications.DeleteByCompany(ctx, companyID) }},
		{"scraps", func(r domain.Repositories) error { return r.Scraps.DeleteByCompany(ctx, companyID) }},
		{"comments", func(r domain.Repositories) error { return r.Comments.DeleteByCompany(ctx, companyID) }},
		{"reviews", func(r domain.Repositories) error { return r.Reviews.DeleteByCompany(ctx, companyID) }},
		{"job_postings", func(r domain.Repositories) error { return r.JobPostings.DeleteByCompany(ctx, companyID) }},
		{"company", func(r domain.Repositories) error { return r.Companies.Delete(ctx, companyID) }},
	}

	err := s.run(ctx, "company", companyID, func(r domain.Repositories) error {
		_, err := r.Companies.Get(ctx, companyID)
		return err
	}, steps)
	if err != nil {
		return err
	}

	s.publish(ctx, topicCompanyDeleted, fmt.Sprintf("company-%d", companyID), domain.CompanyDeletedEvent{
		CompanyID: companyID,
		AdminID:   actor.AccountID,
		Timestamp: time.Now(),
	})
	return nil
}

// run 在单个事务内执行存在性检查和全部级联步骤
// 根实体缺失返回 ErrNotFound；步骤失败包成 CascadeError 并触发回滚
func (s *CascadeService) run(ctx context.Context, entity string, id uint, exists func(domain.Repositories) error, steps []cascadeStep) error {
	start := time.Now()

	err := s.uow.WithinTx(ctx, func(repos domain.Repositories) error {
		if err := exists(repos); err != nil {
			return err
		}
		for i, step := range steps {
			if err := step.fn(repos); err != nil {
				return &domain.CascadeError{Entity: entity, ID: id, Step: i + 1, Err: err}
			}
		}
		return nil
	})

	if s.metrics != nil {
		s.metrics.ObserveCascadeDelete(entity, time.Since(start), err == nil)
	}
	if err != nil {
		logger.Error(ctx, "cascade delete rolled back", "entity", entity, "id", id, "error", err)
		return err
	}

	logger.Info(ctx, "cascade delete committed", "entity", entity, "id", id, "duration", time.Since(start))
	return nil
}

func (s *CascadeService) publish(ctx context.Context, topic, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "failed to publish admin event", "topic", topic, "key", key, "error", err)
	}
}
