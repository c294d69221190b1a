package mysql

import (
	"context"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"gorm.io/gorm"
)

// NewRepositories 基于同一个 gorm 句柄构造全部仓储
// 传入事务句柄即可让所有仓储共享同一事务
func NewRepositories(db *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Accounts:     NewAccountRepository(db),
		Resumes:      NewResumeRepository(db),
		Scraps:       NewScrapRepository(db),
		Companies:    NewCompanyRepository(db),
		JobPostings:  NewJobPostingRepository(db),
		Applications: NewApplicationRepository(db),
		Reviews:      NewReviewRepository(db),
		Comments:     NewCommentRepository(db),
		Notices:      NewNoticeRepository(db),
	}
}

type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork 创建基于数据库事务的工作单元
func NewUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return &unitOfWork{db: db}
}

// WithinTx fn 返回错误时整体回滚，panic 由 gorm 捕获后回滚并重新抛出
func (u *unitOfWork) WithinTx(ctx context.Context, fn func(repos domain.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
