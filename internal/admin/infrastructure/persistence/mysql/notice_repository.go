package mysql

import (
	"context"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"gorm.io/gorm"
)

type noticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) domain.NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) List(ctx context.Context) ([]*domain.Notice, error) {
	var notices []*domain.Notice
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&notices).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return notices, nil
}

func (r *noticeRepository) Get(ctx context.Context, id uint) (*domain.Notice, error) {
	var notice domain.Notice
	if err := r.db.WithContext(ctx).First(&notice, id).Error; err != nil {
		return nil, notFound(err, "notice", id)
	}
	return &notice, nil
}

func (r *noticeRepository) Save(ctx context.Context, notice *domain.Notice) error {
	return storageErr(r.db.WithContext(ctx).Save(notice).Error)
}

func (r *noticeRepository) Delete(ctx context.Context, id uint) error {
	return storageErr(r.db.WithContext(ctx).Delete(&domain.Notice{}, id).Error)
}
