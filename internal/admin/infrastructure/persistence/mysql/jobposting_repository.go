package mysql

import (
	"context"
	"time"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"gorm.io/gorm"
)

var jobPostingSortColumns = map[string]string{
	"title":        "job_postings.title",
	"company_name": "companies.name",
	"created_at":   "job_postings.created_at",
}

type jobPostingRepository struct {
	db *gorm.DB
}

func NewJobPostingRepository(db *gorm.DB) domain.JobPostingRepository {
	return &jobPostingRepository{db: db}
}

func (r *jobPostingRepository) Search(ctx context.Context, filter domain.JobPostingFilter, sort domain.SortSpec, limit int) ([]*domain.JobPostingRow, error) {
	key, err := domain.JobPostingSortCatalog.Resolve(sort.Key)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&domain.JobPosting{}).
		Select("job_postings.*, companies.name AS company_name").
		Joins("JOIN companies ON companies.id = job_postings.company_id AND companies.deleted_at IS NULL")
	q = like(q, "companies.name", filter.CompanyName)
	q = like(q, "job_postings.title", filter.Title)
	if filter.Published != nil {
		q = q.Where("job_postings.published = ?", *filter.Published)
	}
	q = applyLimit(q.Order(orderExpr(jobPostingSortColumns, key, sort.Descending)), limit)

	var rows []*domain.JobPostingRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

func (r *jobPostingRepository) Get(ctx context.Context, id uint) (*domain.JobPosting, error) {
	var posting domain.JobPosting
	if err := r.db.WithContext(ctx).First(&posting, id).Error; err != nil {
		return nil, notFound(err, "job posting", id)
	}
	return &posting, nil
}

func (r *jobPostingRepository) SetPublished(ctx context.Context, id uint, published bool, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&domain.JobPosting{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"published":  published,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return storageErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "job posting", id)
	}
	return nil
}

func (r *jobPostingRepository) UnpublishByCompany(ctx context.Context, companyID uint, updatedAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&domain.JobPosting{}).
		Where("company_id = ? AND published = ?", companyID, true).
		Updates(map[string]any{
			"published":  false,
			"updated_at": updatedAt,
		}).Error
	return storageErr(err)
}

func (r *jobPostingRepository) Delete(ctx context.Context, id uint) error {
	return storageErr(r.db.WithContext(ctx).Delete(&domain.JobPosting{}, id).Error)
}

func (r *jobPostingRepository) DeleteByCompany(ctx context.Context, companyID uint) error {
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Delete(&domain.JobPosting{}).Error
	return storageErr(err)
}

func (r *jobPostingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.JobPosting{}).Count(&count).Error
	return count, storageErr(err)
}

var applicationSortColumns = map[string]string{
	"account_name": "accounts.name",
	"company_name": "companies.name",
	"applied_at":   "applications.created_at",
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) domain.ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Search(ctx context.Context, filter domain.ApplicationFilter, sort domain.SortSpec, limit int) ([]*domain.ApplicationRow, error) {
	key, err := domain.ApplicationSortCatalog.Resolve(sort.Key)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&domain.Application{}).
		Select("applications.*, accounts.name AS account_name, companies.name AS company_name, job_postings.title AS job_posting_title").
		Joins("JOIN accounts ON accounts.id = applications.account_id AND accounts.deleted_at IS NULL").
		Joins("JOIN job_postings ON job_postings.id = applications.job_posting_id AND job_postings.deleted_at IS NULL").
		Joins("JOIN companies ON companies.id = job_postings.company_id AND companies.deleted_at IS NULL")
	q = like(q, "accounts.name", filter.AccountName)
	q = like(q, "companies.name", filter.CompanyName)
	q = like(q, "job_postings.title", filter.JobPostingTitle)
	q = applyLimit(q.Order(orderExpr(applicationSortColumns, key, sort.Descending)), limit)

	var rows []*domain.ApplicationRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

func (r *applicationRepository) ListByAccount(ctx context.Context, accountID uint) ([]*domain.Application, error) {
	var applications []*domain.Application
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&applications).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return applications, nil
}

func (r *applicationRepository) DeleteByAccount(ctx context.Context, accountID uint) error {
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&domain.Application{}).Error
	return storageErr(err)
}

func (r *applicationRepository) DeleteByCompany(ctx context.Context, companyID uint) error {
	sub := r.db.Model(&domain.JobPosting{}).Select("id").Where("company_id = ?", companyID)
	err := r.db.WithContext(ctx).Where("job_posting_id IN (?)", sub).Delete(&domain.Application{}).Error
	return storageErr(err)
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Application{}).Count(&count).Error
	return count, storageErr(err)
}
