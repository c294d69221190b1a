package mysql

import (
	"context"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"gorm.io/gorm"
)

var accountSortColumns = map[string]string{
	"name":       "accounts.name",
	"email":      "accounts.email",
	"created_at": "accounts.created_at",
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Search(ctx context.Context, filter domain.AccountFilter, sort domain.SortSpec, limit int) ([]*domain.Account, error) {
	key, err := domain.AccountSortCatalog.Resolve(sort.Key)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&domain.Account{})
	q = like(q, "accounts.name", filter.Name)
	q = like(q, "accounts.email", filter.Email)
	q = like(q, "accounts.phone", filter.Phone)

	q = applyLimit(q.Order(orderExpr(accountSortColumns, key, sort.Descending)), limit)

	var accounts []*domain.Account
	if err := q.Find(&accounts).Error; err != nil {
		return nil, storageErr(err)
	}
	return accounts, nil
}

func (r *accountRepository) Get(ctx context.Context, id uint) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, notFound(err, "account", id)
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	return storageErr(r.db.WithContext(ctx).Save(account).Error)
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	return storageErr(r.db.WithContext(ctx).Delete(&domain.Account{}, id).Error)
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Account{}).Count(&count).Error
	return count, storageErr(err)
}

var resumeSortColumns = map[string]string{
	"account_name": "accounts.name",
	"title":        "resumes.title",
	"updated_at":   "resumes.updated_at",
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) domain.ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Search(ctx context.Context, filter domain.ResumeFilter, sort domain.SortSpec, limit int) ([]*domain.ResumeRow, error) {
	key, err := domain.ResumeSortCatalog.Resolve(sort.Key)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&domain.Resume{}).
		Select("resumes.*, accounts.name AS account_name").
		Joins("JOIN accounts ON accounts.id = resumes.account_id AND accounts.deleted_at IS NULL")
	q = like(q, "accounts.name", filter.AccountName)
	q = like(q, "resumes.title", filter.Title)
	q = exact(q, "resumes.job_category", filter.JobCategory)
	q = exact(q, "resumes.job_type", filter.JobType)

	q = applyLimit(q.Order(orderExpr(resumeSortColumns, key, sort.Descending)), limit)

	var rows []*domain.ResumeRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

func (r *resumeRepository) Get(ctx context.Context, id uint) (*domain.Resume, error) {
	var resume domain.Resume
	if err := r.db.WithContext(ctx).First(&resume, id).Error; err != nil {
		return nil, notFound(err, "resume", id)
	}
	return &resume, nil
}

func (r *resumeRepository) GetByAccount(ctx context.Context, accountID uint) (*domain.Resume, error) {
	var resume domain.Resume
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&resume).Error
	if err != nil {
		return nil, notFound(err, "resume of account", accountID)
	}
	return &resume, nil
}

func (r *resumeRepository) DeleteByAccount(ctx context.Context, accountID uint) error {
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&domain.Resume{}).Error
	return storageErr(err)
}

type scrapRepository struct {
	db *gorm.DB
}

func NewScrapRepository(db *gorm.DB) domain.ScrapRepository {
	return &scrapRepository{db: db}
}

func (r *scrapRepository) ListByAccount(ctx context.Context, accountID uint) ([]*domain.Scrap, error) {
	var scraps []*domain.Scrap
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&scraps).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return scraps, nil
}

func (r *scrapRepository) DeleteByAccount(ctx context.Context, accountID uint) error {
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&domain.Scrap{}).Error
	return storageErr(err)
}

func (r *scrapRepository) DeleteByCompany(ctx context.Context, companyID uint) error {
	sub := r.db.Model(&domain.JobPosting{}).Select("id").Where("company_id = ?", companyID)
	err := r.db.WithContext(ctx).Where("job_posting_id IN (?)", sub).Delete(&domain.Scrap{}).Error
	return storageErr(err)
}
