package mysql

import (
	"context"
	"time"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"gorm.io/gorm"
)

var companySortColumns = map[string]string{
	"name":       "companies.name",
	"owner_name": "companies.owner_name",
	"created_at": "companies.created_at",
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) domain.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Search(ctx context.Context, filter domain.CompanyFilter, sort domain.SortSpec, limit int) ([]*domain.Company, error) {
	key, err := domain.CompanySortCatalog.Resolve(sort.Key)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&domain.Company{})
	q = like(q, "companies.name", filter.Name)
	q = like(q, "companies.owner_name", filter.OwnerName)
	q = like(q, "companies.phone", filter.Phone)
	q = like(q, "companies.registration_number", filter.RegistrationNumber)
	q = exact(q, "companies.approval_status", filter.ApprovalStatus)
	q = applyLimit(q.Order(orderExpr(companySortColumns, key, sort.Descending)), limit)

	var companies []*domain.Company
	if err := q.Find(&companies).Error; err != nil {
		return nil, storageErr(err)
	}
	return companies, nil
}

func (r *companyRepository) Get(ctx context.Context, id uint) (*domain.Company, error) {
	var company domain.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, notFound(err, "company", id)
	}
	return &company, nil
}

func (r *companyRepository) ListPending(ctx context.Context) ([]*domain.Company, error) {
	var companies []*domain.Company
	err := r.db.WithContext(ctx).
		Where("approval_status = ?", domain.ApprovalPending).
		Order("created_at ASC").
		Find(&companies).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return companies, nil
}

func (r *companyRepository) UpdateStatus(ctx context.Context, id uint, status domain.ApprovalStatus, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&domain.Company{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"approval_status": status,
			"updated_at":      updatedAt,
		})
	if result.Error != nil {
		return storageErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "company", id)
	}
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id uint) error {
	return storageErr(r.db.WithContext(ctx).Delete(&domain.Company{}, id).Error)
}

func (r *companyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).Count(&count).Error
	return count, storageErr(err)
}

func (r *companyRepository) CountByStatus(ctx context.Context, status domain.ApprovalStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).
		Where("approval_status = ?", status).
		Count(&count).Error
	return count, storageErr(err)
}
