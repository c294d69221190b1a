package mysql

import (
	"context"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"gorm.io/gorm"
)

var reviewSortColumns = map[string]string{
	"created_at":   "reviews.created_at",
	"title":        "reviews.title",
	"account_name": "accounts.name",
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Search(ctx context.Context, filter domain.ReviewFilter, sort domain.SortSpec, limit int) ([]*domain.ReviewRow, error) {
	key, err := domain.ReviewSortCatalog.Resolve(sort.Key)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("reviews.*, accounts.name AS account_name, companies.name AS company_name").
		Joins("JOIN accounts ON accounts.id = reviews.account_id AND accounts.deleted_at IS NULL").
		Joins("JOIN companies ON companies.id = reviews.company_id AND companies.deleted_at IS NULL")
	q = like(q, "reviews.title", filter.Title)
	q = like(q, "accounts.name", filter.AccountName)
	q = like(q, "companies.name", filter.CompanyName)
	q = applyLimit(q.Order(orderExpr(reviewSortColumns, key, sort.Descending)), limit)

	var rows []*domain.ReviewRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

func (r *reviewRepository) Get(ctx context.Context, id uint) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, notFound(err, "review", id)
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	return storageErr(r.db.WithContext(ctx).Save(review).Error)
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return storageErr(r.db.WithContext(ctx).Delete(&domain.Review{}, id).Error)
}

func (r *reviewRepository) DeleteByAccount(ctx context.Context, accountID uint) error {
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&domain.Review{}).Error
	return storageErr(err)
}

func (r *reviewRepository) DeleteByCompany(ctx context.Context, companyID uint) error {
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Delete(&domain.Review{}).Error
	return storageErr(err)
}

func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Count(&count).Error
	return count, storageErr(err)
}

var commentSortColumns = map[string]string{
	"created_at":   "comments.created_at",
	"account_name": "accounts.name",
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) domain.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Search(ctx context.Context, filter domain.CommentFilter, sort domain.SortSpec, limit int) ([]*domain.CommentRow, error) {
	key, err := domain.CommentSortCatalog.Resolve(sort.Key)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Select("comments.*, accounts.name AS account_name, reviews.title AS review_title").
		Joins("JOIN accounts ON accounts.id = comments.account_id AND accounts.deleted_at IS NULL").
		Joins("JOIN reviews ON reviews.id = comments.review_id AND reviews.deleted_at IS NULL")
	q = like(q, "reviews.title", filter.ReviewTitle)
	q = like(q, "comments.content", filter.Content)
	q = like(q, "accounts.name", filter.AccountName)
	q = applyLimit(q.Order(orderExpr(commentSortColumns, key, sort.Descending)), limit)

	var rows []*domain.CommentRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

func (r *commentRepository) ListByReview(ctx context.Context, reviewID uint) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return storageErr(r.db.WithContext(ctx).Delete(&domain.Comment{}, id).Error)
}

func (r *commentRepository) DeleteByAccount(ctx context.Context, accountID uint) error {
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&domain.Comment{}).Error
	return storageErr(err)
}

func (r *commentRepository) DeleteByReview(ctx context.Context, reviewID uint) error {
	err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).Delete(&domain.Comment{}).Error
	return storageErr(err)
}

func (r *commentRepository) DeleteByCompany(ctx context.Context, companyID uint) error {
	sub := r.db.Model(&domain.Review{}).Select("id").Where("company_id = ?", companyID)
	err := r.db.WithContext(ctx).Where("review_id IN (?)", sub).Delete(&domain.Comment{}).Error
	return storageErr(err)
}
