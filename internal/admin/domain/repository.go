package domain

import (
	"context"
	"time"
)

// 各实体族的检索条件。文本字段做子串匹配，枚举字段做精确匹配，
// 空串表示忽略该条件，全部条件以 AND 组合。

// AccountFilter 账号检索条件
type AccountFilter struct {
	Name  string
	Email string
	Phone string
}

// CompanyFilter 企业检索条件
type CompanyFilter struct {
	Name               string
	OwnerName          string
	Phone              string
	RegistrationNumber string
	// ApprovalStatus 精确匹配，空串表示不过滤
	ApprovalStatus string
}

// JobPostingFilter 职位检索条件
type JobPostingFilter struct {
	CompanyName string
	Title       string
	// Published 为 nil 表示不过滤
	Published *bool
}

// ApplicationFilter 申请检索条件
type ApplicationFilter struct {
	AccountName     string
	CompanyName     string
	JobPostingTitle string
}

// ResumeFilter 简历检索条件
type ResumeFilter struct {
	AccountName string
	Title       string
	JobCategory string
	JobType     string
}

// ReviewFilter 评价检索条件
type ReviewFilter struct {
	Title       string
	AccountName string
	CompanyName string
}

// CommentFilter 留言检索条件
type CommentFilter struct {
	ReviewTitle string
	Content     string
	AccountName string
}

// JobPostingRow 职位检索结果行，附带企业名称
type JobPostingRow struct {
	JobPosting
	CompanyName string `json:"company_name"`
}

// ApplicationRow 申请检索结果行，附带申请者、企业与职位信息
type ApplicationRow struct {
	Application
	AccountName     string `json:"account_name"`
	CompanyName     string `json:"company_name"`
	JobPostingTitle string `json:"job_posting_title"`
}

// ResumeRow 简历检索结果行，附带持有者名称
type ResumeRow struct {
	Resume
	AccountName string `json:"account_name"`
}

// ReviewRow 评价检索结果行，附带作者与企业名称
type ReviewRow struct {
	Review
	AccountName string `json:"account_name"`
	CompanyName string `json:"company_name"`
}

// CommentRow 留言检索结果行，附带作者与所属评价标题
type CommentRow struct {
	Comment
	AccountName string `json:"account_name"`
	ReviewTitle string `json:"review_title"`
}

// AccountRepository 账号仓储接口
type AccountRepository interface {
	Search(ctx context.Context, filter AccountFilter, sort SortSpec, limit int) ([]*Account, error)
	Get(ctx context.Context, id uint) (*Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// ResumeRepository 简历仓储接口
type ResumeRepository interface {
	Search(ctx context.Context, filter ResumeFilter, sort SortSpec, limit int) ([]*ResumeRow, error)
	Get(ctx context.Context, id uint) (*Resume, error)
	GetByAccount(ctx context.Context, accountID uint) (*Resume, error)
	DeleteByAccount(ctx context.Context, accountID uint) error
}

// ScrapRepository 收藏仓储接口
type ScrapRepository interface {
	ListByAccount(ctx context.Context, accountID uint) ([]*Scrap, error)
	DeleteByAccount(ctx context.Context, accountID uint) error
	DeleteByCompany(ctx context.Context, companyID uint) error
}

// CompanyRepository 企业仓储接口
type CompanyRepository interface {
	Search(ctx context.Context, filter CompanyFilter, sort SortSpec, limit int) ([]*Company, error)
	Get(ctx context.Context, id uint) (*Company, error)
	ListPending(ctx context.Context) ([]*Company, error)
	UpdateStatus(ctx context.Context, id uint, status ApprovalStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status ApprovalStatus) (int64, error)
}

// JobPostingRepository 职位仓储接口
type JobPostingRepository interface {
	Search(ctx context.Context, filter JobPostingFilter, sort SortSpec, limit int) ([]*JobPostingRow, error)
	Get(ctx context.Context, id uint) (*JobPosting, error)
	SetPublished(ctx context.Context, id uint, published bool, updatedAt time.Time) error
	// UnpublishByCompany 批量下架企业名下全部职位，不删除任何数据
	UnpublishByCompany(ctx context.Context, companyID uint, updatedAt time.Time) error
	Delete(ctx context.Context, id uint) error
	DeleteByCompany(ctx context.Context, companyID uint) error
	Count(ctx context.Context) (int64, error)
}

// ApplicationRepository 申请仓储接口
type ApplicationRepository interface {
	Search(ctx context.Context, filter ApplicationFilter, sort SortSpec, limit int) ([]*ApplicationRow, error)
	ListByAccount(ctx context.Context, accountID uint) ([]*Application, error)
	DeleteByAccount(ctx context.Context, accountID uint) error
	// DeleteByCompany 删除企业名下所有职位收到的申请
	DeleteByCompany(ctx context.Context, companyID uint) error
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository 评价仓储接口
type ReviewRepository interface {
	Search(ctx context.Context, filter ReviewFilter, sort SortSpec, limit int) ([]*ReviewRow, error)
	Get(ctx context.Context, id uint) (*Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uint) error
	DeleteByAccount(ctx context.Context, accountID uint) error
	DeleteByCompany(ctx context.Context, companyID uint) error
	Count(ctx context.Context) (int64, error)
}

// CommentRepository 留言仓储接口
type CommentRepository interface {
	Search(ctx context.Context, filter CommentFilter, sort SortSpec, limit int) ([]*CommentRow, error)
	ListByReview(ctx context.Context, reviewID uint) ([]*Comment, error)
	Delete(ctx context.Context, id uint) error
	DeleteByAccount(ctx context.Context, accountID uint) error
	DeleteByReview(ctx context.Context, reviewID uint) error
	// DeleteByCompany 删除企业名下所有评价收到的留言
	DeleteByCompany(ctx context.Context, companyID uint) error
}

// NoticeRepository 公告仓储接口
type NoticeRepository interface {
	List(ctx context.Context) ([]*Notice, error)
	Get(ctx context.Context, id uint) (*Notice, error)
	Save(ctx context.Context, notice *Notice) error
	Delete(ctx context.Context, id uint) error
}

// Repositories 一次工作单元内可用的全部仓储
type Repositories struct {
	Accounts     AccountRepository
	Resumes      ResumeRepository
	Scraps       ScrapRepository
	Companies    CompanyRepository
	JobPostings  JobPostingRepository
	Applications ApplicationRepository
	Reviews      ReviewRepository
	Comments     CommentRepository
	Notices      NoticeRepository
}

// UnitOfWork 工作单元，fn 内的所有仓储操作在同一事务中执行
// fn 返回错误即整体回滚，成功返回即提交
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
