package application

import (
	"github.com/wyfcoding/jobboard/internal/admin/domain"
)

// DashboardStats 后台首页统计，六个独立计数
type DashboardStats struct {
	AccountCount        int64 `json:"account_count"`
	CompanyCount        int64 `json:"company_count"`
	JobPostingCount     int64 `json:"job_posting_count"`
	ApplicationCount    int64 `json:"application_count"`
	ReviewCount         int64 `json:"review_count"`
	PendingCompanyCount int64 `json:"pending_company_count"`
}

// UpdateAccountCommand 账号信息管理员修改命令，nil 字段表示不修改
type UpdateAccountCommand struct {
	Name  *string
	Email *string
	Phone *string
}

// UpdateReviewCommand 评价管理员修改命令，nil 字段表示不修改
type UpdateReviewCommand struct {
	Title   *string
	Content *string
}

// NoticeCommand 公告创建/修改命令
type NoticeCommand struct {
	Title   string
	Content string
}

// ReviewDetail 评价详情，包含其下全部留言
type ReviewDetail struct {
	Review   *domain.Review    `json:"review"`
	Comments []*domain.Comment `json:"comments"`
}
