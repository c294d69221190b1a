package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobPosting 招聘职位实体
type JobPosting struct {
	gorm.Model
	// 所属企业 ID
	CompanyID uint `gorm:"column:company_id;index;not null" json:"company_id"`
	// 职位标题
	Title string `gorm:"column:title;type:varchar(150);not null" json:"title"`
	// 职种分类
	JobCategory string `gorm:"column:job_category;type:varchar(50)" json:"job_category"`
	// 雇佣形式（正职、兼职等）
	JobType string `gorm:"column:job_type;type:varchar(50)" json:"job_type"`
	// 时薪/月薪金额
	Salary decimal.Decimal `gorm:"column:salary;type:decimal(12,2);default:0;not null" json:"salary"`
	// 是否对外公开，下架即 false
	// 不设列默认值：gorm 对带 default 标签的零值字段会在写入时忽略，
	// false 会被悄悄存成 true
	Published bool `gorm:"column:published;index;not null" json:"published"`
	// 截止日期
	DueDate *time.Time `gorm:"column:due_date" json:"due_date"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// Application 求职申请实体
type Application struct {
	gorm.Model
	// 申请者账号 ID
	AccountID uint `gorm:"column:account_id;index;not null" json:"account_id"`
	// 目标职位 ID
	JobPostingID uint `gorm:"column:job_posting_id;index;not null" json:"job_posting_id"`
	// 申请审批状态（PENDING, APPROVED, REJECTED）
	ApprovalStatus ApprovalStatus `gorm:"column:approval_status;type:varchar(20);default:'PENDING';not null" json:"approval_status"`
}

func (Application) TableName() string {
	return "applications"
}
