package domain

import (
	"fmt"

	"gorm.io/gorm"
)

// ApprovalStatus 企业入驻审核状态
type ApprovalStatus string

const (
	// ApprovalPending 待审核
	ApprovalPending ApprovalStatus = "PENDING"
	// ApprovalApproved 审核通过
	ApprovalApproved ApprovalStatus = "APPROVED"
	// ApprovalRejected 审核驳回
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// ParseApprovalStatus 将外部字符串解析为审核状态
// 三个状态之间允许任意迁移，解析必须发生在任何写入之前
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch ApprovalStatus(s) {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return ApprovalStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidApprovalStatus, s)
	}
}

// Company 企业实体
type Company struct {
	gorm.Model
	// 企业名称（法人名）
	Name string `gorm:"column:name;type:varchar(100);index;not null" json:"name"`
	// 代表者姓名
	OwnerName string `gorm:"column:owner_name;type:varchar(50)" json:"owner_name"`
	// 联系电话
	Phone string `gorm:"column:phone;type:varchar(20)" json:"phone"`
	// 事业者登录番号
	RegistrationNumber string `gorm:"column:registration_number;type:varchar(30);uniqueIndex" json:"registration_number"`
	// 审核状态（PENDING, APPROVED, REJECTED）
	ApprovalStatus ApprovalStatus `gorm:"column:approval_status;type:varchar(20);index;default:'PENDING';not null" json:"approval_status"`
	// 企业 Logo 地址
	LogoURL string `gorm:"column:logo_url;type:varchar(255)" json:"logo_url"`
}

func (Company) TableName() string {
	return "companies"
}
