// 包 domain 后台管理服务的领域模型
package domain

import (
	"gorm.io/gorm"
)

// Account 求职者账号实体
type Account struct {
	gorm.Model
	// 显示名称
	Name string `gorm:"column:name;type:varchar(50);not null" json:"name"`
	// 邮箱，登录凭据，全局唯一
	Email string `gorm:"column:email;type:varchar(100);uniqueIndex;not null" json:"email"`
	// 联系电话
	Phone string `gorm:"column:phone;type:varchar(20)" json:"phone"`
	// 是否为平台管理员
	IsAdmin bool `gorm:"column:is_admin;default:false;not null" json:"is_admin"`
}

func (Account) TableName() string {
	return "accounts"
}

// Resume 简历实体，每个账号至多一份
type Resume struct {
	gorm.Model
	// 所属账号 ID
	AccountID uint `gorm:"column:account_id;uniqueIndex;not null" json:"account_id"`
	// 简历标题
	Title string `gorm:"column:title;type:varchar(100);not null" json:"title"`
	// 期望职种
	JobCategory string `gorm:"column:job_category;type:varchar(50)" json:"job_category"`
	// 期望雇佣形式（正职、兼职等）
	JobType string `gorm:"column:job_type;type:varchar(50)" json:"job_type"`
}

func (Resume) TableName() string {
	return "resumes"
}

// Scrap 职位收藏记录
type Scrap struct {
	gorm.Model
	// 收藏者账号 ID
	AccountID uint `gorm:"column:account_id;index;not null" json:"account_id"`
	// 被收藏的职位 ID
	JobPostingID uint `gorm:"column:job_posting_id;index;not null" json:"job_posting_id"`
}

func (Scrap) TableName() string {
	return "scraps"
}

// Identity 已解析的调用方身份
// 由外部认证层解析后显式传入，门面层只依据 IsAdmin 做准入判断
type Identity struct {
	AccountID uint
	Name      string
	IsAdmin   bool
}
