package domain

import (
	"gorm.io/gorm"
)

// Review 企业评价实体
type Review struct {
	gorm.Model
	// 作者账号 ID
	AccountID uint `gorm:"column:account_id;index;not null" json:"account_id"`
	// 被评价企业 ID
	CompanyID uint `gorm:"column:company_id;index;not null" json:"company_id"`
	// 评价标题
	Title string `gorm:"column:title;type:varchar(150);not null" json:"title"`
	// 评价正文
	Content string `gorm:"column:content;type:text" json:"content"`
}

func (Review) TableName() string {
	return "reviews"
}

// Comment 评价下的留言实体
type Comment struct {
	gorm.Model
	// 所属评价 ID
	ReviewID uint `gorm:"column:review_id;index;not null" json:"review_id"`
	// 作者账号 ID
	AccountID uint `gorm:"column:account_id;index;not null" json:"account_id"`
	// 留言内容
	Content string `gorm:"column:content;type:text;not null" json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}

// Notice 平台公告实体，无任何关联依赖
type Notice struct {
	gorm.Model
	// 公告标题
	Title string `gorm:"column:title;type:varchar(150);not null" json:"title"`
	// 公告正文
	Content string `gorm:"column:content;type:text" json:"content"`
}

func (Notice) TableName() string {
	return "notices"
}
