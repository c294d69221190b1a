package domain

import (
	"fmt"
	"regexp"
)

// SortSpec 排序要求，Key 为稳定排序键，空串表示使用该实体族的默认键
type SortSpec struct {
	Key        string
	Descending bool
}

// SortCatalog 某一实体族允许的排序键集合
// 旧版前端以界面文案（韩文标签）作为排序键传入，这里保留为别名；
// 未识别但格式合法的键回退到 Default，格式非法的键直接报错
type SortCatalog struct {
	// Default 默认排序键
	Default string
	keys    map[string]string
}

// 合法排序键只允许字母（含谚文）、数字、下划线和空格
var wellFormedSortKey = regexp.MustCompile(`^[\p{L}\p{N}_ ]+$`)

// Resolve 将调用方传入的排序键解析为稳定键
func (c SortCatalog) Resolve(key string) (string, error) {
	if key == "" {
		return c.Default, nil
	}
	if !wellFormedSortKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, key)
	}
	if canonical, ok := c.keys[key]; ok {
		return canonical, nil
	}
	return c.Default, nil
}

var (
	// AccountSortCatalog 账号列表排序键
	AccountSortCatalog = SortCatalog{
		Default: "name",
		keys: map[string]string{
			"name":       "name",
			"이름":         "name",
			"email":      "email",
			"created_at": "created_at",
			"가입일":        "created_at",
		},
	}

	// CompanySortCatalog 企业列表排序键
	CompanySortCatalog = SortCatalog{
		Default: "name",
		keys: map[string]string{
			"name":       "name",
			"법인명":        "name",
			"owner_name": "owner_name",
			"대표자명":       "owner_name",
			"created_at": "created_at",
		},
	}

	// JobPostingSortCatalog 职位列表排序键
	JobPostingSortCatalog = SortCatalog{
		Default: "title",
		keys: map[string]string{
			"title":        "title",
			"공고 제목":        "title",
			"company_name": "company_name",
			"회사명":          "company_name",
			"created_at":   "created_at",
			"등록일":          "created_at",
		},
	}

	// ApplicationSortCatalog 申请列表排序键
	ApplicationSortCatalog = SortCatalog{
		Default: "account_name",
		keys: map[string]string{
			"account_name": "account_name",
			"지원자명":         "account_name",
			"company_name": "company_name",
			"applied_at":   "applied_at",
			"지원일":          "applied_at",
		},
	}

	// ResumeSortCatalog 简历列表排序键
	ResumeSortCatalog = SortCatalog{
		Default: "account_name",
		keys: map[string]string{
			"account_name": "account_name",
			"이름":           "account_name",
			"title":        "title",
			"updated_at":   "updated_at",
		},
	}

	// ReviewSortCatalog 评价列表排序键
	ReviewSortCatalog = SortCatalog{
		Default: "created_at",
		keys: map[string]string{
			"created_at":   "created_at",
			"작성일":          "created_at",
			"title":        "title",
			"account_name": "account_name",
		},
	}

	// CommentSortCatalog 留言列表排序键
	CommentSortCatalog = SortCatalog{
		Default: "created_at",
		keys: map[string]string{
			"created_at":   "created_at",
			"account_name": "account_name",
		},
	}
)
