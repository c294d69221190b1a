// 包 mysql 后台管理仓储的 GORM 实现
package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"gorm.io/gorm"
)

// like 追加子串匹配条件，值为空串时忽略
func like(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	return q.Where(column+" LIKE ?", "%"+value+"%")
}

// exact 追加精确匹配条件，值为空串时忽略
func exact(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	return q.Where(column+" = ?", value)
}

// applyLimit limit <= 0 表示不限制条数
func applyLimit(q *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return q.Limit(limit)
	}
	return q
}

// orderExpr 将已解析的稳定排序键映射为 ORDER BY 表达式
// columns 的键来自各实体族的 SortCatalog，不接受调用方原始输入
func orderExpr(columns map[string]string, key string, descending bool) string {
	column, ok := columns[key]
	if !ok {
		// Resolve 已兜底到默认键，这里只可能是目录与列映射不一致
		for _, c := range columns {
			column = c
			break
		}
	}
	if descending {
		return column + " DESC"
	}
	return column + " ASC"
}

// storageErr 将连接层故障归一为 ErrStorageUnavailable，其余错误原样返回
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return err
}

// notFound 将 gorm 的记录缺失错误归一为领域层 ErrNotFound
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, entity, id)
	}
	return storageErr(err)
}
