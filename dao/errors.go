package dao

import (
	"errors"

	mysqlerr "github.com/go-sql-driver/mysql"
)

var (
	// ErrIndexUnavailable 排序查询依赖的联合索引未部署
	ErrIndexUnavailable = errors.New("index unavailable")
	// ErrStatsConflict 计数行版本冲突，整个事务需要重试
	ErrStatsConflict = errors.New("reaction stats version conflict")
)

// isIndexMissing 仅识别 MySQL 1176(Key doesn't exist)，其他错误不降级
func isIndexMissing(err error) bool {
	var me *mysqlerr.MySQLError
	return errors.As(err, &me) && me.Number == 1176
}
