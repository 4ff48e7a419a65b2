// file: database/locking.go
package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate 给查询附加行级排他锁（SELECT ... FOR UPDATE）
// sqlite 不支持该语法，单测环境下依赖其库级写锁，直接跳过
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
