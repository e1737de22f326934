package repository

import (
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScopeFor chuyển decision của policy thành gorm scope:
//   - Allow: không thêm điều kiện
//   - AllowIf: WHERE <cột của filter.Field> = filter.Value
//   - Deny: điều kiện luôn sai, query trả về rỗng
func ScopeFor(d core.Decision) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch d.Effect {
		case core.EffectAllow:
			return db
		case core.EffectAllowIf:
			if d.Filter == nil {
				return db.Where("1 = 0")
			}
			return db.Where(clause.Eq{
				Column: clause.Column{Name: utils.ToSnakeCase(d.Filter.Field)},
				Value:  d.Filter.Value,
			})
		default:
			return db.Where("1 = 0")
		}
	}
}

// Paginate giới hạn offset/limit (limit <= 0 dùng mặc định 20, tối đa 100)
func Paginate(offset, limit int) func(*gorm.DB) *gorm.DB {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}
