package models

import (
	"time"

	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/utils"
	"gorm.io/gorm"
)

// User represents a marketplace account
type User struct {
	ID               string         `gorm:"type:varchar(12);primaryKey" json:"id"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	Password         string         `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FullName         string         `json:"fullName"`
	Role             core.Role      `gorm:"type:varchar(32);not null;default:client;index" json:"role"`
	StripeCustomerID string         `gorm:"column:stripe_customer_id" json:"stripeCustomerId"`
	IsActive         bool           `gorm:"default:true" json:"isActive"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate sinh ID 12 ký tự nếu chưa có
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return err
		}
		u.ID = id
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// Principal trả về actor tương ứng với user
func (u *User) Principal() core.Principal {
	return core.NewPrincipal(u.ID, u.Role)
}

// Record cho phép evaluator đọc field của user theo tên JSON
func (u *User) Record() core.Record {
	return core.NewStructRecord(u)
}
