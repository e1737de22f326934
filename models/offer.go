package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/muslewski/eventizer-sub001/core"
	"gorm.io/gorm"
)

// OfferStatus là trạng thái xuất bản do chủ offer chọn
type OfferStatus string

const (
	OfferStatusDraft     OfferStatus = "draft"
	OfferStatusPublished OfferStatus = "published"
)

// IsValid kiểm tra status thuộc tập đã khai báo
func (s OfferStatus) IsValid() bool {
	return s == OfferStatusDraft || s == OfferStatusPublished
}

// Offer là dịch vụ do service provider đăng bán
type Offer struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null;default:0" json:"price"` // đơn vị nhỏ nhất của tiền tệ
	Status      OfferStatus    `gorm:"type:varchar(16);not null;default:draft;index" json:"status"`
	Hidden      bool           `gorm:"not null;default:false" json:"hidden"`             // ẩn bởi moderator
	UserID      string         `gorm:"type:varchar(12);not null;index" json:"userId"` // owner
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook to generate UUID
func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name
func (Offer) TableName() string {
	return "offers"
}

// Record cho phép evaluator đọc field của offer theo tên JSON
func (o *Offer) Record() core.Record {
	return core.NewStructRecord(o)
}

// IsPubliclyVisible trả về true nếu khách có thể thấy offer
func (o *Offer) IsPubliclyVisible() bool {
	return o.Status == OfferStatusPublished && !o.Hidden
}

// OfferFilter là điều kiện lọc thêm khi liệt kê offer
type OfferFilter struct {
	Status OfferStatus // rỗng = mọi status
	// VisibleOnly chỉ lấy offer khách xem được (published và không bị ẩn)
	VisibleOnly bool
}
