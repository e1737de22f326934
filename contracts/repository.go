package contracts

import (
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/models"
)

// UserRepositoryInterface định nghĩa interface cho User Repository
// Cho phép mock repository trong tests
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	// UpdateRole chỉ cập nhật cột role
	UpdateRole(id string, role core.Role) error
	Delete(id string) error
	// List áp decision của policy read lên query: AllowIf thành điều kiện WHERE
	List(access core.Decision, offset, limit int) ([]models.User, int64, error)
}

// OfferRepositoryInterface định nghĩa interface cho Offer Repository
type OfferRepositoryInterface interface {
	Create(offer *models.Offer) error
	GetByID(id string) (*models.Offer, error)
	Update(offer *models.Offer) error
	Delete(id string) error
	// List áp decision lên query rồi lọc thêm theo filter
	List(access core.Decision, filter models.OfferFilter, offset, limit int) ([]models.Offer, int64, error)
}
