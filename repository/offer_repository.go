package repository

import (
	"github.com/google/uuid"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/models"
	"gorm.io/gorm"
)

// OfferRepository handles offer database operations
type OfferRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Create creates a new offer
func (r *OfferRepository) Create(offer *models.Offer) error {
	return r.db.Create(offer).Error
}

// GetByID gets an offer by ID. ID không phải UUID được coi là không tồn tại.
func (r *OfferRepository) GetByID(id string) (*models.Offer, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var offer models.Offer
	err = r.db.Where("id = ?", parsed).First(&offer).Error
	return &offer, err
}

// Update updates an offer
func (r *OfferRepository) Update(offer *models.Offer) error {
	return r.db.Save(offer).Error
}

// Delete soft deletes an offer
func (r *OfferRepository) Delete(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	result := r.db.Where("id = ?", parsed).Delete(&models.Offer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List lists offers allowed by the given decision and matching filter
func (r *OfferRepository) List(access core.Decision, filter models.OfferFilter, offset, limit int) ([]models.Offer, int64, error) {
	var offers []models.Offer
	var total int64

	query := r.db.Model(&models.Offer{}).Scopes(ScopeFor(access))
	if filter.VisibleOnly {
		query = query.Where("status = ? AND hidden = ?", models.OfferStatusPublished, false)
	} else if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(offset, limit)).Order("created_at DESC").Find(&offers).Error
	return offers, total, err
}
