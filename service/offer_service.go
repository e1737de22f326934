package service

import (
	"context"
	"errors"

	"github.com/muslewski/eventizer-sub001/contracts"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/models"
	"github.com/muslewski/eventizer-sub001/utils"
	"github.com/techmaster-vietnam/goerrorkit"
	"gorm.io/gorm"
)

// OfferService quản lý offer theo policy của collection offers
type OfferService struct {
	offerRepo     contracts.OfferRepositoryInterface
	userRepo      contracts.UserRepositoryInterface
	offers        core.CollectionAccess
	subscriptions contracts.SubscriptionChecker
}

// NewOfferService creates a new offer service
func NewOfferService(
	offerRepo contracts.OfferRepositoryInterface,
	userRepo contracts.UserRepositoryInterface,
	offers core.CollectionAccess,
	subscriptions contracts.SubscriptionChecker,
) *OfferService {
	return &OfferService{
		offerRepo:     offerRepo,
		userRepo:      userRepo,
		offers:        offers,
		subscriptions: subscriptions,
	}
}

// CreateOfferRequest represents create offer request
type CreateOfferRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=10000"`
	Price       int64  `json:"price" validate:"gte=0"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published"`
}

// UpdateOfferRequest: field nil = không đổi
type UpdateOfferRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft published"`
	Hidden      *bool   `json:"hidden"`
}

func (r UpdateOfferRequest) changedFields() []string {
	var fields []string
	if r.Title != nil {
		fields = append(fields, "title")
	}
	if r.Description != nil {
		fields = append(fields, "description")
	}
	if r.Price != nil {
		fields = append(fields, "price")
	}
	if r.Status != nil {
		fields = append(fields, "status")
	}
	if r.Hidden != nil {
		fields = append(fields, "hidden")
	}
	return fields
}

// List trả về offer khách xem được (published, không bị ẩn).
// Moderator trở lên thấy mọi offer và có thể lọc theo status.
func (s *OfferService) List(p core.Principal, status models.OfferStatus, offset, limit int) ([]models.Offer, int64, error) {
	d := s.offers.Check(core.OperationRead, p, nil)
	if d.IsDenied() {
		return nil, 0, utils.DenialError(d, nil)
	}

	filter := models.OfferFilter{VisibleOnly: true}
	if core.IsRoleAtOrHigher(core.RoleModerator, p) {
		filter = models.OfferFilter{Status: status}
	}
	return s.list(d, filter, offset, limit)
}

// ListManaged trả về các offer principal được sửa (trang quản trị).
// Service provider nhận filter userId = chính mình, moderator thấy tất cả.
func (s *OfferService) ListManaged(p core.Principal, status models.OfferStatus, offset, limit int) ([]models.Offer, int64, error) {
	if d := s.offers.Check(core.OperationAdmin, p, nil); !d.IsAllowed() {
		return nil, 0, utils.DenialError(d, nil)
	}
	d := s.offers.Check(core.OperationUpdate, p, nil)
	if d.IsDenied() {
		return nil, 0, utils.DenialError(d, nil)
	}
	return s.list(d, models.OfferFilter{Status: status}, offset, limit)
}

func (s *OfferService) list(d core.Decision, filter models.OfferFilter, offset, limit int) ([]models.Offer, int64, error) {
	offers, total, err := s.offerRepo.List(d, filter, offset, limit)
	if err != nil {
		return nil, 0, goerrorkit.WrapWithMessage(err, "Lỗi khi lấy danh sách offer")
	}
	return offers, total, nil
}

// Get trả về offer. Offer chưa công khai chỉ chủ offer và moderator xem được;
// người khác nhận 404 như thể offer không tồn tại.
func (s *OfferService) Get(p core.Principal, id string) (*models.Offer, error) {
	offer, err := s.find(id)
	if err != nil {
		return nil, err
	}
	record := offer.Record()
	if d := s.offers.Check(core.OperationRead, p, record); !d.IsAllowed() {
		return nil, utils.DenialError(d, map[string]interface{}{"offer_id": id})
	}
	if !offer.IsPubliclyVisible() && !s.offers.Check(core.OperationUpdate, p, record).IsAllowed() {
		return nil, offerNotFound(id)
	}
	return offer, nil
}

// Create tạo offer mới cho principal.
// Service provider phải có subscription đang hoạt động; moderator và admin được miễn.
func (s *OfferService) Create(ctx context.Context, p core.Principal, req CreateOfferRequest) (*models.Offer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if d := s.offers.Check(core.OperationCreate, p, nil); !d.IsAllowed() {
		return nil, utils.DenialError(d, nil)
	}

	if core.CheckRole([]core.Role{core.RoleServiceProvider}, p) {
		if err := s.requireSubscription(ctx, p); err != nil {
			return nil, err
		}
	}

	status := models.OfferStatusDraft
	if req.Status != "" {
		status = models.OfferStatus(req.Status)
	}
	offer := &models.Offer{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Status:      status,
		UserID:      p.ID,
	}
	if err := s.offerRepo.Create(offer); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi tạo offer")
	}
	return offer, nil
}

func (s *OfferService) requireSubscription(ctx context.Context, p core.Principal) error {
	user, err := findUser(s.userRepo, p.ID)
	if err != nil {
		return err
	}
	if user.StripeCustomerID == "" {
		return goerrorkit.NewBusinessError(402, "Cần có subscription đang hoạt động để đăng offer").WithData(map[string]interface{}{
			"user_id": user.ID,
		})
	}
	active, err := s.subscriptions.HasActiveSubscription(ctx, user.StripeCustomerID)
	if err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi kiểm tra subscription")
	}
	if !active {
		return goerrorkit.NewBusinessError(402, "Cần có subscription đang hoạt động để đăng offer").WithData(map[string]interface{}{
			"user_id": user.ID,
		})
	}
	return nil
}

// Update sửa offer: phải qua policy update với record và policy của từng field bị đổi
func (s *OfferService) Update(p core.Principal, id string, req UpdateOfferRequest) (*models.Offer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	offer, err := s.find(id)
	if err != nil {
		return nil, err
	}
	record := offer.Record()
	if d := s.offers.Check(core.OperationUpdate, p, record); !d.IsAllowed() {
		return nil, utils.DenialError(d, map[string]interface{}{"offer_id": id})
	}
	if field, d := s.offers.CheckFieldUpdates(p, record, req.changedFields()); !d.IsAllowed() {
		return nil, utils.DenialError(d, map[string]interface{}{
			"offer_id": id,
			"field":    field,
		})
	}

	if req.Title != nil {
		offer.Title = *req.Title
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}
	if req.Price != nil {
		offer.Price = *req.Price
	}
	if req.Status != nil {
		offer.Status = models.OfferStatus(*req.Status)
	}
	if req.Hidden != nil {
		offer.Hidden = *req.Hidden
	}
	if err := s.offerRepo.Update(offer); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi cập nhật offer")
	}
	return offer, nil
}

// Delete xóa offer theo policy delete
func (s *OfferService) Delete(p core.Principal, id string) error {
	offer, err := s.find(id)
	if err != nil {
		return err
	}
	if d := s.offers.Check(core.OperationDelete, p, offer.Record()); !d.IsAllowed() {
		return utils.DenialError(d, map[string]interface{}{"offer_id": id})
	}
	if err := s.offerRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return offerNotFound(id)
		}
		return goerrorkit.WrapWithMessage(err, "Lỗi khi xóa offer")
	}
	return nil
}

func (s *OfferService) find(id string) (*models.Offer, error) {
	offer, err := s.offerRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, offerNotFound(id)
		}
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi lấy thông tin offer")
	}
	return offer, nil
}

func offerNotFound(id string) error {
	return goerrorkit.NewBusinessError(404, "Không tìm thấy offer").WithData(map[string]interface{}{
		"offer_id": id,
	})
}
