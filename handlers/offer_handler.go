package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/middleware"
	"github.com/muslewski/eventizer-sub001/models"
	"github.com/muslewski/eventizer-sub001/service"
	"github.com/techmaster-vietnam/goerrorkit"
)

// OfferHandler handles offer endpoints
type OfferHandler struct {
	offerService *service.OfferService
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerService *service.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

func statusParam(c *fiber.Ctx) (models.OfferStatus, error) {
	status := models.OfferStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		return "", goerrorkit.NewValidationError("Status không hợp lệ", map[string]interface{}{
			"status":  string(status),
			"allowed": []models.OfferStatus{models.OfferStatusDraft, models.OfferStatusPublished},
		})
	}
	return status, nil
}

// List handles public offer listing
// GET /api/offers?status=&page=&page_size=
func (h *OfferHandler) List(c *fiber.Ctx) error {
	status, err := statusParam(c)
	if err != nil {
		return err
	}
	page, pageSize, offset := pageParams(c)
	offers, total, err := h.offerService.List(middleware.GetPrincipal(c), status, offset, pageSize)
	if err != nil {
		return err
	}
	return listResponse(c, offers, total, page, pageSize)
}

// ListManaged trả về offer người gọi được sửa (trang quản trị)
// GET /api/admin/offers
func (h *OfferHandler) ListManaged(c *fiber.Ctx) error {
	status, err := statusParam(c)
	if err != nil {
		return err
	}
	page, pageSize, offset := pageParams(c)
	offers, total, err := h.offerService.ListManaged(middleware.GetPrincipal(c), status, offset, pageSize)
	if err != nil {
		return err
	}
	return listResponse(c, offers, total, page, pageSize)
}

// Get handles get offer request
// GET /api/offers/:id
func (h *OfferHandler) Get(c *fiber.Ctx) error {
	offer, err := h.offerService.Get(middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    offer,
	})
}

// Create handles create offer request
// POST /api/offers
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	var req service.CreateOfferRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	offer, err := h.offerService.Create(c.UserContext(), middleware.GetPrincipal(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    offer,
	})
}

// Update handles update offer request
// PUT /api/offers/:id
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	var req service.UpdateOfferRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	offer, err := h.offerService.Update(middleware.GetPrincipal(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    offer,
	})
}

// Delete handles delete offer request
// DELETE /api/offers/:id
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	if err := h.offerService.Delete(middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Xóa offer thành công",
	})
}
