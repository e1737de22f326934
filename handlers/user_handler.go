package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/middleware"
	"github.com/muslewski/eventizer-sub001/service"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles list users request
// GET /api/users?page=1&page_size=20
// Moderator thấy tất cả, user thường chỉ thấy chính mình
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, pageSize, offset := pageParams(c)
	users, total, err := h.userService.List(middleware.GetPrincipal(c), offset, pageSize)
	if err != nil {
		return err
	}
	return listResponse(c, users, total, page, pageSize)
}

// Get handles get user request
// GET /api/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.userService.Get(middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// Update handles update user request
// PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req service.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.userService.Update(middleware.GetPrincipal(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// UpdateRole handles role change request
// PUT /api/users/:id/role
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	var req service.UpdateRoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateRole(middleware.GetPrincipal(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// Delete handles delete user request
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.userService.Delete(middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Xóa người dùng thành công",
	})
}
