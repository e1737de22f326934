package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/middleware"
	"github.com/muslewski/eventizer-sub001/service"
)

// RoleHandler handles role registry endpoints (read-only)
type RoleHandler struct {
	roleService *service.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// ListRoles handles list roles request
// GET /api/roles
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.roleService.ListRoles(),
	})
}

// AtOrAbove trả về role và các role cao hơn nó
// GET /api/roles/:role/above
func (h *RoleHandler) AtOrAbove(c *fiber.Ctx) error {
	roles, err := h.roleService.RolesAtOrAbove(c.Params("role"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    roles,
	})
}

// Assignable trả về các role mà người gọi được phép gán
// GET /api/roles/assignable
func (h *RoleHandler) Assignable(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.roleService.AssignableRoles(middleware.GetPrincipal(c)),
	})
}
