package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/middleware"
	"github.com/muslewski/eventizer-sub001/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles login request
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// Logout handles logout request
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// JWT stateless: client tự xóa token
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đăng xuất thành công",
	})
}

// Register handles registration request
// POST /api/auth/register
// Route public: khách tự đăng ký, admin đã đăng nhập có thể tạo tài khoản role được bảo vệ
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(middleware.GetPrincipal(c), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// Me handles get profile request
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		var err error
		user, err = h.authService.Me(middleware.GetPrincipal(c))
		if err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// ChangePasswordRequest represents change password request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePassword handles change password request
// PUT /api/auth/password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(middleware.GetPrincipal(c), req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đổi mật khẩu thành công",
	})
}
