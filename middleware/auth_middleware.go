package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/contracts"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/models"
	"github.com/techmaster-vietnam/goerrorkit"
	"gorm.io/gorm"
)

const (
	localsPrincipal = "principal"
	localsUser      = "user"
	localsAccess    = "access"
)

// AuthMiddleware chuyển session của request thành core.Principal
type AuthMiddleware struct {
	sessions contracts.SessionProvider
	userRepo contracts.UserRepositoryInterface
}

// NewAuthMiddleware creates a new auth middleware.
// userRepo có thể nil: khi đó role lấy trực tiếp từ session mà không kiểm tra database.
func NewAuthMiddleware(sessions contracts.SessionProvider, userRepo contracts.UserRepositoryInterface) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		userRepo: userRepo,
	}
}

// OptionalSession gắn principal vào context; request không có session thành khách (anonymous)
func (m *AuthMiddleware) OptionalSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := m.resolve(c)
		if err != nil {
			return err
		}
		c.Locals(localsPrincipal, p)
		return c.Next()
	}
}

// RequireSession giống OptionalSession nhưng từ chối khách với 401
func (m *AuthMiddleware) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := m.resolve(c)
		if err != nil {
			return err
		}
		if !p.IsAuthenticated() {
			return goerrorkit.NewAuthError(401, "Yêu cầu đăng nhập")
		}
		c.Locals(localsPrincipal, p)
		return c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (core.Principal, error) {
	s, err := m.sessions.GetSession(c)
	if err != nil {
		return core.Anonymous(), err
	}
	if s == nil {
		return core.Anonymous(), nil
	}

	roleValue := s.Role
	if m.userRepo != nil {
		user, err := m.userRepo.GetByID(s.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return core.Anonymous(), goerrorkit.NewAuthError(401, "Người dùng không tồn tại").WithData(map[string]interface{}{
					"user_id": s.UserID,
				})
			}
			return core.Anonymous(), goerrorkit.WrapWithMessage(err, "Lỗi khi lấy thông tin người dùng")
		}
		if !user.IsActive {
			return core.Anonymous(), goerrorkit.NewAuthError(403, "Tài khoản đã bị vô hiệu hóa").WithData(map[string]interface{}{
				"user_id": user.ID,
			})
		}
		// Role trong database là nguồn đúng: token cũ sau khi bị hạ role không còn quyền cũ
		roleValue = string(user.Role)
		c.Locals(localsUser, user)
	}

	// Role lạ trong session đã ký hợp lệ là lỗi cấu hình (500), không phải deny
	role, err := core.ParseRole(roleValue)
	if err != nil {
		return core.Anonymous(), goerrorkit.NewSystemError(err).WithData(map[string]interface{}{
			"user_id": s.UserID,
			"role":    roleValue,
		})
	}
	return core.NewPrincipal(s.UserID, role), nil
}

// GetPrincipal trả về principal của request, anonymous nếu chưa qua auth middleware
func GetPrincipal(c *fiber.Ctx) core.Principal {
	if p, ok := c.Locals(localsPrincipal).(core.Principal); ok {
		return p
	}
	return core.Anonymous()
}

// GetUserFromContext trả về user đã load từ database (chỉ có khi middleware có userRepo)
func GetUserFromContext(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(localsUser).(*models.User)
	return user, ok
}
