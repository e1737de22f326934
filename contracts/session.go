package contracts

import "github.com/gofiber/fiber/v2"

// Session là thông tin đăng nhập đã được xác thực của request hiện tại.
// Role là chuỗi thô từ nguồn phát hành session; middleware parse nó thành core.Role.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// SessionProvider trả về session của request.
// (nil, nil) nghĩa là request không mang session (khách chưa đăng nhập).
// Lỗi chỉ dùng khi request mang session nhưng session không hợp lệ.
type SessionProvider interface {
	GetSession(c *fiber.Ctx) (*Session, error)
}
