// Package session đọc session đăng nhập từ request
package session

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/contracts"
	"github.com/muslewski/eventizer-sub001/utils"
	"github.com/techmaster-vietnam/goerrorkit"
)

// JWTProvider đọc session từ JWT (header Authorization: Bearer hoặc cookie "token")
type JWTProvider struct {
	secret string
}

// NewJWTProvider creates a new JWT session provider
func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{secret: secret}
}

// GetSession implements contracts.SessionProvider
func (p *JWTProvider) GetSession(c *fiber.Ctx) (*contracts.Session, error) {
	token := ExtractToken(c)
	if token == "" {
		return nil, nil
	}

	claims, err := utils.ValidateToken(token, p.secret)
	if err != nil {
		return nil, goerrorkit.NewAuthError(401, "Token không hợp lệ").WithData(map[string]interface{}{
			"error": err.Error(),
		})
	}
	if claims.UserID == "" {
		return nil, goerrorkit.NewAuthError(401, "Token không hợp lệ").WithData(map[string]interface{}{
			"error": "missing user_id claim",
		})
	}

	return &contracts.Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// ExtractToken extracts token from Authorization header or cookie
func ExtractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	return c.Cookies("token")
}
