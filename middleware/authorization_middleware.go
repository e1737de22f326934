package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/utils"
)

// RequirePolicy chặn route theo policy.
// Allow → đi tiếp; AllowIf → đi tiếp và lưu decision để handler áp filter vào query; Deny → lỗi 401/403.
// Phải đặt sau OptionalSession hoặc RequireSession.
func RequirePolicy(policy core.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return enforce(c, core.Evaluate(policy, GetPrincipal(c), nil), map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"policy": policy.String(),
		})
	}
}

// RequireCollectionAccess chặn route theo policy của operation trên collection
func RequireCollectionAccess(collection core.CollectionAccess, op core.Operation) fiber.Handler {
	policy := collection.PolicyFor(op)
	return func(c *fiber.Ctx) error {
		return enforce(c, core.Evaluate(policy, GetPrincipal(c), nil), map[string]interface{}{
			"method":     c.Method(),
			"path":       c.Path(),
			"collection": collection.Slug,
			"operation":  string(op),
		})
	}
}

// RequireAdminAccess chỉ cho principal được thấy collection trong trang quản trị
func RequireAdminAccess(collection core.CollectionAccess) fiber.Handler {
	return RequireCollectionAccess(collection, core.OperationAdmin)
}

func enforce(c *fiber.Ctx, d core.Decision, data map[string]interface{}) error {
	if d.IsDenied() {
		return utils.DenialError(d, data)
	}
	c.Locals(localsAccess, d)
	return c.Next()
}

// GetAccess trả về decision do RequirePolicy/RequireCollectionAccess lưu lại
func GetAccess(c *fiber.Ctx) (core.Decision, bool) {
	d, ok := c.Locals(localsAccess).(core.Decision)
	return d, ok
}
