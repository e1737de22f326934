package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/middleware"
	"github.com/muslewski/eventizer-sub001/router"
	"github.com/techmaster-vietnam/goerrorkit"
)

// RouteHandler liệt kê routes đã khai báo cùng policy bảo vệ
type RouteHandler struct {
	registry *router.RouteRegistry
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(registry *router.RouteRegistry) *RouteHandler {
	return &RouteHandler{registry: registry}
}

// routeInfo là bản JSON của RouteMetadata
type routeInfo struct {
	*router.RouteMetadata
	Policy string `json:"policy,omitempty"`
	// Decision của người gọi với policy của route (chỉ có khi policy khai báo)
	Decision *core.Decision `json:"decision,omitempty"`
}

func newRouteInfo(route *router.RouteMetadata, p core.Principal) routeInfo {
	info := routeInfo{RouteMetadata: route}
	if !route.Policy.IsZero() {
		info.Policy = route.Policy.String()
		d := core.Evaluate(route.Policy, p, nil)
		info.Decision = &d
	}
	return info
}

// List handles list routes request
// GET /api/routes
func (h *RouteHandler) List(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	routes := h.registry.GetAllRoutes()
	out := make([]routeInfo, 0, len(routes))
	for _, route := range routes {
		out = append(out, newRouteInfo(route, p))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Find tìm route khớp với method và path thực tế, kèm decision của người gọi
// để client biết trước request có bị chặn không
// GET /api/routes/find?method=GET&path=/api/offers/123
func (h *RouteHandler) Find(c *fiber.Ctx) error {
	method := strings.ToUpper(c.Query("method", fiber.MethodGet))
	path := c.Query("path")
	if path == "" {
		return goerrorkit.NewValidationError("path là bắt buộc", map[string]interface{}{
			"field": "path",
		})
	}

	route := h.registry.FindRoute(method, path)
	if route == nil {
		return goerrorkit.NewBusinessError(404, "Không tìm thấy route").WithData(map[string]interface{}{
			"method": method,
			"path":   path,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    newRouteInfo(route, middleware.GetPrincipal(c)),
	})
}
