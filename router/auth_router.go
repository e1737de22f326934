package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/middleware"
)

// AuthRouter wrapper cho fiber.Router với fluent API để cấu hình routes và phân quyền
type AuthRouter struct {
	router   fiber.Router
	registry *RouteRegistry
	authMw   *middleware.AuthMiddleware
	prefix   string // Prefix path của group (để build full path)
}

// NewAuthRouter tạo mới AuthRouter
func NewAuthRouter(
	router fiber.Router,
	registry *RouteRegistry,
	authMw *middleware.AuthMiddleware,
) *AuthRouter {
	return &AuthRouter{
		router:   router,
		registry: registry,
		authMw:   authMw,
	}
}

// Get tạo GET route với fluent API
func (ar *AuthRouter) Get(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder("GET", path, handler)
}

// Post tạo POST route với fluent API
func (ar *AuthRouter) Post(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder("POST", path, handler)
}

// Put tạo PUT route với fluent API
func (ar *AuthRouter) Put(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder("PUT", path, handler)
}

// Delete tạo DELETE route với fluent API
func (ar *AuthRouter) Delete(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder("DELETE", path, handler)
}

// Patch tạo PATCH route với fluent API
func (ar *AuthRouter) Patch(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder("PATCH", path, handler)
}

// Group tạo router group với middleware tùy chọn
func (ar *AuthRouter) Group(prefix string, handlers ...fiber.Handler) *AuthRouter {
	group := ar.router.Group(prefix, handlers...)
	newRouter := NewAuthRouter(group, ar.registry, ar.authMw)
	// Build full prefix path
	newRouter.prefix = strings.TrimSuffix(ar.prefix, "/") + "/" + strings.TrimPrefix(prefix, "/")
	newRouter.prefix = strings.TrimPrefix(newRouter.prefix, "/")
	if newRouter.prefix != "" {
		newRouter.prefix = "/" + newRouter.prefix
	}
	return newRouter
}

// Registry trả về registry dùng chung của router
func (ar *AuthRouter) Registry() *RouteRegistry {
	return ar.registry
}

// convertPathToPattern đổi path parameter thành wildcard
// Ví dụ: /offers/:id -> /offers/*, /users/:id/role -> /users/*/role
func convertPathToPattern(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = "*"
		}
	}
	return strings.Join(parts, "/")
}

// createRouteBuilder tạo RouteBuilder cho route
func (ar *AuthRouter) createRouteBuilder(method, path string, handler fiber.Handler) *RouteBuilder {
	fullPath := strings.TrimSuffix(ar.prefix, "/") + "/" + strings.TrimPrefix(path, "/")
	fullPath = strings.TrimPrefix(fullPath, "/")
	if fullPath != "" {
		fullPath = "/" + fullPath
		// Normalize: remove trailing slash (except for root)
		fullPath = strings.TrimSuffix(fullPath, "/")
		if fullPath == "" {
			fullPath = "/"
		}
	} else {
		fullPath = "/"
	}

	return &RouteBuilder{
		metadata: &RouteMetadata{
			Method:   method,
			Path:     path,
			FullPath: convertPathToPattern(fullPath),
			Handler:  handler,
		},
		router:   ar.router,
		registry: ar.registry,
		authMw:   ar.authMw,
	}
}

