package router

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/core"
)

// AccessType là cách route được bảo vệ
type AccessType string

const (
	AccessPublic        AccessType = "public"        // khách được vào, principal vẫn được gắn nếu có session
	AccessAuthenticated AccessType = "authenticated" // mọi user đã đăng nhập
	AccessPolicy        AccessType = "policy"        // chặn theo core.Policy
	AccessCollection    AccessType = "collection"    // chặn theo policy của operation trên collection
)

// RouteMetadata lưu thông tin route được khai báo trong code
type RouteMetadata struct {
	Method      string         `json:"method"`
	Path        string         `json:"-"`    // Relative path (để register vào router)
	FullPath    string         `json:"path"` // Full path pattern bao gồm prefix
	Handler     fiber.Handler  `json:"-"`
	AccessType  AccessType     `json:"access"`
	Policy      core.Policy    `json:"-"`
	Collection  string         `json:"collection,omitempty"`
	Operation   core.Operation `json:"operation,omitempty"`
	Description string         `json:"description,omitempty"`
}

// RouteRegistry quản lý tất cả routes được đăng ký từ code
type RouteRegistry struct {
	routes      []*RouteMetadata
	exactMap    map[string]*RouteMetadata // O(1) lookup: "METHOD|PATH" -> RouteMetadata
	patternList []*RouteMetadata          // Routes có wildcard patterns
	mutex       sync.RWMutex
}

// NewRouteRegistry tạo mới RouteRegistry
func NewRouteRegistry() *RouteRegistry {
	return &RouteRegistry{
		routes:      make([]*RouteMetadata, 0),
		exactMap:    make(map[string]*RouteMetadata),
		patternList: make([]*RouteMetadata, 0),
	}
}

// Register đăng ký một route vào registry
func (rr *RouteRegistry) Register(route *RouteMetadata) {
	rr.mutex.Lock()
	defer rr.mutex.Unlock()

	rr.routes = append(rr.routes, route)

	if strings.Contains(route.FullPath, "*") {
		rr.patternList = append(rr.patternList, route)
	} else {
		key := fmt.Sprintf("%s|%s", route.Method, route.FullPath)
		rr.exactMap[key] = route
	}
}

// GetAllRoutes trả về tất cả routes đã đăng ký
func (rr *RouteRegistry) GetAllRoutes() []*RouteMetadata {
	rr.mutex.RLock()
	defer rr.mutex.RUnlock()

	routes := make([]*RouteMetadata, len(rr.routes))
	copy(routes, rr.routes)
	return routes
}

// FindRoute tìm route theo method và path thực tế (ví dụ /api/offers/123)
func (rr *RouteRegistry) FindRoute(method, path string) *RouteMetadata {
	rr.mutex.RLock()
	defer rr.mutex.RUnlock()

	key := fmt.Sprintf("%s|%s", method, path)
	if route, found := rr.exactMap[key]; found {
		return route
	}

	for _, route := range rr.patternList {
		if route.Method == method && matchPath(route.FullPath, path) {
			return route
		}
	}

	return nil
}

// matchPath kiểm tra path có match với pattern không (* khớp đúng một segment)
func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}

	return true
}
