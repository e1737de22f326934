package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/middleware"
)

// RouteBuilder cung cấp fluent API để cấu hình route và phân quyền.
// Route chưa gọi Public/Authenticated/Policy/Collection mặc định là Authenticated.
type RouteBuilder struct {
	metadata   *RouteMetadata
	router     fiber.Router
	registry   *RouteRegistry
	authMw     *middleware.AuthMiddleware
	collection core.CollectionAccess
}

// Public đánh dấu route là public (khách được vào)
func (rb *RouteBuilder) Public() *RouteBuilder {
	rb.metadata.AccessType = AccessPublic
	rb.metadata.Policy = core.Policy{}
	return rb
}

// Authenticated cho mọi user đã đăng nhập
func (rb *RouteBuilder) Authenticated() *RouteBuilder {
	rb.metadata.AccessType = AccessAuthenticated
	rb.metadata.Policy = core.Policy{}
	return rb
}

// Policy chặn route theo policy.
// MinimumRoleOrOwner không có record ở tầng route nên user thường nhận AllowIf
// và handler phải áp filter (xem middleware.GetAccess).
func (rb *RouteBuilder) Policy(policy core.Policy) *RouteBuilder {
	rb.metadata.AccessType = AccessPolicy
	rb.metadata.Policy = policy
	return rb
}

// Collection chặn route theo policy của op trên collection
func (rb *RouteBuilder) Collection(collection core.CollectionAccess, op core.Operation) *RouteBuilder {
	rb.metadata.AccessType = AccessCollection
	rb.metadata.Policy = collection.PolicyFor(op)
	rb.metadata.Collection = collection.Slug
	rb.metadata.Operation = op
	rb.collection = collection
	return rb
}

// Admin là Collection(collection, OperationAdmin): route của trang quản trị
func (rb *RouteBuilder) Admin(collection core.CollectionAccess) *RouteBuilder {
	return rb.Collection(collection, core.OperationAdmin)
}

// Description thêm mô tả cho route
func (rb *RouteBuilder) Description(desc string) *RouteBuilder {
	rb.metadata.Description = desc
	return rb
}

// Register hoàn tất việc đăng ký route và áp dụng middleware phù hợp
func (rb *RouteBuilder) Register() {
	if rb.metadata.AccessType == "" {
		rb.metadata.AccessType = AccessAuthenticated
	}
	rb.registry.Register(rb.metadata)

	var handlers []fiber.Handler
	switch rb.metadata.AccessType {
	case AccessPublic:
		handlers = append(handlers, rb.authMw.OptionalSession())
	case AccessAuthenticated:
		handlers = append(handlers, rb.authMw.RequireSession())
	case AccessPolicy:
		handlers = append(handlers, rb.authMw.OptionalSession(), middleware.RequirePolicy(rb.metadata.Policy))
	case AccessCollection:
		gate := middleware.RequireCollectionAccess(rb.collection, rb.metadata.Operation)
		if rb.metadata.Operation == core.OperationAdmin {
			gate = middleware.RequireAdminAccess(rb.collection)
		}
		handlers = append(handlers, rb.authMw.OptionalSession(), gate)
	}
	handlers = append(handlers, rb.metadata.Handler)

	rb.router.Add(rb.metadata.Method, rb.metadata.Path, handlers...)
}
