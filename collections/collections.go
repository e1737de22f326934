// Package collections khai báo policy cho từng collection của marketplace
package collections

import (
	"sort"

	"github.com/muslewski/eventizer-sub001/core"
)

const (
	SlugUsers  = "users"
	SlugOffers = "offers"
)

// Tên field (JSON) có policy riêng
const (
	FieldID               = "id"
	FieldUserID           = "userId"
	FieldRole             = "role"
	FieldStripeCustomerID = "stripeCustomerId"
	FieldHidden           = "hidden"
	FieldIsActive         = "isActive"
)

// Users trả về policy mặc định của collection users.
// Ngoài policy field "role", việc đổi role còn phải qua core.CheckRoleAssignment.
func Users() core.CollectionAccess {
	return core.CollectionAccess{
		Slug:   SlugUsers,
		Read:   core.MinimumRoleOrOwner(core.RoleModerator, FieldID),
		Create: core.Public(),
		Update: core.MinimumRoleOrOwner(core.RoleModerator, FieldID),
		Delete: core.MinimumRole(core.RoleAdmin),
		Admin:  core.MinimumRole(core.RoleModerator),
		Fields: map[string]core.FieldAccess{
			FieldRole: {
				Read:   core.Authenticated(),
				Update: core.MinimumRole(core.RoleModerator),
			},
			FieldStripeCustomerID: {
				Read:   core.MinimumRoleOrOwner(core.RoleAdmin, FieldID),
				Update: core.MinimumRoleOrOwner(core.RoleAdmin, FieldID),
			},
			// khóa/mở tài khoản là việc của moderator, không phải của chủ tài khoản
			FieldIsActive: {
				Update: core.MinimumRole(core.RoleModerator),
			},
		},
	}
}

// Offers trả về policy mặc định của collection offers
func Offers() core.CollectionAccess {
	return core.CollectionAccess{
		Slug:   SlugOffers,
		Read:   core.Public(),
		Create: core.MinimumRole(core.RoleServiceProvider),
		Update: core.MinimumRoleOrOwner(core.RoleModerator, FieldUserID),
		Delete: core.MinimumRoleOrOwner(core.RoleModerator, FieldUserID),
		Admin:  core.MinimumRole(core.RoleServiceProvider),
		Fields: map[string]core.FieldAccess{
			// ẩn/hiện offer là quyền kiểm duyệt, chủ offer không tự đổi được
			FieldHidden: {
				Update: core.MinimumRole(core.RoleModerator),
			},
		},
	}
}

// Set là tập collection theo slug
type Set map[string]core.CollectionAccess

// Defaults trả về tập collection mặc định
func Defaults() Set {
	return Set{
		SlugUsers:  Users(),
		SlugOffers: Offers(),
	}
}

// Get trả về collection theo slug
func (s Set) Get(slug string) (core.CollectionAccess, bool) {
	c, ok := s[slug]
	return c, ok
}

// MustGet trả về collection theo slug, panic nếu chưa khai báo
func (s Set) MustGet(slug string) core.CollectionAccess {
	c, ok := s[slug]
	if !ok {
		panic(configError("collection is not declared", map[string]interface{}{"collection": slug}))
	}
	return c
}

// Slugs trả về danh sách slug theo thứ tự alphabet
func (s Set) Slugs() []string {
	slugs := make([]string, 0, len(s))
	for slug := range s {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Clone trả về bản sao sâu (kể cả map Fields) để override không ảnh hưởng bản gốc
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for slug, c := range s {
		fields := make(map[string]core.FieldAccess, len(c.Fields))
		for name, fa := range c.Fields {
			fields[name] = fa
		}
		c.Fields = fields
		out[slug] = c
	}
	return out
}
