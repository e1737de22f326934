package service

import (
	"github.com/muslewski/eventizer-sub001/core"
)

// RoleService trả về thông tin registry role cho client (read-only)
type RoleService struct{}

// NewRoleService creates a new role service
func NewRoleService() *RoleService {
	return &RoleService{}
}

// RoleInfo là RoleDefinition kèm chuỗi tổ tiên
type RoleInfo struct {
	core.RoleDefinition
	AtOrAbove []core.Role `json:"atOrAbove"`
}

// ListRoles trả về toàn bộ registry theo thứ tự khai báo
func (s *RoleService) ListRoles() []RoleInfo {
	defs := core.Roles()
	out := make([]RoleInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, RoleInfo{
			RoleDefinition: def,
			AtOrAbove:      core.GetRolesAtOrAbove(def.Value),
		})
	}
	return out
}

// RolesAtOrAbove trả về role và các tổ tiên của nó. Tên role lạ → ValidationError.
func (s *RoleService) RolesAtOrAbove(name string) ([]core.Role, error) {
	role, err := core.ParseRole(name)
	if err != nil {
		return nil, err
	}
	return core.GetRolesAtOrAbove(role), nil
}

// AssignableRoles trả về các role mà actor được phép gán:
// actor phải dominate role đó và role phải qua guard role được bảo vệ.
// Khách (chưa đăng nhập) nhận các role tự đăng ký được.
func (s *RoleService) AssignableRoles(actor core.Principal) []core.Role {
	candidates := core.RoleValues()
	if actor.IsAuthenticated() {
		candidates = core.GetRolesAtOrBelow(actor.RoleValue())
	}
	var out []core.Role
	for _, role := range candidates {
		if core.CheckRoleAssignment(actor, role).IsAllowed() {
			out = append(out, role)
		}
	}
	return out
}
