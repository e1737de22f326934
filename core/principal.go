package core

// Principal là actor đang gửi request.
// Role == nil nghĩa là khách chưa đăng nhập.
type Principal struct {
	ID   string `json:"id"`
	Role *Role  `json:"role"`
}

// Anonymous trả về principal chưa đăng nhập
func Anonymous() Principal {
	return Principal{}
}

// NewPrincipal tạo principal đã đăng nhập. Role lạ sẽ panic (xem GetRoleConfig).
func NewPrincipal(id string, role Role) Principal {
	GetRoleConfig(role)
	r := role
	return Principal{ID: id, Role: &r}
}

// IsAuthenticated trả về true nếu principal có role
func (p Principal) IsAuthenticated() bool {
	return p.Role != nil
}

// RoleValue trả về role của principal, rỗng nếu chưa đăng nhập
func (p Principal) RoleValue() Role {
	if p.Role == nil {
		return ""
	}
	return *p.Role
}
