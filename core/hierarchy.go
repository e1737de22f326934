package core

import "fmt"

// rolesAtOrAbove đi từ role lên root theo parent.
// Số bước bị chặn bởi tổng số role: vượt quá nghĩa là cây có chu trình.
func (r *registry) rolesAtOrAbove(role Role) []Role {
	def := r.lookup(role)
	chain := []Role{def.Value}
	for !def.IsRoot() {
		if len(chain) >= len(r.defs) {
			panic(configError(fmt.Sprintf("parent chain of %q does not reach the root", string(role)), map[string]interface{}{
				"role":  role,
				"chain": chain,
			}))
		}
		def = r.lookup(def.Parent)
		chain = append(chain, def.Value)
	}
	return chain
}

// GetRolesAtOrAbove trả về [role, parent, grandparent, ..., admin].
// Gọi với root trả về [admin].
func GetRolesAtOrAbove(role Role) []Role {
	return defaultRegistry.rolesAtOrAbove(role)
}

// Dominates trả về true nếu role a ngang hoặc cao hơn role b trong cây,
// tức là a nằm trên chuỗi từ b lên root
func Dominates(a, b Role) bool {
	defaultRegistry.lookup(a)
	for _, role := range GetRolesAtOrAbove(b) {
		if role == a {
			return true
		}
	}
	return false
}

// GetRolesAtOrBelow trả về các role mà role này dominate, theo thứ tự chuẩn của registry
func GetRolesAtOrBelow(role Role) []Role {
	defaultRegistry.lookup(role)
	out := make([]Role, 0, len(defaultRegistry.defs))
	for _, def := range defaultRegistry.defs {
		if Dominates(role, def.Value) {
			out = append(out, def.Value)
		}
	}
	return out
}
