package core

import (
	"fmt"

	"github.com/techmaster-vietnam/goerrorkit"
)

// Role là giá trị trong tập role đóng của hệ thống
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleModerator       Role = "moderator"
	RoleServiceProvider Role = "service-provider"
	RoleClient          Role = "client"
)

// RoleDefinition mô tả một role trong cây phân quyền
// Label, Icon, Color chỉ dùng cho hiển thị, không ảnh hưởng tới authorization
type RoleDefinition struct {
	Value       Role   `json:"value"`
	Parent      Role   `json:"parent,omitempty"` // rỗng = root
	IsProtected bool   `json:"isProtected"`      // chỉ root mới được gán role này
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// IsRoot trả về true nếu role không có parent
func (d RoleDefinition) IsRoot() bool {
	return d.Parent == ""
}

// roleDefinitions là danh sách role theo thứ tự chuẩn
// admin → moderator → {service-provider, client}
var roleDefinitions = []RoleDefinition{
	{Value: RoleAdmin, IsProtected: true, Label: "Administrator", Icon: "shield-check", Color: "red"},
	{Value: RoleModerator, Parent: RoleAdmin, IsProtected: true, Label: "Moderator", Icon: "shield", Color: "orange"},
	{Value: RoleServiceProvider, Parent: RoleModerator, Label: "Service provider", Icon: "briefcase", Color: "blue"},
	{Value: RoleClient, Parent: RoleModerator, Label: "Client", Icon: "user", Color: "green"},
}

// registry giữ danh sách role bất biến và index tra cứu theo value
type registry struct {
	defs  []RoleDefinition
	index map[Role]int
	root  Role
}

var defaultRegistry = newRegistry(roleDefinitions)

// newRegistry dựng registry và kiểm tra cấu trúc cây.
// Cấu hình sai (trùng role, parent không tồn tại, không đúng một root, có chu trình) là lỗi lập trình
// nên panic ngay khi khởi động.
func newRegistry(defs []RoleDefinition) *registry {
	r := &registry{
		defs:  make([]RoleDefinition, len(defs)),
		index: make(map[Role]int, len(defs)),
	}
	copy(r.defs, defs)

	for i, def := range r.defs {
		if def.Value == "" {
			panic(configError("role definition without value", map[string]interface{}{"position": i}))
		}
		if _, exists := r.index[def.Value]; exists {
			panic(configError("duplicate role definition", map[string]interface{}{"role": def.Value}))
		}
		r.index[def.Value] = i
	}

	for _, def := range r.defs {
		if def.IsRoot() {
			if r.root != "" {
				panic(configError("multiple root roles", map[string]interface{}{
					"roles": []Role{r.root, def.Value},
				}))
			}
			r.root = def.Value
			continue
		}
		if _, ok := r.index[def.Parent]; !ok {
			panic(configError("unknown parent role", map[string]interface{}{
				"role":   def.Value,
				"parent": def.Parent,
			}))
		}
	}
	if r.root == "" {
		panic(configError("role tree has no root", nil))
	}

	// Mọi chuỗi parent phải kết thúc tại root
	for _, def := range r.defs {
		r.rolesAtOrAbove(def.Value)
	}
	return r
}

// lookup trả về định nghĩa role, panic nếu role nằm ngoài tập đã khai báo
func (r *registry) lookup(role Role) RoleDefinition {
	i, ok := r.index[role]
	if !ok {
		panic(configError(fmt.Sprintf("unknown role %q", string(role)), map[string]interface{}{
			"role": role,
		}))
	}
	return r.defs[i]
}

// GetRoleConfig trả về định nghĩa của role.
// Role ngoài tập đã khai báo là lỗi cấu hình: hàm panic thay vì trả về giá trị mặc định.
func GetRoleConfig(role Role) RoleDefinition {
	return defaultRegistry.lookup(role)
}

// Roles trả về bản sao danh sách role theo thứ tự chuẩn
func Roles() []RoleDefinition {
	out := make([]RoleDefinition, len(defaultRegistry.defs))
	copy(out, defaultRegistry.defs)
	return out
}

// RoleValues trả về danh sách value của tất cả role
func RoleValues() []Role {
	out := make([]Role, 0, len(defaultRegistry.defs))
	for _, def := range defaultRegistry.defs {
		out = append(out, def.Value)
	}
	return out
}

// RootRole trả về role gốc (admin)
func RootRole() Role {
	return defaultRegistry.root
}

// IsValid kiểm tra role có thuộc tập đã khai báo không
func (r Role) IsValid() bool {
	_, ok := defaultRegistry.index[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// ParseRole chuyển chuỗi từ input bên ngoài (request body, token claim) thành Role.
// Khác với GetRoleConfig, giá trị lạ ở đây là lỗi validation của người gọi, không phải lỗi lập trình.
func ParseRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", goerrorkit.NewValidationError("Role không hợp lệ", map[string]interface{}{
			"role":    value,
			"allowed": RoleValues(),
		})
	}
	return role, nil
}

func configError(msg string, data map[string]interface{}) error {
	err := goerrorkit.NewSystemError(fmt.Errorf("role registry: %s", msg))
	if data != nil {
		return err.WithData(data)
	}
	return err
}
