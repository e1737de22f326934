package core

import "fmt"

type policyKind uint8

const (
	policyPublic policyKind = iota + 1
	policyAuthenticated
	policyMinimumRole
	policyMinimumRoleOrOwner
)

// Policy là yêu cầu gắn với một operation hoặc một field.
// Zero value không hợp lệ: evaluate một Policy chưa khai báo sẽ panic.
type Policy struct {
	kind       policyKind
	role       Role
	ownerField string
}

// Public cho phép mọi người, kể cả khách
func Public() Policy {
	return Policy{kind: policyPublic}
}

// Authenticated cho phép mọi principal đã đăng nhập
func Authenticated() Policy {
	return Policy{kind: policyAuthenticated}
}

// MinimumRole yêu cầu role của principal ngang hoặc cao hơn role
func MinimumRole(role Role) Policy {
	GetRoleConfig(role)
	return Policy{kind: policyMinimumRole, role: role}
}

// MinimumRoleOrOwner giống MinimumRole, hoặc principal là chủ record (record[ownerField] == principal.ID)
func MinimumRoleOrOwner(role Role, ownerField string) Policy {
	GetRoleConfig(role)
	if ownerField == "" {
		panic(configError("owner field is required", map[string]interface{}{"role": role}))
	}
	return Policy{kind: policyMinimumRoleOrOwner, role: role, ownerField: ownerField}
}

// IsZero trả về true nếu policy chưa được khai báo
func (p Policy) IsZero() bool {
	return p.kind == 0
}

// Role trả về role tối thiểu, rỗng với Public/Authenticated
func (p Policy) Role() Role {
	return p.role
}

// OwnerField trả về tên field chủ sở hữu, rỗng nếu policy không xét ownership
func (p Policy) OwnerField() string {
	return p.ownerField
}

func (p Policy) String() string {
	switch p.kind {
	case policyPublic:
		return "public"
	case policyAuthenticated:
		return "authenticated"
	case policyMinimumRole:
		return fmt.Sprintf("minimumRole(%s)", p.role)
	case policyMinimumRoleOrOwner:
		return fmt.Sprintf("minimumRoleOrOwner(%s, %s)", p.role, p.ownerField)
	default:
		return "undeclared"
	}
}

// MarshalText cho phép in policy trong JSON (ví dụ danh sách route)
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
