package core

// CheckRole kiểm tra role của principal có nằm trong danh sách allowed không.
// Đây là so khớp chính xác, không xét cây phân quyền: admin không tự động thỏa [moderator].
func CheckRole(allowed []Role, p Principal) bool {
	for _, role := range allowed {
		GetRoleConfig(role)
	}
	if p.Role == nil {
		return false
	}
	GetRoleConfig(*p.Role)
	for _, role := range allowed {
		if role == *p.Role {
			return true
		}
	}
	return false
}

// IsRoleAtOrHigher kiểm tra role của principal ngang hoặc cao hơn threshold.
// admin thỏa threshold moderator; client thì không; khách chưa đăng nhập luôn false.
func IsRoleAtOrHigher(threshold Role, p Principal) bool {
	chain := GetRolesAtOrAbove(threshold)
	if p.Role == nil {
		return false
	}
	GetRoleConfig(*p.Role)
	for _, role := range chain {
		if role == *p.Role {
			return true
		}
	}
	return false
}

// Evaluate quyết định principal có được thực hiện thao tác theo policy không.
//
// record == nil nghĩa là thao tác trên cả collection (list/query). Khi đó policy
// MinimumRoleOrOwner không trả về boolean mà trả về AllowIf(ownerField == principal.ID)
// để người gọi AND vào câu query.
func Evaluate(policy Policy, p Principal, record Record) Decision {
	switch policy.kind {
	case policyPublic:
		return Allow()

	case policyAuthenticated:
		if !p.IsAuthenticated() {
			return Deny(ReasonUnauthenticated)
		}
		return Allow()

	case policyMinimumRole:
		if IsRoleAtOrHigher(policy.role, p) {
			return Allow()
		}
		return denyFor(p, ReasonInsufficientRole)

	case policyMinimumRoleOrOwner:
		if IsRoleAtOrHigher(policy.role, p) {
			return Allow()
		}
		if !p.IsAuthenticated() {
			return Deny(ReasonUnauthenticated)
		}
		// principal không có ID thì không sở hữu record nào
		if p.ID == "" {
			return Deny(ReasonNotOwner)
		}
		if record == nil {
			return AllowIf(Filter{Field: policy.ownerField, Value: p.ID})
		}
		if isOwner(policy.ownerField, p, record) {
			return Allow()
		}
		return Deny(ReasonNotOwner)
	}

	panic(configError("evaluating an undeclared policy", nil))
}

// CheckRoleAssignment là guard riêng khi gán role (cho người khác hoặc chính mình).
// Role có IsProtected chỉ được gán bởi principal có role đúng bằng root,
// kể cả khi principal đã qua được policy update thông thường.
func CheckRoleAssignment(actor Principal, target Role) Decision {
	def := GetRoleConfig(target)
	if !def.IsProtected {
		return Allow()
	}
	if actor.Role != nil && *actor.Role == RootRole() {
		return Allow()
	}
	return Deny(ReasonProtectedRole)
}

func isOwner(ownerField string, p Principal, record Record) bool {
	return Filter{Field: ownerField, Value: p.ID}.Matches(record)
}

func denyFor(p Principal, reason Reason) Decision {
	if !p.IsAuthenticated() {
		return Deny(ReasonUnauthenticated)
	}
	return Deny(reason)
}
