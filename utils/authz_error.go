package utils

import (
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/techmaster-vietnam/goerrorkit"
)

// DenialError chuyển decision bị từ chối thành goerrorkit AuthError.
// Chưa đăng nhập → 401; gán role được bảo vệ → 403 với thông báo riêng; còn lại → 403.
// Decision Allow trả về nil. AllowIf không được phép đi tới đây: người gọi phải áp filter.
func DenialError(d core.Decision, data map[string]interface{}) error {
	if d.IsAllowed() {
		return nil
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	reason := d.Reason
	if d.IsConditional() {
		reason = core.ReasonNotOwner
	}
	if reason == core.ReasonNone {
		reason = core.ReasonInsufficientRole
	}
	data["reason"] = string(reason)

	switch reason {
	case core.ReasonUnauthenticated:
		return goerrorkit.NewAuthError(401, "Yêu cầu đăng nhập").WithData(data)
	case core.ReasonProtectedRole:
		return goerrorkit.NewAuthError(403, "Không được phép gán role được bảo vệ").WithData(data)
	default:
		return goerrorkit.NewAuthError(403, "Không có quyền truy cập").WithData(data)
	}
}
