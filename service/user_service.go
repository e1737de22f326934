package service

import (
	"errors"

	"github.com/muslewski/eventizer-sub001/contracts"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/models"
	"github.com/muslewski/eventizer-sub001/utils"
	"github.com/techmaster-vietnam/goerrorkit"
	"gorm.io/gorm"
)

// UserService quản lý tài khoản theo policy của collection users
type UserService struct {
	userRepo contracts.UserRepositoryInterface
	users    core.CollectionAccess
}

// NewUserService creates a new user service
func NewUserService(userRepo contracts.UserRepositoryInterface, users core.CollectionAccess) *UserService {
	return &UserService{
		userRepo: userRepo,
		users:    users,
	}
}

// UpdateUserRequest: field nil = không đổi
type UpdateUserRequest struct {
	FullName         *string `json:"fullName" validate:"omitempty,max=255"`
	StripeCustomerID *string `json:"stripeCustomerId" validate:"omitempty,max=64"`
	IsActive         *bool   `json:"isActive"`
}

// changedFields trả về tên JSON của các field được gửi lên
func (r UpdateUserRequest) changedFields() []string {
	var fields []string
	if r.FullName != nil {
		fields = append(fields, "fullName")
	}
	if r.StripeCustomerID != nil {
		fields = append(fields, "stripeCustomerId")
	}
	if r.IsActive != nil {
		fields = append(fields, "isActive")
	}
	return fields
}

// UpdateRoleRequest represents role change request
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

// Get trả về user đã bỏ các field người xem không được đọc
func (s *UserService) Get(p core.Principal, id string) (View, error) {
	user, err := findUser(s.userRepo, id)
	if err != nil {
		return nil, err
	}
	record := user.Record()
	if d := s.users.Check(core.OperationRead, p, record); !d.IsAllowed() {
		return nil, utils.DenialError(d, map[string]interface{}{"user_id": id})
	}
	return newView(user, s.users.HiddenFields(p, record))
}

// List liệt kê user theo policy read: moderator thấy tất cả, user thường chỉ thấy chính mình
func (s *UserService) List(p core.Principal, offset, limit int) ([]View, int64, error) {
	d := s.users.Check(core.OperationRead, p, nil)
	if d.IsDenied() {
		return nil, 0, utils.DenialError(d, nil)
	}

	users, total, err := s.userRepo.List(d, offset, limit)
	if err != nil {
		return nil, 0, goerrorkit.WrapWithMessage(err, "Lỗi khi lấy danh sách người dùng")
	}

	views := make([]View, 0, len(users))
	for i := range users {
		view, err := newView(&users[i], s.users.HiddenFields(p, users[i].Record()))
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// Update cập nhật thông tin user. Mỗi field bị đổi phải qua policy field của nó.
func (s *UserService) Update(p core.Principal, id string, req UpdateUserRequest) (View, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	user, err := findUser(s.userRepo, id)
	if err != nil {
		return nil, err
	}
	record := user.Record()
	if d := s.users.Check(core.OperationUpdate, p, record); !d.IsAllowed() {
		return nil, utils.DenialError(d, map[string]interface{}{"user_id": id})
	}
	if field, d := s.users.CheckFieldUpdates(p, record, req.changedFields()); !d.IsAllowed() {
		return nil, utils.DenialError(d, map[string]interface{}{"field": field})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.StripeCustomerID != nil {
		user.StripeCustomerID = *req.StripeCustomerID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi cập nhật người dùng")
	}
	return newView(user, s.users.HiddenFields(p, user.Record()))
}

// UpdateRole đổi role của user. Thứ tự kiểm tra:
//  1. policy update của collection và policy field "role"
//  2. guard role được bảo vệ cho cả role mới lẫn role hiện tại
//  3. actor phải dominate role hiện tại của user
func (s *UserService) UpdateRole(p core.Principal, id string, req UpdateRoleRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	role, err := core.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	user, err := findUser(s.userRepo, id)
	if err != nil {
		return nil, err
	}
	record := user.Record()
	data := map[string]interface{}{
		"user_id": id,
		"role":    string(role),
	}

	if d := s.users.Check(core.OperationUpdate, p, record); !d.IsAllowed() {
		return nil, utils.DenialError(d, data)
	}
	if _, d := s.users.CheckFieldUpdates(p, record, []string{"role"}); !d.IsAllowed() {
		return nil, utils.DenialError(d, data)
	}
	if d := core.CheckRoleAssignment(p, role); !d.IsAllowed() {
		return nil, utils.DenialError(d, data)
	}
	// gỡ role được bảo vệ cũng chỉ root được làm
	if d := core.CheckRoleAssignment(p, user.Role); !d.IsAllowed() {
		return nil, utils.DenialError(d, data)
	}
	if !core.Dominates(p.RoleValue(), user.Role) {
		data["current_role"] = string(user.Role)
		return nil, utils.DenialError(core.Deny(core.ReasonInsufficientRole), data)
	}

	if user.Role == role {
		return user, nil
	}
	if err := s.userRepo.UpdateRole(id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewBusinessError(404, "Không tìm thấy người dùng").WithData(data)
		}
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi cập nhật role")
	}
	user.Role = role
	return user, nil
}

// Delete xóa user theo policy delete
func (s *UserService) Delete(p core.Principal, id string) error {
	user, err := findUser(s.userRepo, id)
	if err != nil {
		return err
	}
	if d := s.users.Check(core.OperationDelete, p, user.Record()); !d.IsAllowed() {
		return utils.DenialError(d, map[string]interface{}{"user_id": id})
	}
	// không tự xóa tài khoản đang dùng
	if user.ID == p.ID {
		return goerrorkit.NewBusinessError(400, "Không thể tự xóa tài khoản của mình").WithData(map[string]interface{}{
			"user_id": id,
		})
	}
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return goerrorkit.NewBusinessError(404, "Không tìm thấy người dùng").WithData(map[string]interface{}{
				"user_id": id,
			})
		}
		return goerrorkit.WrapWithMessage(err, "Lỗi khi xóa người dùng")
	}
	return nil
}
