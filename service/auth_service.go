package service

import (
	"errors"

	"github.com/muslewski/eventizer-sub001/config"
	"github.com/muslewski/eventizer-sub001/contracts"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/models"
	"github.com/muslewski/eventizer-sub001/utils"
	"github.com/techmaster-vietnam/goerrorkit"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo contracts.UserRepositoryInterface
	users    core.CollectionAccess
	config   *config.Config
}

// NewAuthService creates a new auth service.
// users là policy của collection users (dùng cho create và guard gán role).
func NewAuthService(userRepo contracts.UserRepositoryInterface, users core.CollectionAccess, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		users:    users,
		config:   cfg,
	}
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents login response
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterRequest represents registration request.
// Role rỗng = client.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"max=255"`
	Role     string `json:"role" validate:"omitempty,role"`
}

// Login authenticates a user and returns a JWT token carrying the user's role
func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewAuthError(401, "Email hoặc mật khẩu không đúng")
		}
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi đăng nhập")
	}

	if !user.IsActive {
		return nil, goerrorkit.NewAuthError(403, "Tài khoản đã bị vô hiệu hóa").WithData(map[string]interface{}{
			"user_id": user.ID,
		})
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, goerrorkit.NewAuthError(401, "Email hoặc mật khẩu không đúng")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.config.JWT.Secret, s.config.JWT.Expiration)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi tạo token")
	}

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

// Register creates a new user account.
// actor là người gửi request: khách tự đăng ký hoặc admin tạo tài khoản hộ.
// Role được bảo vệ chỉ được gán khi actor là root.
func (s *AuthService) Register(actor core.Principal, req RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(req.Password, s.config.Password); err != nil {
		return nil, err
	}

	if d := s.users.Check(core.OperationCreate, actor, nil); !d.IsAllowed() {
		return nil, utils.DenialError(d, nil)
	}

	role := core.RoleClient
	if req.Role != "" {
		parsed, err := core.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}
	if d := core.CheckRoleAssignment(actor, role); !d.IsAllowed() {
		return nil, utils.DenialError(d, map[string]interface{}{
			"role": string(role),
		})
	}

	// Check if email already exists
	_, err := s.userRepo.GetByEmail(req.Email)
	if err == nil {
		return nil, goerrorkit.NewBusinessError(409, "Email đã tồn tại").WithData(map[string]interface{}{
			"email": req.Email,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi kiểm tra email")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi hash mật khẩu")
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashedPassword,
		FullName: req.FullName,
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi tạo tài khoản")
	}

	return user, nil
}

// Me trả về user của principal hiện tại
func (s *AuthService) Me(p core.Principal) (*models.User, error) {
	if !p.IsAuthenticated() {
		return nil, utils.DenialError(core.Deny(core.ReasonUnauthenticated), nil)
	}
	return findUser(s.userRepo, p.ID)
}

// ChangePassword changes the caller's password
func (s *AuthService) ChangePassword(p core.Principal, oldPassword, newPassword string) error {
	user, err := s.Me(p)
	if err != nil {
		return err
	}
	if err := utils.ValidatePassword(newPassword, s.config.Password); err != nil {
		return err
	}

	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		return goerrorkit.NewAuthError(401, "Mật khẩu cũ không đúng")
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi hash mật khẩu")
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi cập nhật mật khẩu")
	}
	return nil
}

// findUser lấy user theo id, map not found thành lỗi 404
func findUser(repo contracts.UserRepositoryInterface, id string) (*models.User, error) {
	user, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewBusinessError(404, "Không tìm thấy người dùng").WithData(map[string]interface{}{
				"user_id": id,
			})
		}
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi lấy thông tin người dùng")
	}
	return user, nil
}
