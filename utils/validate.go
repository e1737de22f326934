package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/muslewski/eventizer-sub001/config"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/techmaster-vietnam/goerrorkit"
)

// validate là validator dùng chung cho request body
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// tag `role` kiểm tra giá trị thuộc tập role đã khai báo
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return core.Role(fl.Field().String()).IsValid()
	})
	// Trả về tên JSON của field thay vì tên Go trong lỗi
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct kiểm tra struct theo tag `validate` và trả về goerrorkit ValidationError
// với map field → tag bị vi phạm
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return goerrorkit.WrapWithMessage(err, "Dữ liệu không hợp lệ")
	}
	fields := make(map[string]interface{}, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Param() != "" {
			fields[fe.Field()] = fe.Tag() + "=" + fe.Param()
		} else {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return goerrorkit.NewValidationError("Dữ liệu không hợp lệ", map[string]interface{}{
		"fields": fields,
	})
}

// ValidatePassword kiểm tra password theo các quy tắc được cấu hình
// Password hợp lệ phải:
// - Đạt độ dài tối thiểu (theo config)
// - Chứa chữ hoa (nếu RequireUppercase = true)
// - Chứa chữ thường (nếu RequireLowercase = true)
// - Chứa chữ số (nếu RequireDigit = true)
// - Chứa ký tự đặc biệt (nếu RequireSpecialChar = true)
func ValidatePassword(password string, cfg config.PasswordConfig) error {
	// Kiểm tra password rỗng
	if strings.TrimSpace(password) == "" {
		return goerrorkit.NewValidationError("Mật khẩu là bắt buộc", map[string]interface{}{
			"field": "password",
		})
	}

	// Kiểm tra độ dài tối thiểu
	if len(password) < cfg.MinLength {
		return goerrorkit.NewValidationError(fmt.Sprintf("Mật khẩu phải có ít nhất %d ký tự", cfg.MinLength), map[string]interface{}{
			"field":      "password",
			"min_length": cfg.MinLength,
		})
	}

	var hasUppercase, hasLowercase, hasDigit bool
	specialCharCount := 0

	// Định nghĩa ký tự đặc biệt
	specialChars := "!@#$%^&*()_+-=[]{}|;:,.<>?/~`"

	// Kiểm tra từng ký tự trong password
	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUppercase = true
		}
		if unicode.IsLower(char) {
			hasLowercase = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
		if strings.ContainsRune(specialChars, char) {
			specialCharCount++
		}
	}

	// Kiểm tra các yêu cầu
	var missing []string
	var errorData = make(map[string]interface{})

	if cfg.RequireUppercase && !hasUppercase {
		missing = append(missing, "chữ hoa")
		errorData["require_uppercase"] = true
	}

	if cfg.RequireLowercase && !hasLowercase {
		missing = append(missing, "chữ thường")
		errorData["require_lowercase"] = true
	}

	if cfg.RequireDigit && !hasDigit {
		missing = append(missing, "chữ số")
		errorData["require_digit"] = true
	}

	if cfg.RequireSpecialChar {
		if specialCharCount < cfg.MinSpecialChars {
			missing = append(missing, "ký tự đặc biệt")
			errorData["require_special_char"] = true
			errorData["min_special_chars"] = cfg.MinSpecialChars
			errorData["found_special_chars"] = specialCharCount
		}
	}

	// Nếu có lỗi, trả về thông báo lỗi
	if len(missing) > 0 {
		errorMsg := "Mật khẩu phải chứa ít nhất: " + strings.Join(missing, ", ")
		errorData["field"] = "password"
		errorData["min_length"] = cfg.MinLength
		return goerrorkit.NewValidationError(errorMsg, errorData)
	}

	return nil
}
