package utils

import (
	"strings"
	"unicode"
)

// ToSnakeCase chuyển tên field JSON (camelCase) hoặc PascalCase sang snake_case cho tên cột
// Ví dụ: "userId" -> "user_id", "stripeCustomerId" -> "stripe_customer_id", "UserID" -> "user_id"
func ToSnakeCase(name string) string {
	if name == "" {
		return name
	}

	runes := []rune(name)
	var result strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				result.WriteByte('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}
