package utils

import (
	"crypto/rand"
)

const (
	// IDLength là độ dài của ID (12 ký tự)
	IDLength = 12
	// IDCharset là bộ ký tự được sử dụng để tạo ID (a-zA-Z0-9)
	IDCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// maxUnbiased là byte lớn nhất chia hết cho len(IDCharset); byte >= giá trị này bị bỏ
const maxUnbiased = 256 - 256%len(IDCharset)

// GenerateID tạo ID ngẫu nhiên 12 ký tự từ a-zA-Z0-9 (crypto/rand, không lệch phân phối)
func GenerateID() (string, error) {
	result := make([]byte, 0, IDLength)
	buf := make([]byte, IDLength*2)
	for len(result) < IDLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			result = append(result, IDCharset[int(b)%len(IDCharset)])
			if len(result) == IDLength {
				break
			}
		}
	}
	return string(result), nil
}
