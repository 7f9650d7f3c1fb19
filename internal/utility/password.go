package utility

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// passwordCharset là tập ký tự dùng để sinh mật khẩu ngẫu nhiên
const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// HashPassword băm mật khẩu bằng bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword so sánh mật khẩu thô với hash đã lưu
func CheckPassword(hashedPassword string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// GenerateRandomPassword sinh mật khẩu ngẫu nhiên với độ dài cho trước,
// dùng crypto/rand. Mật khẩu này chỉ trả về cho admin đúng một lần khi tạo tài khoản.
func GenerateRandomPassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}
	result := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = passwordCharset[n.Int64()]
	}
	return string(result), nil
}
