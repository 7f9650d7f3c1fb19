// Package utility - Test băm mật khẩu và sinh mật khẩu ngẫu nhiên.
package utility

import "testing"

func TestHashPassword_VaCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Secret@123")
	if err != nil {
		t.Fatalf("HashPassword trả về lỗi: %v", err)
	}
	if hashed == "Secret@123" {
		t.Error("hash không được trùng với mật khẩu thô")
	}
	if !CheckPassword(hashed, "Secret@123") {
		t.Error("CheckPassword phải đúng với mật khẩu gốc")
	}
	if CheckPassword(hashed, "sai-mat-khau") {
		t.Error("CheckPassword phải sai với mật khẩu khác")
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	password, err := GenerateRandomPassword(12)
	if err != nil {
		t.Fatalf("GenerateRandomPassword trả về lỗi: %v", err)
	}
	if len(password) != 12 {
		t.Errorf("độ dài mật khẩu = %d, muốn 12", len(password))
	}

	other, err := GenerateRandomPassword(12)
	if err != nil {
		t.Fatalf("GenerateRandomPassword trả về lỗi: %v", err)
	}
	if password == other {
		t.Error("hai lần sinh mật khẩu không được trùng nhau")
	}
}

func TestGenerateRandomPassword_DoDaiKhongHopLe(t *testing.T) {
	password, err := GenerateRandomPassword(0)
	if err != nil {
		t.Fatalf("GenerateRandomPassword trả về lỗi: %v", err)
	}
	if len(password) != 12 {
		t.Errorf("độ dài không hợp lệ phải dùng mặc định 12, có %d", len(password))
	}
}
