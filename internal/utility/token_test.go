// Package utility - Test tạo và xác minh JWT token.
package utility

import "testing"

func TestCreateToken_VaParseToken(t *testing.T) {
	token, err := CreateToken("secret", "64f000000000000000000001", "18f3a2b", "42")
	if err != nil {
		t.Fatalf("CreateToken trả về lỗi: %v", err)
	}
	if token == "" {
		t.Fatal("CreateToken trả về token rỗng")
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken trả về lỗi: %v", err)
	}
	if claims.UserID != "64f000000000000000000001" {
		t.Errorf("UserID = %s, muốn 64f000000000000000000001", claims.UserID)
	}
}

func TestParseToken_SaiSecret(t *testing.T) {
	token, err := CreateToken("secret-a", "user1", "t", "1")
	if err != nil {
		t.Fatalf("CreateToken trả về lỗi: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("ParseToken với secret sai phải trả về lỗi")
	}
}

func TestParseToken_TokenRac(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-jwt"); err == nil {
		t.Error("ParseToken với chuỗi rác phải trả về lỗi")
	}
}

func TestCreateToken_HaiLanKhacNhau(t *testing.T) {
	a, err := CreateToken("secret", "user1", "t", "1")
	if err != nil {
		t.Fatalf("CreateToken trả về lỗi: %v", err)
	}
	b, err := CreateToken("secret", "user1", "t", "2")
	if err != nil {
		t.Fatalf("CreateToken trả về lỗi: %v", err)
	}
	if a == b {
		t.Error("random number khác nhau phải sinh token khác nhau")
	}
}
