package utility

import (
	"fmt"

	jwt "github.com/dgrijalva/jwt-go"
)

// JwtClaims là payload của token xác thực.
// RandomNumber đảm bảo hai lần login liên tiếp sinh token khác nhau.
type JwtClaims struct {
	UserID       string `json:"userId"`
	Time         string `json:"time"`
	RandomNumber string `json:"randomNumber"`
	jwt.StandardClaims
}

// CreateToken tạo JWT token với secret cho trước
func CreateToken(secret string, userID string, hexTime string, randomNumber string) (string, error) {
	claims := JwtClaims{
		UserID:       userID,
		Time:         hexTime,
		RandomNumber: randomNumber,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("không ký được token: %w", err)
	}
	return signed, nil
}

// ParseToken xác minh chữ ký và trả về claims của token
func ParseToken(secret string, tokenString string) (*JwtClaims, error) {
	claims := &JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("phương thức ký không được hỗ trợ: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token không hợp lệ")
	}
	return claims, nil
}
