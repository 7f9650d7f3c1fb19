// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các vai trò của người dùng trong hệ thống
const (
	RoleAdmin             = "admin"              // Quản trị viên, có quyền duyệt proposal
	RoleBusinessDeveloper = "business_developer" // Nhân viên phát triển kinh doanh, tạo và quản lý proposal của mình
)

// ValidRoles danh sách các vai trò hợp lệ
var ValidRoles = []string{RoleAdmin, RoleBusinessDeveloper}

// IsValidRole kiểm tra vai trò có hợp lệ không
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User định nghĩa mô hình người dùng.
// Token chứa token xác thực mới nhất của người dùng, được cập nhật mỗi lần login.
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Username  string             `json:"username" bson:"username" index:"unique"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Role      string             `json:"role" bson:"role"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	Token     string             `json:"-" bson:"token,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
