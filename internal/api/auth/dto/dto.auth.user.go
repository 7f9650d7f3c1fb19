package authdto

// UserRegisterInput đầu vào đăng ký người dùng. Người đăng ký luôn nhận vai trò
// business_developer; tài khoản admin chỉ được tạo qua seed hoặc admin khác.
type UserRegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=50,no_xss"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
}

// UserLoginInput đầu vào đăng nhập người dùng.
type UserLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserChangePasswordInput đầu vào đổi mật khẩu.
type UserChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// UserCreateInput đầu vào tạo người dùng BD bởi admin.
// Mật khẩu được sinh ngẫu nhiên và chỉ trả về đúng một lần trong response.
type UserCreateInput struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=50,no_xss"`
	Email    string `json:"email" validate:"required,email"`
}

// UserSetActiveInput đầu vào kích hoạt / vô hiệu hóa tài khoản.
type UserSetActiveInput struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// UserListQuery tham số phân trang danh sách người dùng.
type UserListQuery struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}

// LoginResult kết quả đăng nhập trả về cho client.
type LoginResult struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// UserCreatedResult kết quả tạo người dùng BD, kèm mật khẩu một lần.
type UserCreatedResult struct {
	User              interface{} `json:"user"`
	GeneratedPassword string      `json:"generatedPassword"`
}
