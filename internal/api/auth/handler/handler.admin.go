// Package authhdl - handler admin (tạo tài khoản BD, kích hoạt / vô hiệu hóa, danh sách người dùng).
package authhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	authdto "proposal_hub/internal/api/auth/dto"
	authsvc "proposal_hub/internal/api/auth/service"
	basehdl "proposal_hub/internal/api/base/handler"
)

// AdminHandler xử lý các route quản trị người dùng
type AdminHandler struct {
	userService *authsvc.UserService
}

// NewAdminHandler tạo một instance mới của AdminHandler
func NewAdminHandler() (*AdminHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &AdminHandler{userService: userService}, nil
}

// HandleCreateBDUser tạo tài khoản business_developer với mật khẩu sinh ngẫu nhiên.
// Mật khẩu chỉ xuất hiện đúng một lần trong response này.
func (h *AdminHandler) HandleCreateBDUser(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input authdto.UserCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.userService.CreateBDUser(c.Context(), &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleCreatedResponse(c, result)
		return nil
	})
}

// HandleSetActive kích hoạt hoặc vô hiệu hóa một tài khoản
func (h *AdminHandler) HandleSetActive(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input authdto.UserSetActiveInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.SetActive(c.Context(), userID, *input.IsActive)
		basehdl.HandleResponse(c, user, err)
		return nil
	})
}

// HandleListUsers trả về danh sách người dùng có phân trang
func (h *AdminHandler) HandleListUsers(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		if err != nil {
			page = 1
		}
		limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
		if err != nil {
			limit = 10
		}
		result, err := h.userService.ListUsers(c.Context(), page, limit)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}
