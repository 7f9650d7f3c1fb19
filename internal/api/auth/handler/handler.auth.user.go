package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authdto "proposal_hub/internal/api/auth/dto"
	authsvc "proposal_hub/internal/api/auth/service"
	basehdl "proposal_hub/internal/api/base/handler"
)

// UserHandler xử lý các request xác thực và quản lý người dùng
type UserHandler struct {
	userService *authsvc.UserService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &UserHandler{userService: userService}, nil
}

// HandleRegister xử lý đăng ký người dùng mới (vai trò business_developer)
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input authdto.UserRegisterInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.Register(c.Context(), &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleCreatedResponse(c, user)
		return nil
	})
}

// HandleLogin xử lý đăng nhập và cấp JWT token
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input authdto.UserLoginInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.userService.Login(c.Context(), &input)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleLogout xử lý đăng xuất người dùng (thu hồi token hiện tại)
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, err := basehdl.GetActorID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		err = h.userService.Logout(c.Context(), actorID)
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleGetProfile lấy thông tin profile của người dùng đã đăng nhập
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, err := basehdl.GetActorID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.FindOneById(c.Context(), actorID)
		basehdl.HandleResponse(c, user, err)
		return nil
	})
}

// HandleChangePassword đổi mật khẩu của người dùng đã đăng nhập
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, err := basehdl.GetActorID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input authdto.UserChangePasswordInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		err = h.userService.ChangePassword(c.Context(), actorID, &input)
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}
