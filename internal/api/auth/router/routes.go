// Package router đăng ký các route thuộc domain auth: đăng ký, đăng nhập, profile, quản trị người dùng.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "proposal_hub/internal/api/auth/handler"
	authmodels "proposal_hub/internal/api/auth/models"
	basehdl "proposal_hub/internal/api/base/handler"
	"proposal_hub/internal/api/middleware"
	apirouter "proposal_hub/internal/api/router"
)

// Register đăng ký tất cả route auth (system, auth, admin) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	if err := registerAdminRoutes(v1); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	router.Post("/auth/register", userHandler.HandleRegister)
	router.Post("/auth/login", userHandler.HandleLogin)

	authOnlyMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/logout", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/password", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleChangePassword)
	return nil
}

func registerAdminRoutes(router fiber.Router) error {
	adminHandler, err := authhdl.NewAdminHandler()
	if err != nil {
		return fmt.Errorf("failed to create admin handler: %w", err)
	}
	adminMiddleware := middleware.AuthMiddleware(authmodels.RoleAdmin)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/create", []fiber.Handler{adminMiddleware}, adminHandler.HandleCreateBDUser)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "PUT", "/set-active/:id", []fiber.Handler{adminMiddleware}, adminHandler.HandleSetActive)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "GET", "/list", []fiber.Handler{adminMiddleware}, adminHandler.HandleListUsers)
	return nil
}
