// Package router đăng ký các route thuộc domain proposal: vòng đời BD và duyệt của admin.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "proposal_hub/internal/api/auth/models"
	"proposal_hub/internal/api/middleware"
	proposalhdl "proposal_hub/internal/api/proposal/handler"
	apirouter "proposal_hub/internal/api/router"
)

// Register đăng ký tất cả route proposal (BD và admin) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerBDRoutes(v1); err != nil {
		return err
	}
	if err := registerAdminRoutes(v1); err != nil {
		return err
	}
	return nil
}

func registerBDRoutes(router fiber.Router) error {
	proposalHandler, err := proposalhdl.NewProposalHandler()
	if err != nil {
		return fmt.Errorf("failed to create proposal handler: %w", err)
	}

	bdMiddleware := middleware.AuthMiddleware(authmodels.RoleBusinessDeveloper)
	apirouter.RegisterRouteWithMiddleware(router, "/proposal", "POST", "/create", []fiber.Handler{bdMiddleware}, proposalHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(router, "/proposal", "GET", "/list", []fiber.Handler{bdMiddleware}, proposalHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(router, "/proposal", "GET", "/get/:id", []fiber.Handler{bdMiddleware}, proposalHandler.HandleGet)
	apirouter.RegisterRouteWithMiddleware(router, "/proposal", "PUT", "/edit/:id", []fiber.Handler{bdMiddleware}, proposalHandler.HandleEdit)
	apirouter.RegisterRouteWithMiddleware(router, "/proposal", "POST", "/submit/:id", []fiber.Handler{bdMiddleware}, proposalHandler.HandleSubmit)
	apirouter.RegisterRouteWithMiddleware(router, "/proposal", "POST", "/revise/:id", []fiber.Handler{bdMiddleware}, proposalHandler.HandleRevise)
	apirouter.RegisterRouteWithMiddleware(router, "/proposal", "DELETE", "/delete/:id", []fiber.Handler{bdMiddleware}, proposalHandler.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(router, "/proposal", "POST", "/duplicate/:id", []fiber.Handler{bdMiddleware}, proposalHandler.HandleDuplicate)
	apirouter.RegisterRouteWithMiddleware(router, "/proposal", "GET", "/reviews/:id", []fiber.Handler{bdMiddleware}, proposalHandler.HandleListReviews)
	return nil
}

func registerAdminRoutes(router fiber.Router) error {
	adminHandler, err := proposalhdl.NewAdminProposalHandler()
	if err != nil {
		return fmt.Errorf("failed to create admin proposal handler: %w", err)
	}

	adminMiddleware := middleware.AuthMiddleware(authmodels.RoleAdmin)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/proposal", "GET", "/list", []fiber.Handler{adminMiddleware}, adminHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/proposal", "GET", "/get/:id", []fiber.Handler{adminMiddleware}, adminHandler.HandleGet)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/proposal", "POST", "/start-review/:id", []fiber.Handler{adminMiddleware}, adminHandler.HandleStartReview)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/proposal", "POST", "/review/:id", []fiber.Handler{adminMiddleware}, adminHandler.HandleReview)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/proposal", "GET", "/reviews/:id", []fiber.Handler{adminMiddleware}, adminHandler.HandleListReviews)
	return nil
}
