// Package router đăng ký các route xuất tài liệu và template của proposal.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "proposal_hub/internal/api/auth/models"
	dochdl "proposal_hub/internal/api/document/handler"
	"proposal_hub/internal/api/middleware"
	apirouter "proposal_hub/internal/api/router"
)

// Register đăng ký các route document lên v1.
// Preview và đọc template mở cho mọi user đã đăng nhập (BD bị giới hạn theo
// quyền sở hữu trong service), download và sửa template chỉ dành cho BD.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	documentHandler, err := dochdl.NewDocumentHandler()
	if err != nil {
		return fmt.Errorf("failed to create document handler: %w", err)
	}

	authedMiddleware := middleware.AuthMiddleware()
	bdMiddleware := middleware.AuthMiddleware(authmodels.RoleBusinessDeveloper)

	apirouter.RegisterRouteWithMiddleware(v1, "/document", "GET", "/preview/word/:id", []fiber.Handler{authedMiddleware}, documentHandler.HandlePreviewWord)
	apirouter.RegisterRouteWithMiddleware(v1, "/document", "GET", "/preview/pdf/:id", []fiber.Handler{authedMiddleware}, documentHandler.HandlePreviewPDF)
	apirouter.RegisterRouteWithMiddleware(v1, "/document", "GET", "/download/word/:id", []fiber.Handler{bdMiddleware}, documentHandler.HandleDownloadWord)
	apirouter.RegisterRouteWithMiddleware(v1, "/document", "GET", "/download/pdf/:id", []fiber.Handler{bdMiddleware}, documentHandler.HandleDownloadPDF)
	apirouter.RegisterRouteWithMiddleware(v1, "/document", "GET", "/template/:id", []fiber.Handler{authedMiddleware}, documentHandler.HandleGetTemplate)
	apirouter.RegisterRouteWithMiddleware(v1, "/document", "PUT", "/template/:id", []fiber.Handler{bdMiddleware}, documentHandler.HandlePutTemplate)
	apirouter.RegisterRouteWithMiddleware(v1, "/document", "GET", "/templates/default", []fiber.Handler{authedMiddleware}, documentHandler.HandleDefaultTemplate)

	return nil
}
