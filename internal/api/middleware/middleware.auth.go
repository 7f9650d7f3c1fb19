package middleware

import (
	"context"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	authmodels "proposal_hub/internal/api/auth/models"
	authsvc "proposal_hub/internal/api/auth/service"
	"proposal_hub/internal/common"
	"proposal_hub/internal/global"
	"proposal_hub/internal/logger"
	"proposal_hub/internal/utility"
)

// AuthManager quản lý xác thực và phân quyền người dùng
type AuthManager struct {
	UserCRUD *authsvc.UserService
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		userService, err := authsvc.NewUserService()
		if err != nil {
			panic(err)
		}
		authManagerInstance = &AuthManager{UserCRUD: userService}
	})
	return authManagerInstance
}

// AuthMiddleware middleware xác thực cho Fiber.
// Xác minh chữ ký JWT, tra cứu user theo token đã lưu, chặn tài khoản bị vô hiệu hóa
// và kiểm tra vai trò. Không truyền role nào nghĩa là chỉ cần đăng nhập.
func AuthMiddleware(requiredRoles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		authManager := GetAuthManager()

		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		// Xác minh chữ ký trước khi chạm vào database
		claims, err := utility.ParseToken(global.MongoDB_ServerConfig.JwtSecret, token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token signature verification failed")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Tra cứu user theo token mới nhất. Token cũ (đã login lại, logout
		// hoặc bị thu hồi) sẽ không còn khớp và bị từ chối.
		user, err := authManager.UserCRUD.FindOne(context.Background(), bson.M{
			"_id":   utility.String2ObjectID(claims.UserID),
			"token": token,
		}, nil)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra tài khoản còn hoạt động không
		if !user.IsActive {
			HandleErrorResponse(c, common.ErrAccountInactive)
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)
		c.Locals("user_role", user.Role)

		// Nếu không yêu cầu role cụ thể, chỉ cần xác thực là đủ
		if len(requiredRoles) == 0 {
			return c.Next()
		}

		// Kiểm tra vai trò
		for _, role := range requiredRoles {
			if user.Role == role {
				return c.Next()
			}
		}

		logger.GetAppLogger().WithFields(logrus.Fields{
			"user_id":        user.ID.Hex(),
			"user_role":      user.Role,
			"required_roles": requiredRoles,
			"path":           c.Path(),
		}).Warn("❌ [AUTH] User role is not allowed for this route")
		HandleErrorResponse(c, common.ErrForbiddenRole)
		return nil
	}
}

// ActorFromContext lấy user đã xác thực từ context, trả về false nếu chưa đăng nhập
func ActorFromContext(c fiber.Ctx) (authmodels.User, bool) {
	raw := c.Locals("user")
	if raw == nil {
		return authmodels.User{}, false
	}
	user, ok := raw.(authmodels.User)
	return user, ok
}
