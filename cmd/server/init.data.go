package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	authmodels "proposal_hub/internal/api/auth/models"
	authsvc "proposal_hub/internal/api/auth/service"
	"proposal_hub/internal/global"
	"proposal_hub/internal/logger"
	"proposal_hub/internal/utility"
)

// InitDefaultData seed tài khoản admin đầu tiên từ cấu hình.
// Bỏ qua nếu hệ thống đã có admin hoặc thiếu ADMIN_PASSWORD.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	ctx := context.TODO()
	count, err := userService.CountDocuments(ctx, bson.M{"role": authmodels.RoleAdmin})
	if err != nil {
		log.Fatalf("Failed to count admin users: %v", err)
	}
	if count > 0 {
		log.Info("✅ [INIT] Admin account already exists, skipping seed")
		return
	}

	cfg := global.MongoDB_ServerConfig
	if cfg.AdminPassword == "" {
		log.Warn("⚠️ [INIT] ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	hashed, err := utility.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := authmodels.User{
		Name:     "Administrator",
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: hashed,
		Role:     authmodels.RoleAdmin,
		IsActive: true,
	}
	created, err := userService.InsertOne(ctx, admin)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.Infof("✅ [INIT] Seeded admin user %s (ID: %s)", created.Username, created.ID.Hex())
}
