// Package global giữ các biến dùng chung toàn ứng dụng:
// validator, phiên MongoDB, cấu hình server và registry collections.
package global

import (
	"proposal_hub/config"
	"proposal_hub/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users     string // Tên collection cho người dùng
	Proposals string // Tên collection cho proposal
	Reviews   string // Tên collection cho đánh giá của admin
}

// Các biến toàn cục
var Validate *validator.Validate                                              // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                             // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                                // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)    // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
