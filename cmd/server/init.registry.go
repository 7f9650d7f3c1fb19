package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"proposal_hub/config"
	"proposal_hub/internal/global"
)

func InitRegistry() {
	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Proposals,
		global.MongoDB_ColNames.Reviews,
	}

	for _, name := range colNames {
		if err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		logrus.Infof("Collection %s registered successfully", name)
	}

	return nil
}
