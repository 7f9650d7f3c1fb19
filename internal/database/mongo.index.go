package database

import (
	"context"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"proposal_hub/internal/logger"
)

// EnsureCollections tạo trước các collection nếu chưa tồn tại.
// MongoDB tự tạo collection khi ghi lần đầu, nhưng tạo trước giúp
// CreateIndexes chạy được ngay trong init.
func EnsureCollections(client *mongo.Client, dbName string, names []string) {
	ctx := context.TODO()
	db := client.Database(dbName)

	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("Không liệt kê được danh sách collection")
		return
	}

	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	for _, name := range names {
		if existingSet[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			logger.GetAppLogger().WithError(err).Warnf("Không tạo được collection %s", name)
		}
	}
}

// CreateIndexes tạo index cho collection dựa trên tag `index:` của model.
// Hỗ trợ các giá trị: "unique", "sparse", "-1" (giảm dần), "1" (tăng dần, mặc định).
// Ví dụ: Email string `bson:"email" index:"unique,sparse"`
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	var indexModels []mongo.IndexModel
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		indexTag := field.Tag.Get("index")
		if indexTag == "" {
			continue
		}

		bsonName := bsonFieldName(field)
		if bsonName == "" || bsonName == "_id" {
			continue
		}

		direction := 1
		indexOpts := options.Index()
		for _, part := range strings.Split(indexTag, ",") {
			switch strings.TrimSpace(part) {
			case "unique":
				indexOpts.SetUnique(true)
			case "sparse":
				indexOpts.SetSparse(true)
			case "-1":
				direction = -1
			case "1", "":
				// mặc định tăng dần
			}
		}

		indexModels = append(indexModels, mongo.IndexModel{
			Keys:    bson.D{{Key: bsonName, Value: direction}},
			Options: indexOpts,
		})
	}

	if len(indexModels) == 0 {
		return
	}

	_, err := collection.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warnf("Không tạo được index cho collection %s", collection.Name())
	}
}

// bsonFieldName lấy tên field trong MongoDB từ tag bson
func bsonFieldName(field reflect.StructField) string {
	bsonTag := field.Tag.Get("bson")
	if bsonTag == "" || bsonTag == "-" {
		return ""
	}
	name := strings.Split(bsonTag, ",")[0]
	return name
}
