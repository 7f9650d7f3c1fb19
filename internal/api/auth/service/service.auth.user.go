// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	authdto "proposal_hub/internal/api/auth/dto"
	models "proposal_hub/internal/api/auth/models"
	basemodels "proposal_hub/internal/api/base/models"
	basesvc "proposal_hub/internal/api/base/service"
	"proposal_hub/internal/common"
	"proposal_hub/internal/global"
	"proposal_hub/internal/utility"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	basesvc.BaseServiceMongo[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongo: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// checkDuplicate kiểm tra username/email đã tồn tại chưa
func (s *UserService) checkDuplicate(ctx context.Context, username string, email string) error {
	exists, err := s.DocumentExists(ctx, bson.M{"$or": []bson.M{
		{"username": username},
		{"email": email},
	}})
	if err != nil {
		return err
	}
	if exists {
		return common.NewError(
			common.ErrCodeDatabaseQuery,
			"Username hoặc email đã được sử dụng",
			common.StatusConflict,
			nil,
		)
	}
	return nil
}

// Register đăng ký người dùng mới với vai trò business_developer
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (models.User, error) {
	var zero models.User

	if err := s.checkDuplicate(ctx, input.Username, input.Email); err != nil {
		return zero, err
	}

	hashed, err := utility.HashPassword(input.Password)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, "Không thể băm mật khẩu", common.StatusInternalServerError, err)
	}

	user := models.User{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Role:     models.RoleBusinessDeveloper,
		IsActive: true,
	}

	return s.InsertOne(ctx, user)
}

// Login xác thực thông tin đăng nhập và cấp JWT token mới.
// Token mới nhất được lưu lại trên user để middleware tra cứu.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*authdto.LoginResult, error) {
	user, err := s.FindOne(ctx, bson.M{"username": input.Username}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utility.CheckPassword(user.Password, input.Password) {
		return nil, common.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, common.ErrAccountInactive
	}

	// RandomNumber đảm bảo hai lần login liên tiếp sinh token khác nhau
	hexTime := strconv.FormatInt(time.Now().UnixMilli(), 16)
	randomNumber := strconv.Itoa(rand.Intn(1000000))
	token, err := utility.CreateToken(global.MongoDB_ServerConfig.JwtSecret, user.ID.Hex(), hexTime, randomNumber)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể tạo token", common.StatusInternalServerError, err)
	}

	updated, err := s.UpdateById(ctx, user.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"token": token},
	})
	if err != nil {
		return nil, err
	}

	return &authdto.LoginResult{Token: token, User: updated}, nil
}

// Logout xóa token hiện tại của người dùng
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Unset: map[string]interface{}{"token": ""},
	})
	return err
}

// ChangePassword đổi mật khẩu của người dùng, yêu cầu mật khẩu cũ đúng.
// Token hiện tại bị thu hồi để buộc đăng nhập lại.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.UserChangePasswordInput) error {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if !utility.CheckPassword(user.Password, input.OldPassword) {
		return common.NewError(common.ErrCodeAuthCredentials, "Mật khẩu cũ không đúng", common.StatusUnauthorized, nil)
	}

	hashed, err := utility.HashPassword(input.NewPassword)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không thể băm mật khẩu", common.StatusInternalServerError, err)
	}

	_, err = s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set:   map[string]interface{}{"password": hashed},
		Unset: map[string]interface{}{"token": ""},
	})
	return err
}

// CreateBDUser tạo tài khoản business_developer với mật khẩu sinh ngẫu nhiên.
// Mật khẩu thô chỉ trả về đúng một lần trong kết quả này.
func (s *UserService) CreateBDUser(ctx context.Context, input *authdto.UserCreateInput) (*authdto.UserCreatedResult, error) {
	if err := s.checkDuplicate(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	rawPassword, err := utility.GenerateRandomPassword(12)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể sinh mật khẩu", common.StatusInternalServerError, err)
	}

	hashed, err := utility.HashPassword(rawPassword)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể băm mật khẩu", common.StatusInternalServerError, err)
	}

	user := models.User{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Role:     models.RoleBusinessDeveloper,
		IsActive: true,
	}

	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	return &authdto.UserCreatedResult{User: created, GeneratedPassword: rawPassword}, nil
}

// SetActive kích hoạt hoặc vô hiệu hóa tài khoản. Vô hiệu hóa thu hồi token hiện tại.
func (s *UserService) SetActive(ctx context.Context, userID primitive.ObjectID, isActive bool) (models.User, error) {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"isActive": isActive},
	}
	if !isActive {
		update.Unset = map[string]interface{}{"token": ""}
	}
	return s.UpdateById(ctx, userID, update)
}

// ListUsers trả về danh sách người dùng có phân trang, mới nhất trước
func (s *UserService) ListUsers(ctx context.Context, page int64, limit int64) (*basemodels.PaginateResult[models.User], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = global.MongoDB_ServerConfig.PaginationDefaultLimit
	}
	if limit > global.MongoDB_ServerConfig.PaginationMaxLimit {
		limit = global.MongoDB_ServerConfig.PaginationMaxLimit
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, bson.D{}, page, limit, opts)
}
