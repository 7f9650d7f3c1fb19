package proposalsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "proposal_hub/internal/api/base/service"
	models "proposal_hub/internal/api/proposal/models"
	"proposal_hub/internal/common"
	"proposal_hub/internal/global"
	"proposal_hub/internal/logger"
)

// ReviewService quản lý các bản ghi review của admin trên proposal
type ReviewService struct {
	basesvc.BaseServiceMongo[models.Review]
}

// NewReviewService tạo mới ReviewService
func NewReviewService() (*ReviewService, error) {
	reviewCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Reviews)
	if !exist {
		return nil, fmt.Errorf("failed to get reviews collection: %v", common.ErrNotFound)
	}

	return &ReviewService{
		BaseServiceMongo: basesvc.NewBaseServiceMongo[models.Review](reviewCollection),
	}, nil
}

// FindLatestByProposal trả về review mới nhất của proposal.
// Review pending mồ côi (bước đánh dấu committed thất bại sau khi proposal
// đã đổi trạng thái) được đối soát tại đây: đánh dấu committed ngay khi đọc,
// nên proposal đã vào revision_requested không bao giờ kẹt không revise được.
// Không có review nào trả về ErrNoReviewFound.
func (s *ReviewService) FindLatestByProposal(ctx context.Context, proposalID primitive.ObjectID) (models.Review, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	review, err := s.FindOne(ctx, bson.M{"proposalId": proposalID}, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Review{}, common.ErrNoReviewFound
		}
		return models.Review{}, err
	}

	if review.State == models.ReviewStatePending {
		committed, err := s.UpdateById(ctx, review.ID, &basesvc.UpdateData{
			Set: map[string]interface{}{"state": models.ReviewStateCommitted},
		})
		if err != nil {
			// Đối soát thất bại: vẫn dùng review pending, lần đọc sau thử lại
			logger.GetErrorLogger().WithFields(logrus.Fields{
				"reviewId":   review.ID.Hex(),
				"proposalId": proposalID.Hex(),
				"error":      err.Error(),
			}).Error("Không đối soát được review pending khi đọc")
			return review, nil
		}
		return committed, nil
	}

	return review, nil
}

// FindByProposal trả về toàn bộ review committed của proposal, mới nhất trước
func (s *ReviewService) FindByProposal(ctx context.Context, proposalID primitive.ObjectID) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{
		"proposalId": proposalID,
		"state":      models.ReviewStateCommitted,
	}, opts)
}

// DeleteByProposal xóa mọi review của proposal (cascade khi xóa proposal)
func (s *ReviewService) DeleteByProposal(ctx context.Context, proposalID primitive.ObjectID) (int64, error) {
	return s.DeleteMany(ctx, bson.M{"proposalId": proposalID})
}
