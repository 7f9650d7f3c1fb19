package proposalsvc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "proposal_hub/internal/api/base/models"
	basesvc "proposal_hub/internal/api/base/service"
	proposaldto "proposal_hub/internal/api/proposal/dto"
	models "proposal_hub/internal/api/proposal/models"
	"proposal_hub/internal/common"
	"proposal_hub/internal/contentgen"
	"proposal_hub/internal/global"
	"proposal_hub/internal/logger"
)

// ProposalService chứa nghiệp vụ vòng đời proposal.
// Store được giữ qua interface BaseServiceMongo để test nghiệp vụ thay được
// bằng store trong bộ nhớ.
type ProposalService struct {
	basesvc.BaseServiceMongo[models.Proposal]
	reviewService *ReviewService
	provider      contentgen.Provider
}

// NewProposalService tạo mới ProposalService với provider theo cấu hình server
func NewProposalService() (*ProposalService, error) {
	return NewProposalServiceWithProvider(contentgen.NewProviderFromConfig(global.MongoDB_ServerConfig))
}

// NewProposalServiceWithProvider tạo ProposalService với provider tùy ý
// (nil nghĩa là luôn dùng fallback)
func NewProposalServiceWithProvider(provider contentgen.Provider) (*ProposalService, error) {
	proposalCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Proposals)
	if !exist {
		return nil, fmt.Errorf("failed to get proposals collection: %v", common.ErrNotFound)
	}
	reviewService, err := NewReviewService()
	if err != nil {
		return nil, err
	}

	return &ProposalService{
		BaseServiceMongo: basesvc.NewBaseServiceMongo[models.Proposal](proposalCollection),
		reviewService:    reviewService,
		provider:         provider,
	}, nil
}

// ReviewService trả về service review dùng chung
func (s *ProposalService) ReviewService() *ReviewService {
	return s.reviewService
}

// generateContent sinh cây nội dung, nuốt lỗi provider và dùng fallback
func (s *ProposalService) generateContent(ctx context.Context, projectDescription string) models.Content {
	if s.provider != nil {
		content, err := s.provider.Generate(ctx, projectDescription)
		if err == nil {
			return content
		}
		logger.GetAppLogger().WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Provider sinh nội dung thất bại, dùng fallback")
	}
	return contentgen.FallbackTemplate(projectDescription)
}

// regenerateContent sinh lại cây nội dung, nuốt lỗi provider và dùng fallback
func (s *ProposalService) regenerateContent(ctx context.Context, current models.Content, adminFeedback string, bdFeedback string) models.Content {
	if s.provider != nil {
		content, err := s.provider.Regenerate(ctx, current, adminFeedback, bdFeedback)
		if err == nil {
			return content
		}
		logger.GetAppLogger().WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Provider sinh lại nội dung thất bại, dùng fallback")
	}
	return contentgen.FallbackRegenerate(current, adminFeedback, bdFeedback)
}

// findOwned tìm proposal theo id VÀ ownerId trong cùng một filter.
// Proposal của người khác trả về ErrNotFound y như proposal không tồn tại,
// BD không bao giờ biết được proposal đó có tồn tại hay không.
func (s *ProposalService) findOwned(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) (models.Proposal, error) {
	return s.FindOne(ctx, bson.M{"_id": id, "ownerId": ownerID}, nil)
}

// GetForOwner trả về proposal thuộc sở hữu của BD
func (s *ProposalService) GetForOwner(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) (models.Proposal, error) {
	return s.findOwned(ctx, id, ownerID)
}

// Create tạo proposal mới ở trạng thái draft với nội dung được sinh sẵn
func (s *ProposalService) Create(ctx context.Context, ownerID primitive.ObjectID, input *proposaldto.ProposalCreateInput) (models.Proposal, error) {
	content := s.generateContent(ctx, input.ProjectDescription)

	proposal := models.Proposal{
		Title:              input.Title,
		ProjectDescription: input.ProjectDescription,
		Content:            content,
		Status:             models.StatusDraft,
		CurrentVersion:     1,
		OwnerID:            ownerID,
	}

	return s.InsertOne(ctx, proposal)
}

// Edit chỉnh sửa proposal, chỉ cho phép ở trạng thái draft hoặc revision_requested.
// Trường nil trong input giữ nguyên giá trị hiện tại.
func (s *ProposalService) Edit(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID, input *proposaldto.ProposalEditInput) (models.Proposal, error) {
	var zero models.Proposal

	proposal, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return zero, err
	}
	if !CanEdit(proposal.Status) {
		return zero, ErrTransition("chỉnh sửa", proposal.Status)
	}

	set := map[string]interface{}{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return zero, common.NewError(common.ErrCodeValidationInput, "Tiêu đề không được để trống", common.StatusBadRequest, nil)
		}
		set["title"] = *input.Title
	}
	if input.ProjectDescription != nil {
		if strings.TrimSpace(*input.ProjectDescription) == "" {
			return zero, common.NewError(common.ErrCodeValidationInput, "Mô tả dự án không được để trống", common.StatusBadRequest, nil)
		}
		set["projectDescription"] = *input.ProjectDescription
	}
	if input.Content != nil {
		set["content"] = *input.Content
	}
	if len(set) == 0 {
		return proposal, nil
	}

	return s.UpdateOne(ctx, bson.M{"_id": id, "ownerId": ownerID}, &basesvc.UpdateData{Set: set}, nil)
}

// Submit gửi proposal đi duyệt. Nội dung rỗng không được gửi.
func (s *ProposalService) Submit(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) (models.Proposal, error) {
	var zero models.Proposal

	proposal, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return zero, err
	}
	if !CanSubmit(proposal.Status) {
		return zero, ErrTransition("gửi duyệt", proposal.Status)
	}
	if proposal.Content.IsEmpty() {
		return zero, common.NewError(common.ErrCodeValidationInput, "Không thể gửi duyệt proposal có nội dung rỗng", common.StatusBadRequest, nil)
	}

	return s.UpdateOne(ctx, bson.M{"_id": id, "ownerId": ownerID}, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": models.StatusSubmitted},
	}, nil)
}

// StartReview admin nhận proposal vào xem xét (submitted → under_review)
func (s *ProposalService) StartReview(ctx context.Context, id primitive.ObjectID) (models.Proposal, error) {
	var zero models.Proposal

	proposal, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if !CanStartReview(proposal.Status) {
		return zero, ErrTransition("nhận xem xét", proposal.Status)
	}

	return s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": models.StatusUnderReview},
	})
}

// Review admin ra quyết định trên proposal. Review và cập nhật trạng thái
// proposal là một đơn vị logic: review ghi pending trước, chỉ committed sau
// khi proposal đã đổi trạng thái; nếu cập nhật proposal thất bại, review
// pending bị xóa bù.
func (s *ProposalService) Review(ctx context.Context, id primitive.ObjectID, reviewerID primitive.ObjectID, input *proposaldto.ReviewInput) (models.Review, error) {
	var zero models.Review

	proposal, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if !CanReview(proposal.Status) {
		return zero, ErrTransition("duyệt", proposal.Status)
	}

	targetStatus, err := DecisionTargetStatus(input.Decision)
	if err != nil {
		return zero, err
	}

	review := models.Review{
		ProposalID:      proposal.ID,
		ReviewerID:      reviewerID,
		Decision:        input.Decision,
		Comments:        input.Comments,
		Recommendations: input.Recommendations,
		State:           models.ReviewStatePending,
	}

	created, err := s.reviewService.InsertOne(ctx, review)
	if err != nil {
		return zero, err
	}

	_, err = s.UpdateById(ctx, proposal.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": targetStatus},
	})
	if err != nil {
		// Bước cập nhật proposal thất bại: xóa bù review pending
		if delErr := s.reviewService.DeleteById(ctx, created.ID); delErr != nil {
			logger.GetErrorLogger().WithFields(logrus.Fields{
				"reviewId":   created.ID.Hex(),
				"proposalId": proposal.ID.Hex(),
				"error":      delErr.Error(),
			}).Error("Không xóa bù được review pending sau khi cập nhật proposal thất bại")
		}
		return zero, err
	}

	committed, err := s.reviewService.UpdateById(ctx, created.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"state": models.ReviewStateCommitted},
	})
	if err != nil {
		// Proposal đã đổi trạng thái thành công, review vẫn còn ở pending.
		// Ghi log để đối soát, không làm hỏng kết quả của thao tác.
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"reviewId":   created.ID.Hex(),
			"proposalId": proposal.ID.Hex(),
			"error":      err.Error(),
		}).Error("Không đánh dấu committed được cho review sau khi proposal đã cập nhật")
		return created, nil
	}

	return committed, nil
}

// Revise BD phản hồi review và sinh lại nội dung. Yêu cầu đã có review;
// bdResponse được ghi lên review mới nhất, nội dung thay bằng bản sinh lại,
// version tăng 1 và proposal quay về draft.
func (s *ProposalService) Revise(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID, input *proposaldto.ReviseInput) (models.Proposal, error) {
	var zero models.Proposal

	proposal, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return zero, err
	}
	if !CanRevise(proposal.Status) {
		return zero, ErrTransition("revise", proposal.Status)
	}

	latestReview, err := s.reviewService.FindLatestByProposal(ctx, proposal.ID)
	if err != nil {
		return zero, err
	}

	if _, err := s.reviewService.UpdateById(ctx, latestReview.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"bdResponse": input.BDResponse},
	}); err != nil {
		return zero, err
	}

	newContent := s.regenerateContent(ctx, proposal.Content, latestReview.Recommendations, input.BDResponse)

	updated, err := s.UpdateOne(ctx, bson.M{"_id": id, "ownerId": ownerID}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"content":        newContent,
			"currentVersion": proposal.CurrentVersion + 1,
			"status":         models.StatusDraft,
		},
	}, nil)
	if err != nil {
		// Bước cập nhật proposal thất bại: trả bdResponse của review về giá trị cũ
		restore := &basesvc.UpdateData{}
		if latestReview.BDResponse == "" {
			restore.Unset = map[string]interface{}{"bdResponse": ""}
		} else {
			restore.Set = map[string]interface{}{"bdResponse": latestReview.BDResponse}
		}
		if _, compErr := s.reviewService.UpdateById(ctx, latestReview.ID, restore); compErr != nil {
			logger.GetErrorLogger().WithFields(logrus.Fields{
				"reviewId":   latestReview.ID.Hex(),
				"proposalId": proposal.ID.Hex(),
				"error":      compErr.Error(),
			}).Error("Không trả lại được bdResponse sau khi cập nhật proposal thất bại")
		}
		return zero, err
	}

	return updated, nil
}

// Delete xóa proposal ở trạng thái draft kèm toàn bộ review của nó
func (s *ProposalService) Delete(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error {
	proposal, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !CanDelete(proposal.Status) {
		return ErrTransition("xóa", proposal.Status)
	}

	if err := s.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID}); err != nil {
		return err
	}

	if _, err := s.reviewService.DeleteByProposal(ctx, proposal.ID); err != nil {
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"proposalId": proposal.ID.Hex(),
			"error":      err.Error(),
		}).Error("Không xóa cascade được review của proposal đã xóa")
	}

	return nil
}

// Duplicate nhân bản proposal của BD thành bản nháp mới, độc lập hoàn toàn
func (s *ProposalService) Duplicate(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) (models.Proposal, error) {
	var zero models.Proposal

	source, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return zero, err
	}

	clone := models.Proposal{
		Title:              "Copy of " + source.Title,
		ProjectDescription: source.ProjectDescription,
		Content:            source.Content.DeepCopy(),
		Status:             models.StatusDraft,
		CurrentVersion:     1,
		OwnerID:            ownerID,
	}

	return s.InsertOne(ctx, clone)
}

// ReplaceContent thay toàn bộ cây nội dung, chỉ khi proposal còn chỉnh sửa được
func (s *ProposalService) ReplaceContent(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID, content models.Content) (models.Proposal, error) {
	var zero models.Proposal

	proposal, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return zero, err
	}
	if !CanReplaceTemplate(proposal.Status) {
		return zero, ErrTransition("thay nội dung", proposal.Status)
	}

	return s.UpdateOne(ctx, bson.M{"_id": id, "ownerId": ownerID}, &basesvc.UpdateData{
		Set: map[string]interface{}{"content": content},
	}, nil)
}

// BuildListFilter dựng filter MongoDB cho danh sách proposal: scope theo owner
// (NilObjectID nghĩa là không scope, dùng cho admin), lọc trạng thái và tìm
// chuỗi con không phân biệt hoa thường trên title/projectDescription.
func BuildListFilter(ownerID primitive.ObjectID, status string, search string) bson.M {
	filter := bson.M{}
	if !ownerID.IsZero() {
		filter["ownerId"] = ownerID
	}
	if status != "" {
		filter["status"] = status
	}
	if search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": pattern},
			{"projectDescription": pattern},
		}
	}
	return filter
}

// List trả về danh sách proposal có lọc và phân trang, mới nhất trước.
// ownerID là NilObjectID cho admin (không scope), id của BD cho BD.
func (s *ProposalService) List(ctx context.Context, ownerID primitive.ObjectID, query *proposaldto.ProposalListQuery) (*basemodels.PaginateResult[models.Proposal], error) {
	if query.Status != "" && !models.IsValidStatus(query.Status) {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Trạng thái %q không hợp lệ", query.Status),
			common.StatusBadRequest,
			nil,
		)
	}

	page, limit := ClampPagination(
		query.Page,
		query.Limit,
		global.MongoDB_ServerConfig.PaginationDefaultLimit,
		global.MongoDB_ServerConfig.PaginationMaxLimit,
	)

	filter := BuildListFilter(ownerID, query.Status, query.Search)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}
