package proposalhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "proposal_hub/internal/api/base/handler"
	proposaldto "proposal_hub/internal/api/proposal/dto"
	proposalsvc "proposal_hub/internal/api/proposal/service"
)

// parseListQuery đọc tham số lọc và phân trang từ query string
func parseListQuery(c fiber.Ctx) *proposaldto.ProposalListQuery {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil {
		limit = 10
	}
	return &proposaldto.ProposalListQuery{
		Status: c.Query("status", ""),
		Search: c.Query("search", ""),
		Page:   page,
		Limit:  limit,
	}
}

// actorAndProposalID lấy actor từ context và proposal id từ URI
func actorAndProposalID(c fiber.Ctx) (primitive.ObjectID, primitive.ObjectID, error) {
	actorID, err := basehdl.GetActorID(c)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	proposalID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return actorID, proposalID, nil
}

// AdminProposalHandler xử lý các thao tác duyệt của admin
type AdminProposalHandler struct {
	proposalService *proposalsvc.ProposalService
}

// NewAdminProposalHandler tạo instance mới của AdminProposalHandler
func NewAdminProposalHandler() (*AdminProposalHandler, error) {
	proposalService, err := proposalsvc.NewProposalService()
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal service: %v", err)
	}
	return &AdminProposalHandler{proposalService: proposalService}, nil
}

// HandleList danh sách proposal toàn hệ thống, không scope theo owner
func (h *AdminProposalHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		query := parseListQuery(c)
		result, err := h.proposalService.List(c.Context(), primitive.NilObjectID, query)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGet chi tiết một proposal bất kỳ
func (h *AdminProposalHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		proposalID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.proposalService.FindOneById(c.Context(), proposalID)
		basehdl.HandleResponse(c, proposal, err)
		return nil
	})
}

// HandleStartReview nhận proposal đã submit vào xem xét
func (h *AdminProposalHandler) HandleStartReview(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		proposalID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.proposalService.StartReview(c.Context(), proposalID)
		basehdl.HandleResponse(c, proposal, err)
		return nil
	})
}

// HandleReview ra quyết định trên proposal (approved / rejected / revision_requested)
func (h *AdminProposalHandler) HandleReview(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, proposalID, err := actorAndProposalID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input proposaldto.ReviewInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		review, err := h.proposalService.Review(c.Context(), proposalID, actorID, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleCreatedResponse(c, review)
		return nil
	})
}

// HandleListReviews danh sách review của một proposal bất kỳ
func (h *AdminProposalHandler) HandleListReviews(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		proposalID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		// Xác nhận proposal tồn tại để trả 404 rõ ràng thay vì danh sách rỗng
		if _, err := h.proposalService.FindOneById(c.Context(), proposalID); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		reviews, err := h.proposalService.ReviewService().FindByProposal(c.Context(), proposalID)
		basehdl.HandleResponse(c, reviews, err)
		return nil
	})
}
