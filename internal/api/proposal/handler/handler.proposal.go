// Package proposalhdl xử lý các request vòng đời proposal.
package proposalhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "proposal_hub/internal/api/base/handler"
	proposaldto "proposal_hub/internal/api/proposal/dto"
	proposalsvc "proposal_hub/internal/api/proposal/service"
)

// ProposalHandler xử lý các thao tác của BD trên proposal của chính mình
type ProposalHandler struct {
	proposalService *proposalsvc.ProposalService
}

// NewProposalHandler tạo instance mới của ProposalHandler
func NewProposalHandler() (*ProposalHandler, error) {
	proposalService, err := proposalsvc.NewProposalService()
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal service: %v", err)
	}
	return &ProposalHandler{proposalService: proposalService}, nil
}

// HandleCreate tạo proposal mới ở trạng thái draft
func (h *ProposalHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, err := basehdl.GetActorID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input proposaldto.ProposalCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.proposalService.Create(c.Context(), actorID, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleCreatedResponse(c, proposal)
		return nil
	})
}

// HandleList danh sách proposal của BD, có lọc trạng thái, tìm kiếm và phân trang
func (h *ProposalHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, err := basehdl.GetActorID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		query := parseListQuery(c)
		result, err := h.proposalService.List(c.Context(), actorID, query)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGet chi tiết một proposal thuộc sở hữu của BD
func (h *ProposalHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, proposalID, err := actorAndProposalID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.proposalService.GetForOwner(c.Context(), proposalID, actorID)
		basehdl.HandleResponse(c, proposal, err)
		return nil
	})
}

// HandleEdit chỉnh sửa proposal (chỉ draft / revision_requested)
func (h *ProposalHandler) HandleEdit(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, proposalID, err := actorAndProposalID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input proposaldto.ProposalEditInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.proposalService.Edit(c.Context(), proposalID, actorID, &input)
		basehdl.HandleResponse(c, proposal, err)
		return nil
	})
}

// HandleSubmit gửi proposal đi duyệt
func (h *ProposalHandler) HandleSubmit(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, proposalID, err := actorAndProposalID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.proposalService.Submit(c.Context(), proposalID, actorID)
		basehdl.HandleResponse(c, proposal, err)
		return nil
	})
}

// HandleRevise BD phản hồi review mới nhất và sinh lại nội dung
func (h *ProposalHandler) HandleRevise(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, proposalID, err := actorAndProposalID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input proposaldto.ReviseInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.proposalService.Revise(c.Context(), proposalID, actorID, &input)
		basehdl.HandleResponse(c, proposal, err)
		return nil
	})
}

// HandleDelete xóa bản nháp kèm toàn bộ review của nó
func (h *ProposalHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, proposalID, err := actorAndProposalID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		err = h.proposalService.Delete(c.Context(), proposalID, actorID)
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleDuplicate nhân bản proposal thành bản nháp mới
func (h *ProposalHandler) HandleDuplicate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, proposalID, err := actorAndProposalID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.proposalService.Duplicate(c.Context(), proposalID, actorID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleCreatedResponse(c, proposal)
		return nil
	})
}

// HandleListReviews danh sách review của một proposal thuộc sở hữu BD
func (h *ProposalHandler) HandleListReviews(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, proposalID, err := actorAndProposalID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		// Xác nhận quyền sở hữu trước, review không lộ qua proposal của người khác
		if _, err := h.proposalService.GetForOwner(c.Context(), proposalID, actorID); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		reviews, err := h.proposalService.ReviewService().FindByProposal(c.Context(), proposalID)
		basehdl.HandleResponse(c, reviews, err)
		return nil
	})
}
