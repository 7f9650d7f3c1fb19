// Package dochdl xử lý các request xuất tài liệu Word/PDF và template của proposal.
package dochdl

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "proposal_hub/internal/api/auth/models"
	basehdl "proposal_hub/internal/api/base/handler"
	docsvc "proposal_hub/internal/api/document/service"
	proposaldto "proposal_hub/internal/api/proposal/dto"
	proposalmodels "proposal_hub/internal/api/proposal/models"
	proposalsvc "proposal_hub/internal/api/proposal/service"
	"proposal_hub/internal/contentgen"
)

// MIME type của hai định dạng tài liệu
const (
	mimeWord = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePDF  = "application/pdf"
)

// DocumentHandler xử lý preview, download và template của proposal
type DocumentHandler struct {
	proposalService *proposalsvc.ProposalService
}

// NewDocumentHandler tạo instance mới của DocumentHandler
func NewDocumentHandler() (*DocumentHandler, error) {
	proposalService, err := proposalsvc.NewProposalService()
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal service: %v", err)
	}
	return &DocumentHandler{proposalService: proposalService}, nil
}

// getAccessible trả về proposal theo quyền của actor: admin thấy tất cả,
// BD chỉ thấy proposal của mình (proposal người khác trả về NotFound)
func (h *DocumentHandler) getAccessible(c fiber.Ctx, proposalID primitive.ObjectID) (proposalmodels.Proposal, error) {
	actorID, err := basehdl.GetActorID(c)
	if err != nil {
		return proposalmodels.Proposal{}, err
	}
	if role, _ := c.Locals("user_role").(string); role == authmodels.RoleAdmin {
		return h.proposalService.FindOneById(c.Context(), proposalID)
	}
	return h.proposalService.GetForOwner(c.Context(), proposalID, actorID)
}

// sendDocument trả file về client với tên file và MIME type tương ứng
func sendDocument(c fiber.Ctx, data []byte, filename string, mimeType string, attachment bool) error {
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	c.Set("Content-Type", mimeType)
	c.Set("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, url.PathEscape(filename)))
	return c.Send(data)
}

// HandlePreviewWord xem trước tài liệu Word (chủ sở hữu hoặc admin)
func (h *DocumentHandler) HandlePreviewWord(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		proposalID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.getAccessible(c, proposalID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		data := docsvc.RenderWord(proposal.Content, proposal.Title)
		return sendDocument(c, data, proposal.Title+"_preview.docx", mimeWord, false)
	})
}

// HandlePreviewPDF xem trước tài liệu PDF (chủ sở hữu hoặc admin)
func (h *DocumentHandler) HandlePreviewPDF(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		proposalID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.getAccessible(c, proposalID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		data := docsvc.RenderPDF(proposal.Content, proposal.Title)
		return sendDocument(c, data, proposal.Title+"_preview.pdf", mimePDF, false)
	})
}

// downloadFor lấy proposal của BD và kiểm tra trạng thái cho phép tải về
func (h *DocumentHandler) downloadFor(c fiber.Ctx) (proposalmodels.Proposal, error) {
	actorID, err := basehdl.GetActorID(c)
	if err != nil {
		return proposalmodels.Proposal{}, err
	}
	proposalID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return proposalmodels.Proposal{}, err
	}
	proposal, err := h.proposalService.GetForOwner(c.Context(), proposalID, actorID)
	if err != nil {
		return proposalmodels.Proposal{}, err
	}
	if !proposalsvc.CanDownload(proposal.Status) {
		return proposalmodels.Proposal{}, proposalsvc.ErrTransition("tải tài liệu", proposal.Status)
	}
	return proposal, nil
}

// HandleDownloadWord tải tài liệu Word chính thức, chỉ khi proposal đã approved
func (h *DocumentHandler) HandleDownloadWord(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		proposal, err := h.downloadFor(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		data := docsvc.RenderWord(proposal.Content, proposal.Title)
		return sendDocument(c, data, proposal.Title+".docx", mimeWord, true)
	})
}

// HandleDownloadPDF tải tài liệu PDF chính thức, chỉ khi proposal đã approved
func (h *DocumentHandler) HandleDownloadPDF(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		proposal, err := h.downloadFor(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		data := docsvc.RenderPDF(proposal.Content, proposal.Title)
		return sendDocument(c, data, proposal.Title+".pdf", mimePDF, true)
	})
}

// HandleGetTemplate trả về cây nội dung hiện tại của proposal
func (h *DocumentHandler) HandleGetTemplate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		proposalID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.getAccessible(c, proposalID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, fiber.Map{
			"proposalId": proposal.ID.Hex(),
			"title":      proposal.Title,
			"content":    proposal.Content,
		}, nil)
		return nil
	})
}

// HandlePutTemplate thay toàn bộ cây nội dung (BD, chỉ khi còn chỉnh sửa được)
func (h *DocumentHandler) HandlePutTemplate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actorID, err := basehdl.GetActorID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposalID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input proposaldto.TemplateUpdateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		proposal, err := h.proposalService.ReplaceContent(c.Context(), proposalID, actorID, input.Content)
		basehdl.HandleResponse(c, proposal, err)
		return nil
	})
}

// HandleDefaultTemplate trả về cây template mặc định (fallback xác định)
func (h *DocumentHandler) HandleDefaultTemplate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		template := contentgen.FallbackTemplate("your project")
		basehdl.HandleResponse(c, fiber.Map{"content": template}, nil)
		return nil
	})
}
