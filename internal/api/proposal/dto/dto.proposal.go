// Package proposaldto chứa các cấu trúc vào/ra của domain proposal.
package proposaldto

import (
	models "proposal_hub/internal/api/proposal/models"
)

// ProposalCreateInput đầu vào tạo proposal mới
type ProposalCreateInput struct {
	Title              string `json:"title" validate:"required,max=200,no_xss"`
	ProjectDescription string `json:"projectDescription" validate:"required"`
}

// ProposalEditInput đầu vào chỉnh sửa proposal. Trường nil giữ nguyên giá trị cũ.
type ProposalEditInput struct {
	Title              *string         `json:"title,omitempty" validate:"omitempty,max=200,no_xss"`
	ProjectDescription *string         `json:"projectDescription,omitempty"`
	Content            *models.Content `json:"content,omitempty"`
}

// ReviewInput đầu vào duyệt proposal của admin
type ReviewInput struct {
	Decision        string `json:"decision" validate:"required,review_decision"`
	Comments        string `json:"comments" validate:"required"`
	Recommendations string `json:"recommendations"`
}

// ReviseInput đầu vào revise của BD sau khi bị yêu cầu chỉnh sửa
type ReviseInput struct {
	BDResponse string `json:"bdResponse" validate:"required"`
}

// ProposalListQuery tham số lọc và phân trang danh sách proposal
type ProposalListQuery struct {
	Status string `query:"status" validate:"omitempty,proposal_status"`
	Search string `query:"search"`
	Page   int64  `query:"page"`
	Limit  int64  `query:"limit"`
}

// TemplateUpdateInput đầu vào thay thế toàn bộ cây nội dung
type TemplateUpdateInput struct {
	Content models.Content `json:"content"`
}
