// Package proposalsvc - nghiệp vụ vòng đời proposal.
package proposalsvc

import (
	"fmt"

	models "proposal_hub/internal/api/proposal/models"
	"proposal_hub/internal/common"
)

// Bảng chuyển trạng thái của proposal. Mọi guard đi qua các hàm này,
// handler và service không tự so sánh chuỗi trạng thái.

// CanEdit cho biết proposal có đang ở trạng thái cho phép BD chỉnh sửa không
func CanEdit(status string) bool {
	return status == models.StatusDraft || status == models.StatusRevisionRequested
}

// CanSubmit cho biết proposal có thể gửi duyệt từ trạng thái hiện tại không
func CanSubmit(status string) bool {
	return status == models.StatusDraft || status == models.StatusRevisionRequested
}

// CanReview cho biết admin có thể ra quyết định trên trạng thái hiện tại không.
// Rejected là trạng thái cuối, không duyệt lại được.
func CanReview(status string) bool {
	return status == models.StatusSubmitted || status == models.StatusUnderReview
}

// CanStartReview cho biết admin có thể nhận proposal vào xem xét không
// (chuyển submitted → under_review)
func CanStartReview(status string) bool {
	return status == models.StatusSubmitted
}

// CanRevise cho biết BD có thể revise không (chỉ sau khi bị yêu cầu chỉnh sửa)
func CanRevise(status string) bool {
	return status == models.StatusRevisionRequested
}

// CanDelete cho biết proposal có thể xóa không (chỉ bản nháp)
func CanDelete(status string) bool {
	return status == models.StatusDraft
}

// CanDownload cho biết tài liệu có thể tải về không (chỉ khi đã duyệt)
func CanDownload(status string) bool {
	return status == models.StatusApproved
}

// CanReplaceTemplate cho biết cây nội dung có thể bị thay thế toàn bộ không
func CanReplaceTemplate(status string) bool {
	return CanEdit(status)
}

// DecisionTargetStatus ánh xạ quyết định của admin sang trạng thái đích của proposal
func DecisionTargetStatus(decision string) (string, error) {
	switch decision {
	case models.DecisionApproved:
		return models.StatusApproved, nil
	case models.DecisionRejected:
		return models.StatusRejected, nil
	case models.DecisionRevisionRequested:
		return models.StatusRevisionRequested, nil
	}
	return "", common.NewError(
		common.ErrCodeValidationInput,
		fmt.Sprintf("Quyết định %q không hợp lệ", decision),
		common.StatusBadRequest,
		nil,
	)
}

// ErrTransition tạo lỗi chuyển trạng thái không hợp lệ, kèm thao tác và trạng thái hiện tại
func ErrTransition(operation string, currentStatus string) error {
	return common.NewError(
		common.ErrCodeBusinessState,
		fmt.Sprintf("Không thể %s khi proposal đang ở trạng thái %q", operation, currentStatus),
		common.StatusBadRequest,
		map[string]interface{}{
			"operation":     operation,
			"currentStatus": currentStatus,
		},
	)
}

// ClampPagination đưa page/limit về khoảng hợp lệ: page tối thiểu 1,
// limit nằm trong [1, maxLimit], giá trị thiếu dùng defaultLimit.
func ClampPagination(page int64, limit int64, defaultLimit int64, maxLimit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
