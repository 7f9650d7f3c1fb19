package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái vòng đời của proposal
const (
	StatusDraft             = "draft"              // BD đang soạn
	StatusSubmitted         = "submitted"          // Đã gửi chờ admin duyệt
	StatusUnderReview       = "under_review"       // Admin đang xem xét
	StatusApproved          = "approved"           // Đã duyệt, cho phép tải tài liệu
	StatusRejected          = "rejected"           // Từ chối, trạng thái cuối
	StatusRevisionRequested = "revision_requested" // Yêu cầu BD chỉnh sửa
)

// ValidStatuses danh sách trạng thái hợp lệ của proposal
var ValidStatuses = []string{
	StatusDraft,
	StatusSubmitted,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusRevisionRequested,
}

// IsValidStatus kiểm tra trạng thái có hợp lệ không
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Proposal định nghĩa mô hình proposal.
// OwnerID không bao giờ đổi sau khi tạo; CurrentVersion tăng mỗi lần revise.
type Proposal struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title              string             `json:"title" bson:"title"`
	ProjectDescription string             `json:"projectDescription" bson:"projectDescription"`
	Content            Content            `json:"content" bson:"content"`
	Status             string             `json:"status" bson:"status" index:"1"`
	CurrentVersion     int64              `json:"currentVersion" bson:"currentVersion"`
	OwnerID            primitive.ObjectID `json:"ownerId" bson:"ownerId" index:"1"`
	CreatedAt          int64              `json:"createdAt" bson:"createdAt" index:"-1"`
	UpdatedAt          int64              `json:"updatedAt" bson:"updatedAt"`
}
