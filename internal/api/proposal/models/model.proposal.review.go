package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các quyết định của admin khi duyệt proposal
const (
	DecisionApproved          = "approved"
	DecisionRejected          = "rejected"
	DecisionRevisionRequested = "revision_requested"
)

// ValidDecisions danh sách quyết định hợp lệ
var ValidDecisions = []string{DecisionApproved, DecisionRejected, DecisionRevisionRequested}

// IsValidDecision kiểm tra quyết định có hợp lệ không
func IsValidDecision(decision string) bool {
	for _, d := range ValidDecisions {
		if d == decision {
			return true
		}
	}
	return false
}

// Trạng thái saga của review: review được ghi "pending" trước, chỉ chuyển
// "committed" sau khi proposal đã đổi trạng thái thành công. Review pending
// bị xóa bù nếu bước cập nhật proposal thất bại.
const (
	ReviewStatePending   = "pending"
	ReviewStateCommitted = "committed"
)

// Review định nghĩa một lượt duyệt của admin trên proposal.
// BDResponse được BD điền khi revise dựa trên review mới nhất.
type Review struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProposalID      primitive.ObjectID `json:"proposalId" bson:"proposalId" index:"1"`
	ReviewerID      primitive.ObjectID `json:"reviewerId" bson:"reviewerId"`
	Decision        string             `json:"decision" bson:"decision"`
	Comments        string             `json:"comments" bson:"comments"`
	Recommendations string             `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
	BDResponse      string             `json:"bdResponse,omitempty" bson:"bdResponse,omitempty"`
	State           string             `json:"state" bson:"state"`
	CreatedAt       int64              `json:"createdAt" bson:"createdAt" index:"-1"`
	UpdatedAt       int64              `json:"updatedAt" bson:"updatedAt"`
}
