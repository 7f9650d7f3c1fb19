// Package contentgen sinh cây nội dung cho proposal: gọi provider bên ngoài
// khi có cấu hình, luôn có fallback xác định khi provider lỗi hoặc vắng mặt.
package contentgen

import (
	"context"

	"proposal_hub/config"
	models "proposal_hub/internal/api/proposal/models"
)

// Provider sinh và tái sinh cây nội dung proposal.
// Cả hai lời gọi đều có thể chậm (network-bound) nên nhận context có timeout.
type Provider interface {
	// Generate sinh cây nội dung mới từ mô tả dự án
	Generate(ctx context.Context, projectDescription string) (models.Content, error)

	// Regenerate sinh lại cây nội dung dựa trên nội dung hiện tại và phản hồi
	// của admin lẫn BD
	Regenerate(ctx context.Context, current models.Content, adminFeedback string, bdFeedback string) (models.Content, error)
}

// NewProviderFromConfig trả về provider theo cấu hình. Không có API key
// nghĩa là không có provider (nil) và caller luôn dùng fallback.
func NewProviderFromConfig(cfg *config.Configuration) Provider {
	if cfg == nil || cfg.GroqAPIKey == "" {
		return nil
	}
	return NewGroqProvider(cfg)
}
