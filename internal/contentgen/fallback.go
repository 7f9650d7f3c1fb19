package contentgen

import (
	"fmt"

	models "proposal_hub/internal/api/proposal/models"
)

// truncate cắt chuỗi về tối đa n ký tự để nhúng vào nội dung fallback
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// FallbackTemplate trả về cây nội dung xác định dùng khi provider vắng mặt
// hoặc lỗi. Cấu trúc section cố định, chỉ phần understanding nhúng mô tả dự án.
func FallbackTemplate(projectDescription string) models.Content {
	return models.NewMap(map[string]models.Content{
		"introduction": models.NewString(
			"Thank you for posting this project. I've carefully reviewed your requirements and I'm excited to help you achieve your goals. With my expertise and experience, I'm confident I can deliver exactly what you're looking for.",
		),
		"understanding": models.NewString(fmt.Sprintf(
			"Based on your description: '%s', I understand you need a comprehensive solution that addresses your specific requirements. I've worked on similar projects and understand the challenges involved.",
			truncate(projectDescription, 100),
		)),
		"proposed_solution": models.NewMap(map[string]models.Content{
			"approach": models.NewString("I will follow a systematic approach to ensure quality delivery"),
			"phases": models.NewList(
				models.NewString("Initial consultation and requirement analysis"),
				models.NewString("Planning and design phase"),
				models.NewString("Implementation and development"),
				models.NewString("Testing and quality assurance"),
				models.NewString("Delivery and post-project support"),
			),
		}),
		"timeline": models.NewMap(map[string]models.Content{
			"analysis":       models.NewString("1-2 days"),
			"development":    models.NewString("7-10 days"),
			"testing":        models.NewString("2-3 days"),
			"delivery":       models.NewString("1 day"),
			"total_duration": models.NewString("2-3 weeks"),
		}),
		"budget": models.NewMap(map[string]models.Content{
			"total":         models.NewString("To be discussed based on scope"),
			"payment_terms": models.NewString("Milestone-based payments preferred"),
			"includes":      models.NewString("All development, testing, and basic support"),
		}),
		"why_choose_us": models.NewString(
			"With extensive experience in similar projects, I guarantee quality work delivered on time. I maintain clear communication throughout the project and provide ongoing support.",
		),
		"portfolio_examples": models.NewString(
			"I have successfully completed similar projects with 100% client satisfaction. Happy to share relevant examples upon request.",
		),
		"questions": models.NewString(
			"I'd love to discuss your specific requirements in more detail. Are there any particular features or constraints I should be aware of?",
		),
	})
}

// FallbackRegenerate trả về bản cải thiện xác định của cây hiện tại khi
// provider không sinh lại được: sao chép sâu, ghi chú revision và đánh dấu
// phần introduction đã được chỉnh theo phản hồi.
func FallbackRegenerate(current models.Content, adminFeedback string, bdFeedback string) models.Content {
	improved := current.DeepCopy()
	if improved.Kind() != models.KindMap {
		improved = models.NewMap(map[string]models.Content{
			"content": improved,
		})
	}

	improved.SetField("revision_notes", models.NewString(fmt.Sprintf(
		"Enhanced based on admin feedback: %s and BD input: %s",
		truncate(adminFeedback, 100),
		truncate(bdFeedback, 100),
	)))

	if intro, ok := improved.Field("introduction"); ok {
		if text, isString := intro.StringValue(); isString {
			improved.SetField("introduction", models.NewString(text+" [REVISED BASED ON FEEDBACK]"))
		}
	}

	return improved
}
