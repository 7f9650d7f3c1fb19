package contentgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"proposal_hub/config"
	models "proposal_hub/internal/api/proposal/models"
	"proposal_hub/internal/common"
)

// GroqProvider gọi Groq qua API chat completions tương thích OpenAI
type GroqProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqProvider tạo provider từ cấu hình server
func NewGroqProvider(cfg *config.Configuration) *GroqProvider {
	timeout := time.Duration(cfg.GroqTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GroqProvider{
		apiKey:  cfg.GroqAPIKey,
		baseURL: strings.TrimSuffix(cfg.GroqBaseURL, "/"),
		model:   cfg.GroqModel,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// providerError gói lỗi provider theo mã PRV_001. Caller log rồi dùng fallback,
// không bao giờ trả lỗi này cho client.
func providerError(message string, cause error) error {
	return common.NewError(common.ErrCodeProvider, message, common.StatusInternalServerError, cause)
}

// complete gửi một prompt và trả về nội dung text của lựa chọn đầu tiên
func (p *GroqProvider) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   2048,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", providerError("Không thể serialize request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", providerError("Không thể tạo HTTP request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", providerError("Lỗi gọi Groq API", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", providerError("Không đọc được response từ Groq", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", providerError("Response từ Groq không phải JSON hợp lệ", err)
	}
	if parsed.Error != nil {
		return "", providerError("Groq API trả về lỗi: "+parsed.Error.Message, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return "", providerError(fmt.Sprintf("Groq API trả về status %d", resp.StatusCode), nil)
	}
	if len(parsed.Choices) == 0 {
		return "", providerError("Groq API không trả về lựa chọn nào", nil)
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// parseContentTree trích JSON từ text của model và dựng cây nội dung
func parseContentTree(raw string) (models.Content, error) {
	extracted := ExtractJSON(raw)
	if extracted == "" {
		return models.Content{}, providerError("Không tìm thấy JSON trong câu trả lời của model", nil)
	}

	var native interface{}
	if err := json.Unmarshal([]byte(extracted), &native); err != nil {
		return models.Content{}, providerError("JSON từ model không parse được", err)
	}

	tree, err := models.FromNative(native)
	if err != nil {
		return models.Content{}, providerError("Cây nội dung từ model chứa kiểu không hợp lệ", err)
	}
	if tree.Kind() != models.KindMap {
		return models.Content{}, providerError("Model không trả về một JSON object", nil)
	}

	return tree, nil
}

// Generate sinh cây nội dung proposal mới từ mô tả dự án
func (p *GroqProvider) Generate(ctx context.Context, projectDescription string) (models.Content, error) {
	prompt := fmt.Sprintf(`Generate a structured JSON template for an Upwork proposal based on this project description:
%s

The JSON should include sections for:
- introduction: A compelling opening paragraph
- understanding: Your understanding of the project requirements
- proposed_solution: Detailed solution approach with steps
- timeline: Estimated timeline with phases
- budget: Budget breakdown with justification
- why_choose_us: Why you're the best choice for this project
- portfolio_examples: Relevant experience or examples
- questions: Any clarifying questions for the client

Return only valid JSON without any additional text or markdown formatting.
Make it professional and tailored to the specific project description.`, projectDescription)

	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return models.Content{}, err
	}
	return parseContentTree(raw)
}

// Regenerate sinh lại cây nội dung dựa trên nội dung hiện tại và phản hồi
func (p *GroqProvider) Regenerate(ctx context.Context, current models.Content, adminFeedback string, bdFeedback string) (models.Content, error) {
	currentJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return models.Content{}, providerError("Không serialize được nội dung hiện tại", err)
	}

	prompt := fmt.Sprintf(`Based on the current proposal JSON: %s

Admin recommendations: %s
Business Developer recommendations: %s

Please regenerate the proposal JSON incorporating these recommendations.
Maintain the same JSON structure but improve the content based on feedback.
Make sure to address all points mentioned in the recommendations.

Return only valid JSON without any additional text or markdown formatting.`, string(currentJSON), adminFeedback, bdFeedback)

	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return models.Content{}, err
	}
	return parseContentTree(raw)
}
