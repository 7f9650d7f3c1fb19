package contentgen

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON_CodeBlockMarkdown(t *testing.T) {
	content := "Here is the proposal:\n```json\n{\"title\": \"Demo\"}\n```\nHope it helps!"
	result := ExtractJSON(content)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		t.Fatalf("kết quả không parse được thành JSON: %v (raw: %q)", err, result)
	}
	if parsed["title"] != "Demo" {
		t.Errorf("title = %v, muốn Demo", parsed["title"])
	}
}

func TestExtractJSON_KhongCoCodeBlock(t *testing.T) {
	content := `Sure! {"a": 1, "b": {"c": 2}}`
	result := ExtractJSON(content)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		t.Fatalf("kết quả không parse được thành JSON: %v (raw: %q)", err, result)
	}
}

func TestExtractJSON_BoCommentVaTrailingComma(t *testing.T) {
	content := `{
	"title": "Demo", // tiêu đề
	"items": ["a", "b",],
}`
	result := ExtractJSON(content)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		t.Fatalf("kết quả không parse được thành JSON: %v (raw: %q)", err, result)
	}
	items, ok := parsed["items"].([]interface{})
	if !ok || len(items) != 2 {
		t.Errorf("items = %v, muốn 2 phần tử", parsed["items"])
	}
}

func TestExtractJSON_GiuSlashTrongChuoi(t *testing.T) {
	content := `{"url": "https://example.com/path"}`
	result := ExtractJSON(content)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		t.Fatalf("kết quả không parse được thành JSON: %v (raw: %q)", err, result)
	}
	if parsed["url"] != "https://example.com/path" {
		t.Errorf("url = %v, // trong chuỗi không được coi là comment", parsed["url"])
	}
}

func TestExtractJSON_KhongCoJSON(t *testing.T) {
	if result := ExtractJSON("xin lỗi, tôi không thể giúp"); result != "" {
		t.Errorf("nội dung không có JSON phải trả về chuỗi rỗng, có: %q", result)
	}
}
