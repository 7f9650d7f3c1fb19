// Package docsvc render cây nội dung proposal thành tài liệu Word và PDF.
// Renderer thuần túy, không trạng thái: cây hợp lệ luôn render được, cây hỏng
// render thành tài liệu báo lỗi nhìn thấy được thay vì trả lỗi cho caller.
package docsvc

import (
	"strconv"
	"strings"

	models "proposal_hub/internal/api/proposal/models"
)

// skipSection các key bị loại khỏi tài liệu cuối cùng
const skipSection = "revision_notes"

// preferredSectionOrder thứ tự các section gốc trong tài liệu, theo template
// sinh nội dung. Section ngoài danh sách xếp sau, theo alphabet.
var preferredSectionOrder = []string{
	"introduction",
	"understanding",
	"proposed_solution",
	"timeline",
	"budget",
	"why_choose_us",
	"portfolio_examples",
	"questions",
}

// orderedSectionKeys trả về các key cấp gốc theo preferredSectionOrder,
// phần còn lại theo alphabet để thứ tự luôn ổn định
func orderedSectionKeys(content models.Content) []string {
	sorted := content.SortedKeys()
	remaining := make(map[string]bool, len(sorted))
	for _, key := range sorted {
		remaining[key] = true
	}

	ordered := make([]string, 0, len(sorted))
	for _, key := range preferredSectionOrder {
		if remaining[key] {
			ordered = append(ordered, key)
			delete(remaining, key)
		}
	}
	for _, key := range sorted {
		if remaining[key] {
			ordered = append(ordered, key)
		}
	}
	return ordered
}

// FormatSectionTitle đổi key dạng snake_case thành tiêu đề đọc được
// ("proposed_solution" → "Proposed Solution")
func FormatSectionTitle(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// scalarText đổi giá trị lá thành chuỗi hiển thị
func scalarText(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case nil:
		return ""
	}
	return ""
}

// block là một phần tử phẳng của tài liệu, dùng chung cho cả hai renderer
type block struct {
	kind  blockKind
	level int // Cấp heading, 1 là section gốc
	text  string
}

type blockKind int

const (
	blockHeading blockKind = iota
	blockParagraph
	blockKeyValue // text dạng "Key: value", key in đậm
	blockBullet
)

// flattenContent duyệt cây nội dung thành danh sách block theo thứ tự ổn định.
// Map dùng key đã sort để hai lần render cho cùng một cây giống hệt nhau.
func flattenContent(content models.Content) []block {
	var blocks []block

	fields, ok := content.Fields()
	if !ok {
		// Cây gốc không phải map: render như một đoạn văn duy nhất
		blocks = append(blocks, flattenNode(content, 1)...)
		return blocks
	}

	for _, key := range orderedSectionKeys(content) {
		if key == skipSection {
			continue
		}
		child := fields[key]
		blocks = append(blocks, block{kind: blockHeading, level: 1, text: FormatSectionTitle(key)})
		blocks = append(blocks, flattenNode(child, 2)...)
	}
	return blocks
}

// flattenNode duyệt một node con, level là cấp heading cho map lồng bên trong
func flattenNode(node models.Content, level int) []block {
	var blocks []block

	switch node.Kind() {
	case models.KindScalar:
		v, _ := node.Scalar()
		blocks = append(blocks, block{kind: blockParagraph, text: scalarText(v)})
	case models.KindList:
		items, _ := node.List()
		for _, item := range items {
			if item.Kind() == models.KindScalar {
				v, _ := item.Scalar()
				blocks = append(blocks, block{kind: blockBullet, text: scalarText(v)})
			} else {
				blocks = append(blocks, flattenNode(item, level)...)
			}
		}
	case models.KindMap:
		fields, _ := node.Fields()
		for _, key := range node.SortedKeys() {
			child := fields[key]
			switch child.Kind() {
			case models.KindScalar:
				v, _ := child.Scalar()
				blocks = append(blocks, block{kind: blockKeyValue, text: FormatSectionTitle(key) + ": " + scalarText(v)})
			default:
				blocks = append(blocks, block{kind: blockHeading, level: level, text: FormatSectionTitle(key)})
				blocks = append(blocks, flattenNode(child, level+1)...)
			}
		}
	}
	return blocks
}

// splitKeyValue tách block "Key: value" thành phần key (kèm ": ") và phần value
func splitKeyValue(text string) (string, string) {
	if idx := strings.Index(text, ": "); idx >= 0 {
		return text[:idx+2], text[idx+2:]
	}
	return text, ""
}

// errorBlocks tài liệu báo lỗi hiển thị khi render gặp sự cố
func errorBlocks(message string) []block {
	return []block{
		{kind: blockHeading, level: 1, text: "Document Generation Error"},
		{kind: blockParagraph, text: "An error occurred while generating the document: " + message},
	}
}
