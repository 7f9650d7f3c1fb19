package docsvc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	models "proposal_hub/internal/api/proposal/models"
)

// Các phần cố định của gói OOXML tối giản. Một file .docx là một zip chứa
// content types, quan hệ gốc và word/document.xml.
const wordContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const wordRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// xmlEscape escape text để nhúng an toàn vào document.xml
func xmlEscape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// wordParagraph sinh một đoạn văn WordprocessingML.
// bold và size (half-points) áp cho cả run; align rỗng nghĩa là căn trái.
func wordParagraph(text string, bold bool, size int, align string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	if align != "" {
		sb.WriteString(fmt.Sprintf(`<w:pPr><w:jc w:val="%s"/></w:pPr>`, align))
	}
	sb.WriteString("<w:r><w:rPr>")
	if bold {
		sb.WriteString("<w:b/>")
	}
	if size > 0 {
		sb.WriteString(fmt.Sprintf(`<w:sz w:val="%d"/>`, size))
	}
	sb.WriteString("</w:rPr>")
	sb.WriteString(`<w:t xml:space="preserve">`)
	sb.WriteString(xmlEscape(text))
	sb.WriteString("</w:t></w:r></w:p>")
	return sb.String()
}

// wordKeyValueParagraph sinh đoạn văn "Key: value" với key in đậm
func wordKeyValueParagraph(text string) string {
	key, value := splitKeyValue(text)
	var sb strings.Builder
	sb.WriteString("<w:p>")
	sb.WriteString(`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">`)
	sb.WriteString(xmlEscape(key))
	sb.WriteString("</w:t></w:r>")
	sb.WriteString(`<w:r><w:t xml:space="preserve">`)
	sb.WriteString(xmlEscape(value))
	sb.WriteString("</w:t></w:r></w:p>")
	return sb.String()
}

// headingSize trả về cỡ chữ (half-points) theo cấp heading
func headingSize(level int) int {
	switch level {
	case 1:
		return 32
	case 2:
		return 28
	}
	return 24
}

// buildWordDocumentXML dựng word/document.xml từ tiêu đề và danh sách block
func buildWordDocumentXML(title string, blocks []block) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	sb.WriteString(wordParagraph(title, true, 40, "center"))
	sb.WriteString("<w:p/>")

	for _, b := range blocks {
		switch b.kind {
		case blockHeading:
			sb.WriteString(wordParagraph(b.text, true, headingSize(b.level), ""))
		case blockParagraph:
			sb.WriteString(wordParagraph(b.text, false, 0, ""))
		case blockKeyValue:
			sb.WriteString(wordKeyValueParagraph(b.text))
		case blockBullet:
			sb.WriteString(wordParagraph("• "+b.text, false, 0, ""))
		}
	}

	sb.WriteString("</w:body></w:document>")
	return sb.String()
}

// RenderWord render cây nội dung thành tài liệu .docx.
// Không bao giờ trả lỗi: sự cố render tạo ra tài liệu báo lỗi hợp lệ.
func RenderWord(content models.Content, title string) []byte {
	blocks := flattenContent(content)
	data, err := packWordDocument(title, blocks)
	if err != nil {
		// Đóng gói lại với nội dung báo lỗi; zip vào bytes.Buffer chỉ có thể
		// lỗi khi nội dung XML hỏng, nên nhánh này gần như không xảy ra
		data, _ = packWordDocument(title, errorBlocks(err.Error()))
	}
	return data
}

func packWordDocument(title string, blocks []block) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", wordContentTypes},
		{"_rels/.rels", wordRootRels},
		{"word/document.xml", buildWordDocumentXML(title, blocks)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
