package docsvc

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	models "proposal_hub/internal/api/proposal/models"
)

// RenderPDF render cây nội dung thành tài liệu PDF khổ A4.
// Không bao giờ trả lỗi: sự cố render tạo ra tài liệu báo lỗi hợp lệ.
func RenderPDF(content models.Content, title string) []byte {
	blocks := flattenContent(content)
	data, err := buildPDF(title, blocks)
	if err != nil {
		data, _ = buildPDF(title, errorBlocks(err.Error()))
	}
	return data
}

func buildPDF(title string, blocks []block) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	// Hàm dịch để in được ký tự ngoài ASCII cơ bản (bullet, tiếng Việt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Tiêu đề căn giữa
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(31, 71, 136)
	pdf.MultiCell(0, 10, tr(title), "", "C", false)
	pdf.Ln(8)

	for _, b := range blocks {
		switch b.kind {
		case blockHeading:
			size := 14.0
			if b.level > 1 {
				size = 12.0
				pdf.SetTextColor(44, 90, 160)
			} else {
				pdf.SetTextColor(31, 71, 136)
			}
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, 7, tr(b.text), "", "L", false)
		case blockParagraph:
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(b.text), "", "L", false)
		case blockKeyValue:
			pdf.SetTextColor(0, 0, 0)
			key, value := splitKeyValue(b.text)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.Write(6, tr(key))
			pdf.SetFont("Helvetica", "", 11)
			pdf.Write(6, tr(value))
			pdf.Ln(6)
		case blockBullet:
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetX(pdf.GetX() + 5)
			pdf.MultiCell(0, 6, tr("- "+b.text), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
