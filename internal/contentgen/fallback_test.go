// Package contentgen - Test template fallback và regenerate khi không có provider.
package contentgen

import (
	"strings"
	"testing"

	models "proposal_hub/internal/api/proposal/models"
)

func TestFallbackTemplate_DayDuSection(t *testing.T) {
	content := FallbackTemplate("Xây dựng hệ thống quản lý kho")

	wantSections := []string{
		"introduction",
		"understanding",
		"proposed_solution",
		"timeline",
		"budget",
		"why_choose_us",
		"portfolio_examples",
		"questions",
	}
	for _, key := range wantSections {
		if _, ok := content.Field(key); !ok {
			t.Errorf("FallbackTemplate thiếu section %q", key)
		}
	}
}

func TestFallbackTemplate_UnderstandingChuaMoTa(t *testing.T) {
	description := "Dự án CRM cho chuỗi bán lẻ"
	content := FallbackTemplate(description)

	understanding, ok := content.Field("understanding")
	if !ok {
		t.Fatal("FallbackTemplate thiếu section understanding")
	}
	text, ok := understanding.StringValue()
	if !ok {
		t.Fatal("understanding phải là chuỗi")
	}
	if !strings.Contains(text, description) {
		t.Errorf("understanding phải chứa mô tả dự án, có: %q", text)
	}
}

func TestFallbackTemplate_MoTaDaiBiCatNgan(t *testing.T) {
	long := strings.Repeat("a", 1000)
	content := FallbackTemplate(long)

	understanding, _ := content.Field("understanding")
	text, _ := understanding.StringValue()
	if strings.Contains(text, long) {
		t.Error("mô tả quá dài phải bị cắt ngắn trong understanding")
	}
}

func TestFallbackTemplate_XacDinh(t *testing.T) {
	a := FallbackTemplate("demo")
	b := FallbackTemplate("demo")

	dataA, errA := a.MarshalJSON()
	dataB, errB := b.MarshalJSON()
	if errA != nil || errB != nil {
		t.Fatalf("MarshalJSON trả về lỗi: %v, %v", errA, errB)
	}
	if string(dataA) != string(dataB) {
		t.Error("FallbackTemplate phải xác định: hai lần gọi cùng input cho cùng output")
	}
}

func TestFallbackRegenerate_ThemRevisionNotes(t *testing.T) {
	current := models.NewMap(map[string]models.Content{
		"introduction": models.NewString("Giới thiệu ban đầu"),
	})
	improved := FallbackRegenerate(current, "Cần chi tiết hơn", "Đã bổ sung")

	notes, ok := improved.Field("revision_notes")
	if !ok {
		t.Fatal("FallbackRegenerate phải thêm revision_notes")
	}
	text, _ := notes.StringValue()
	if !strings.Contains(text, "Cần chi tiết hơn") || !strings.Contains(text, "Đã bổ sung") {
		t.Errorf("revision_notes phải chứa cả hai feedback, có: %q", text)
	}

	intro, _ := improved.Field("introduction")
	introText, _ := intro.StringValue()
	if !strings.HasSuffix(introText, "[REVISED BASED ON FEEDBACK]") {
		t.Errorf("introduction phải có hậu tố revised, có: %q", introText)
	}
}

func TestFallbackRegenerate_KhongSuaBanGoc(t *testing.T) {
	current := models.NewMap(map[string]models.Content{
		"introduction": models.NewString("Nguyên bản"),
	})
	FallbackRegenerate(current, "x", "y")

	if _, ok := current.Field("revision_notes"); ok {
		t.Error("FallbackRegenerate không được sửa cây nội dung gốc")
	}
	intro, _ := current.Field("introduction")
	text, _ := intro.StringValue()
	if text != "Nguyên bản" {
		t.Errorf("introduction gốc bị thay đổi: %q", text)
	}
}
