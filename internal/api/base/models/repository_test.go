// Package models - Test metadata phân trang.
package models

import "testing"

func TestNewPaginateResult_Metadata(t *testing.T) {
	items := []string{"a", "b", "c"}
	result := NewPaginateResult(2, 3, items, 10)

	if result.Page != 2 || result.Limit != 3 {
		t.Errorf("page/limit = %d/%d, muốn 2/3", result.Page, result.Limit)
	}
	if result.ItemCount != 3 {
		t.Errorf("ItemCount = %d, muốn 3", result.ItemCount)
	}
	if result.TotalPage != 4 {
		t.Errorf("TotalPage = %d, muốn 4 (10 mục, limit 3, làm tròn lên)", result.TotalPage)
	}
	if !result.HasNext {
		t.Error("trang 2/4 phải có HasNext = true")
	}
	if !result.HasPrev {
		t.Error("trang 2 phải có HasPrev = true")
	}
}

func TestNewPaginateResult_TrangCuoi(t *testing.T) {
	result := NewPaginateResult(4, 3, []string{"j"}, 10)
	if result.HasNext {
		t.Error("trang cuối không được có HasNext")
	}
}

func TestNewPaginateResult_KhongCoDuLieu(t *testing.T) {
	result := NewPaginateResult(1, 10, []string(nil), 0)
	if result.TotalPage != 0 || result.HasNext || result.HasPrev {
		t.Errorf("kết quả rỗng phải có TotalPage 0 và không prev/next, có: %+v", result)
	}
	if result.ItemCount != 0 {
		t.Errorf("ItemCount = %d, muốn 0", result.ItemCount)
	}
}

func TestNewPaginateResult_LimitKhongHopLe(t *testing.T) {
	result := NewPaginateResult(1, 0, []string{"a"}, 5)
	if result.TotalPage != 0 {
		t.Errorf("limit 0 phải cho TotalPage 0, có %d", result.TotalPage)
	}
}
