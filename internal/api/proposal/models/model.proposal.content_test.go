// Package models - Test cây nội dung Content: deep copy, IsEmpty, JSON round-trip.
package models

import (
	"encoding/json"
	"testing"
)

func sampleContent() Content {
	return NewMap(map[string]Content{
		"introduction": NewString("Xin chào"),
		"timeline": NewMap(map[string]Content{
			"total_duration": NewString("9-13 weeks"),
			"phases":         NewNumber(5),
		}),
		"sections": NewList(NewString("a"), NewString("b")),
		"approved": NewBool(true),
	})
}

func TestDeepCopy_DocLapVoiBanGoc(t *testing.T) {
	original := sampleContent()
	clone := original.DeepCopy()

	clone.SetField("introduction", NewString("Đã sửa"))

	v, ok := original.Field("introduction")
	if !ok {
		t.Fatal("bản gốc thiếu key introduction")
	}
	s, _ := v.StringValue()
	if s != "Xin chào" {
		t.Errorf("sửa bản copy làm thay đổi bản gốc: introduction = %q", s)
	}
}

func TestDeepCopy_ListDocLap(t *testing.T) {
	original := NewList(NewString("x"))
	clone := original.DeepCopy()

	items, _ := clone.List()
	if len(items) != 1 {
		t.Fatalf("bản copy có %d phần tử, muốn 1", len(items))
	}
	// Sửa phần tử trong copy không được ảnh hưởng bản gốc
	items[0] = NewString("y")
	originalItems, _ := original.List()
	s, _ := originalItems[0].StringValue()
	if s != "x" {
		t.Errorf("sửa list của bản copy làm thay đổi bản gốc: %q", s)
	}
}

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		name    string
		content Content
		want    bool
	}{
		{"chuỗi rỗng", NewString(""), true},
		{"chuỗi có nội dung", NewString("x"), false},
		{"map rỗng", NewMap(nil), true},
		{"map có field", NewMap(map[string]Content{"a": NewString("b")}), false},
		{"list rỗng", NewList(), true},
		{"list có phần tử", NewList(NewString("a")), false},
		{"số 0", NewNumber(0), false},
		{"bool false", NewBool(false), false},
	}
	for _, tc := range cases {
		if got := tc.content.IsEmpty(); got != tc.want {
			t.Errorf("IsEmpty(%s) = %v, muốn %v", tc.name, got, tc.want)
		}
	}
}

func TestContent_JSONRoundTrip(t *testing.T) {
	original := sampleContent()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal trả về lỗi: %v", err)
	}

	var decoded Content
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal trả về lỗi: %v", err)
	}

	if decoded.Kind() != KindMap {
		t.Fatalf("kind sau round-trip = %v, muốn KindMap", decoded.Kind())
	}
	intro, ok := decoded.Field("introduction")
	if !ok {
		t.Fatal("sau round-trip thiếu key introduction")
	}
	s, _ := intro.StringValue()
	if s != "Xin chào" {
		t.Errorf("introduction sau round-trip = %q, muốn %q", s, "Xin chào")
	}

	timeline, ok := decoded.Field("timeline")
	if !ok || timeline.Kind() != KindMap {
		t.Fatal("timeline sau round-trip phải là map")
	}
	sections, ok := decoded.Field("sections")
	if !ok || sections.Kind() != KindList {
		t.Fatal("sections sau round-trip phải là list")
	}
	items, _ := sections.List()
	if len(items) != 2 {
		t.Errorf("sections có %d phần tử, muốn 2", len(items))
	}
}

func TestFromNative(t *testing.T) {
	content, err := FromNative(map[string]interface{}{
		"title": "Demo",
		"count": float64(3),
		"tags":  []interface{}{"a", "b"},
		"meta":  map[string]interface{}{"ok": true},
	})
	if err != nil {
		t.Fatalf("FromNative trả về lỗi: %v", err)
	}
	if content.Kind() != KindMap {
		t.Fatal("FromNative của map phải trả về KindMap")
	}
	tags, ok := content.Field("tags")
	if !ok || tags.Kind() != KindList {
		t.Fatal("tags phải là list")
	}
	meta, _ := content.Field("meta")
	okField, ok := meta.Field("ok")
	if !ok {
		t.Fatal("meta thiếu key ok")
	}
	v, _ := okField.Scalar()
	if v != true {
		t.Errorf("meta.ok = %v, muốn true", v)
	}
}

func TestFromNative_NilTraVeMapRong(t *testing.T) {
	content, err := FromNative(nil)
	if err != nil {
		t.Fatalf("FromNative(nil) trả về lỗi: %v", err)
	}
	if content.Kind() != KindMap || !content.IsEmpty() {
		t.Error("FromNative(nil) phải trả về map rỗng")
	}
}

func TestFromNative_KieuKhongHoTro(t *testing.T) {
	if _, err := FromNative(make(chan int)); err == nil {
		t.Error("FromNative với kiểu không hỗ trợ phải trả về lỗi")
	}
}

func TestSortedKeys_OnDinh(t *testing.T) {
	content := NewMap(map[string]Content{
		"c": NewString("3"),
		"a": NewString("1"),
		"b": NewString("2"),
	})
	keys := content.SortedKeys()
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("SortedKeys trả về %d keys, muốn %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("SortedKeys[%d] = %s, muốn %s", i, keys[i], want[i])
		}
	}
}
