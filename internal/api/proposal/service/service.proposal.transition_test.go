// Package proposalsvc - Test các guard chuyển trạng thái và helper phân trang.
package proposalsvc

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "proposal_hub/internal/api/proposal/models"
	"proposal_hub/internal/common"
)

func TestCanEdit_ChiDraftVaRevisionRequested(t *testing.T) {
	allowed := map[string]bool{
		models.StatusDraft:             true,
		models.StatusRevisionRequested: true,
		models.StatusSubmitted:         false,
		models.StatusUnderReview:       false,
		models.StatusApproved:          false,
		models.StatusRejected:          false,
	}
	for status, want := range allowed {
		if got := CanEdit(status); got != want {
			t.Errorf("CanEdit(%s) = %v, muốn %v", status, got, want)
		}
	}
}

func TestCanSubmit_TrungVoiCanEdit(t *testing.T) {
	for _, status := range models.ValidStatuses {
		if CanSubmit(status) != CanEdit(status) {
			t.Errorf("CanSubmit(%s) phải trùng với CanEdit(%s)", status, status)
		}
	}
}

func TestCanReview_ChiSubmittedVaUnderReview(t *testing.T) {
	for _, status := range models.ValidStatuses {
		want := status == models.StatusSubmitted || status == models.StatusUnderReview
		if got := CanReview(status); got != want {
			t.Errorf("CanReview(%s) = %v, muốn %v", status, got, want)
		}
	}
}

func TestCanStartReview_ChiSubmitted(t *testing.T) {
	if !CanStartReview(models.StatusSubmitted) {
		t.Error("CanStartReview(submitted) phải trả về true")
	}
	for _, status := range []string{models.StatusDraft, models.StatusUnderReview, models.StatusApproved, models.StatusRejected, models.StatusRevisionRequested} {
		if CanStartReview(status) {
			t.Errorf("CanStartReview(%s) phải trả về false", status)
		}
	}
}

func TestCanRevise_ChiRevisionRequested(t *testing.T) {
	for _, status := range models.ValidStatuses {
		want := status == models.StatusRevisionRequested
		if got := CanRevise(status); got != want {
			t.Errorf("CanRevise(%s) = %v, muốn %v", status, got, want)
		}
	}
}

func TestCanDelete_ChiDraft(t *testing.T) {
	for _, status := range models.ValidStatuses {
		want := status == models.StatusDraft
		if got := CanDelete(status); got != want {
			t.Errorf("CanDelete(%s) = %v, muốn %v", status, got, want)
		}
	}
}

func TestCanDownload_ChiApproved(t *testing.T) {
	for _, status := range models.ValidStatuses {
		want := status == models.StatusApproved
		if got := CanDownload(status); got != want {
			t.Errorf("CanDownload(%s) = %v, muốn %v", status, got, want)
		}
	}
}

func TestRejected_KhongCoDuongRa(t *testing.T) {
	status := models.StatusRejected
	if CanEdit(status) || CanSubmit(status) || CanReview(status) || CanStartReview(status) ||
		CanRevise(status) || CanDelete(status) || CanDownload(status) || CanReplaceTemplate(status) {
		t.Error("rejected là trạng thái kết thúc, không thao tác nào được phép")
	}
}

func TestDecisionTargetStatus(t *testing.T) {
	cases := map[string]string{
		models.DecisionApproved:          models.StatusApproved,
		models.DecisionRejected:          models.StatusRejected,
		models.DecisionRevisionRequested: models.StatusRevisionRequested,
	}
	for decision, want := range cases {
		got, err := DecisionTargetStatus(decision)
		if err != nil {
			t.Fatalf("DecisionTargetStatus(%s) trả về lỗi: %v", decision, err)
		}
		if got != want {
			t.Errorf("DecisionTargetStatus(%s) = %s, muốn %s", decision, got, want)
		}
	}

	if _, err := DecisionTargetStatus("maybe"); err == nil {
		t.Error("DecisionTargetStatus với decision không hợp lệ phải trả về lỗi")
	}
}

func TestErrTransition_LaLoiBusinessState(t *testing.T) {
	err := ErrTransition("gửi duyệt", models.StatusApproved)
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatal("ErrTransition phải trả về *common.Error")
	}
	if customErr.Code.Code != common.ErrCodeBusinessState.Code {
		t.Errorf("ErrTransition code = %s, muốn %s", customErr.Code.Code, common.ErrCodeBusinessState.Code)
	}
	if customErr.StatusCode != 400 {
		t.Errorf("ErrTransition status = %d, muốn 400", customErr.StatusCode)
	}
}

func TestClampPagination(t *testing.T) {
	cases := []struct {
		page, limit         int64
		wantPage, wantLimit int64
	}{
		{0, 0, 1, 10},     // giá trị rỗng dùng mặc định
		{-5, -1, 1, 10},   // giá trị âm dùng mặc định
		{3, 50, 3, 50},    // giá trị hợp lệ giữ nguyên
		{1, 500, 1, 100},  // limit vượt trần bị clamp
		{1, 100, 1, 100},  // đúng trần giữ nguyên
	}
	for _, tc := range cases {
		page, limit := ClampPagination(tc.page, tc.limit, 10, 100)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Errorf("ClampPagination(%d, %d) = (%d, %d), muốn (%d, %d)",
				tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestBuildListFilter_TheoOwnerVaStatus(t *testing.T) {
	ownerID := primitive.NewObjectID()
	filter := BuildListFilter(ownerID, models.StatusDraft, "")
	if filter["ownerId"] != ownerID {
		t.Error("filter phải chứa ownerId khi ownerID khác zero")
	}
	if filter["status"] != models.StatusDraft {
		t.Error("filter phải chứa status khi status khác rỗng")
	}

	unscoped := BuildListFilter(primitive.NilObjectID, "", "")
	if _, ok := unscoped["ownerId"]; ok {
		t.Error("filter không được chứa ownerId khi ownerID là zero (admin xem tất cả)")
	}
	if _, ok := unscoped["status"]; ok {
		t.Error("filter không được chứa status khi status rỗng")
	}
}

func TestBuildListFilter_SearchEscapeRegex(t *testing.T) {
	filter := BuildListFilter(primitive.NilObjectID, "", "a.b*c")
	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatal("filter search phải có $or gồm 2 điều kiện (title, projectDescription)")
	}
	re, ok := or[0]["title"].(primitive.Regex)
	if !ok {
		t.Fatal("điều kiện title phải là primitive.Regex")
	}
	if re.Pattern == "a.b*c" {
		t.Error("pattern search phải được escape ký tự regex đặc biệt")
	}
	if re.Options != "i" {
		t.Errorf("regex search phải không phân biệt hoa thường, options = %s", re.Options)
	}
}
