// Package global - Test các custom validator.
package global

import "testing"

type passwordInput struct {
	Password string `validate:"strong_password"`
}

type statusInput struct {
	Status string `validate:"proposal_status"`
}

type decisionInput struct {
	Decision string `validate:"review_decision"`
}

type textInput struct {
	Text string `validate:"no_xss"`
}

func TestValidateStrongPassword(t *testing.T) {
	InitValidator()

	valid := []string{"Abcdef12", "abc123!@#", "MatKhau9"}
	for _, p := range valid {
		if err := Validate.Struct(passwordInput{Password: p}); err != nil {
			t.Errorf("mật khẩu %q phải hợp lệ, lỗi: %v", p, err)
		}
	}

	invalid := []string{"ngắn", "abcdefgh", "12345678", "Ab1"}
	for _, p := range invalid {
		if err := Validate.Struct(passwordInput{Password: p}); err == nil {
			t.Errorf("mật khẩu %q phải bị từ chối", p)
		}
	}
}

func TestValidateProposalStatus(t *testing.T) {
	InitValidator()

	for _, s := range []string{"", "draft", "submitted", "under_review", "approved", "rejected", "revision_requested"} {
		if err := Validate.Struct(statusInput{Status: s}); err != nil {
			t.Errorf("trạng thái %q phải hợp lệ, lỗi: %v", s, err)
		}
	}
	if err := Validate.Struct(statusInput{Status: "pending"}); err == nil {
		t.Error("trạng thái không tồn tại phải bị từ chối")
	}
}

func TestValidateReviewDecision(t *testing.T) {
	InitValidator()

	for _, d := range []string{"approved", "rejected", "revision_requested"} {
		if err := Validate.Struct(decisionInput{Decision: d}); err != nil {
			t.Errorf("decision %q phải hợp lệ, lỗi: %v", d, err)
		}
	}
	for _, d := range []string{"", "maybe"} {
		if err := Validate.Struct(decisionInput{Decision: d}); err == nil {
			t.Errorf("decision %q phải bị từ chối", d)
		}
	}
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	if err := Validate.Struct(textInput{Text: "Tiêu đề bình thường"}); err != nil {
		t.Errorf("text bình thường phải hợp lệ, lỗi: %v", err)
	}
	for _, bad := range []string{"<script>alert(1)</script>", "a onclick=x", "javascript:void(0)"} {
		if err := Validate.Struct(textInput{Text: bad}); err == nil {
			t.Errorf("text %q phải bị từ chối", bad)
		}
	}
}
