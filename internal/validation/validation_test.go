package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"academy-enrollment-api/internal/models"
)

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello  "); got != "hello" {
		t.Errorf("Expected 'hello', got '%s'", got)
	}
	if got := SanitizeString("a\x00b\x07c"); got != "abc" {
		t.Errorf("Expected control characters stripped, got '%s'", got)
	}
	if got := SanitizeString("line1\nline2"); got != "line1\nline2" {
		t.Errorf("Expected newlines preserved, got '%s'", got)
	}
}

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID(uuid.New().String(), "id"); err != nil {
		t.Errorf("Expected valid UUID to pass, got %v", err)
	}
	if err := ValidateUUID("", "id"); err == nil {
		t.Error("Expected empty UUID to fail")
	}
	if err := ValidateUUID("not-a-uuid", "id"); err == nil {
		t.Error("Expected malformed UUID to fail")
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("learner@example.com"); err != nil {
		t.Errorf("Expected valid email to pass, got %v", err)
	}
	for _, bad := range []string{"", "no-at-sign", "two@@example.com", "nodomain@"} {
		if err := ValidateEmail(bad); err == nil {
			t.Errorf("Expected '%s' to fail", bad)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Errorf("Expected valid password to pass, got %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("Expected short password to fail")
	}
	if err := ValidatePassword(strings.Repeat("x", 129)); err == nil {
		t.Error("Expected oversized password to fail")
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	for _, m := range []models.PaymentMethod{models.PaymentMethodCard, models.PaymentMethodTransfer, models.PaymentMethodCrypto} {
		if err := ValidatePaymentMethod(m); err != nil {
			t.Errorf("Expected %s to be valid, got %v", m, err)
		}
	}
	if err := ValidatePaymentMethod("paypal"); err == nil {
		t.Error("Expected unknown payment method to fail")
	}
	if err := ValidatePaymentMethod(""); err == nil {
		t.Error("Expected empty payment method to fail")
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(0); err != nil {
		t.Errorf("Expected zero amount to pass, got %v", err)
	}
	if err := ValidateAmount(-1); err == nil {
		t.Error("Expected negative amount to fail")
	}
	if err := ValidateAmount(1_000_001); err == nil {
		t.Error("Expected amount above cap to fail")
	}
}

func TestValidateEnrollmentRequest(t *testing.T) {
	valid := models.EnrollmentRequest{
		ProgramID:     "core-mastery",
		PaymentMethod: models.PaymentMethodCard,
		Amount:        32,
		TransactionID: "txn_123",
	}
	if err := ValidateEnrollmentRequest(valid); err != nil {
		t.Errorf("Expected valid request to pass, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.EnrollmentRequest)
	}{
		{"missing program", func(r *models.EnrollmentRequest) { r.ProgramID = "" }},
		{"bad payment method", func(r *models.EnrollmentRequest) { r.PaymentMethod = "barter" }},
		{"negative amount", func(r *models.EnrollmentRequest) { r.Amount = -5 }},
		{"missing transaction", func(r *models.EnrollmentRequest) { r.TransactionID = "" }},
		{"oversized transaction", func(r *models.EnrollmentRequest) { r.TransactionID = strings.Repeat("t", 129) }},
	}
	for _, tt := range tests {
		req := valid
		tt.mutate(&req)
		if err := ValidateEnrollmentRequest(req); err == nil {
			t.Errorf("%s: expected validation to fail", tt.name)
		}
	}
}

func TestValidateTimeString(t *testing.T) {
	parsed, err := ValidateTimeString("2026-09-01T10:00:00Z")
	if err != nil {
		t.Fatalf("Expected RFC 3339 timestamp to pass, got %v", err)
	}
	if parsed.Year() != 2026 || parsed.Month() != 9 {
		t.Errorf("Unexpected parse result: %v", parsed)
	}

	if _, err := ValidateTimeString(""); err == nil {
		t.Error("Expected empty timestamp to fail")
	}
	if _, err := ValidateTimeString("01/09/2026"); err == nil {
		t.Error("Expected non-RFC3339 timestamp to fail")
	}
}
