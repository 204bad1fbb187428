package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"academy-enrollment-api/internal/models"
)

var (
	uuidRegex  = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// SanitizeString strips control characters and trims whitespace.
func SanitizeString(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)

	return strings.TrimSpace(s)
}

func ValidateUUID(id, fieldName string) error {
	if id == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: "is required",
		}
	}

	id = SanitizeString(id)

	if !uuidRegex.MatchString(strings.ToLower(id)) {
		return &ValidationError{
			Field:   fieldName,
			Message: "must be a valid UUID v4",
		}
	}

	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{
			Field:   "email",
			Message: "is required",
		}
	}

	if len(email) > 254 || !emailRegex.MatchString(email) {
		return &ValidationError{
			Field:   "email",
			Message: "must be a valid email address",
		}
	}

	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{
			Field:   "password",
			Message: "must be at least 8 characters",
		}
	}

	if len(password) > 128 {
		return &ValidationError{
			Field:   "password",
			Message: "cannot exceed 128 characters",
		}
	}

	return nil
}

func ValidatePaymentMethod(m models.PaymentMethod) error {
	switch m {
	case models.PaymentMethodCard, models.PaymentMethodTransfer, models.PaymentMethodCrypto:
		return nil
	case "":
		return &ValidationError{
			Field:   "paymentMethod",
			Message: "is required",
		}
	default:
		return &ValidationError{
			Field:   "paymentMethod",
			Message: "must be one of: card, transfer, crypto",
		}
	}
}

func ValidateAmount(amount float64) error {
	if amount < 0 {
		return &ValidationError{
			Field:   "amount",
			Message: "must be non-negative",
		}
	}

	maxAmount := float64(1_000_000)
	if amount > maxAmount {
		return &ValidationError{
			Field:   "amount",
			Message: "exceeds maximum allowed amount",
		}
	}

	return nil
}

func ValidateEnrollmentRequest(req models.EnrollmentRequest) error {
	if req.ProgramID == "" {
		return &ValidationError{
			Field:   "programId",
			Message: "is required",
		}
	}

	if err := ValidatePaymentMethod(req.PaymentMethod); err != nil {
		return err
	}

	if err := ValidateAmount(req.Amount); err != nil {
		return err
	}

	if req.TransactionID == "" {
		return &ValidationError{
			Field:   "transactionId",
			Message: "is required",
		}
	}

	if len(req.TransactionID) > 128 {
		return &ValidationError{
			Field:   "transactionId",
			Message: "cannot exceed 128 characters",
		}
	}

	return nil
}

func ValidateTimeString(timeStr string) (time.Time, error) {
	if timeStr == "" {
		return time.Time{}, &ValidationError{
			Field:   "time",
			Message: "is required",
		}
	}

	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return time.Time{}, &ValidationError{
			Field:   "time",
			Message: "must be a valid RFC3339 timestamp",
		}
	}

	return t, nil
}
