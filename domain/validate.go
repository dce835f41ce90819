package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Optional +1 or 1- prefix, then XXX-XXX-XXXX with separators optional.
	phonePattern = regexp.MustCompile(`^(\+1|1-)?\d{3}-?\d{3}-?\d{4}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidatePhone accepts an empty phone; a present phone must match the pattern.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhoneFormat
	}
	return nil
}

// ValidateEmail checks basic email syntax. Uniqueness is checked against the
// store by the mutation service, not here.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return WrapError(ErrCodeInvalid, "invalid email address", nil)
	}
	return nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return WrapError(ErrCodeInvalid, "name must not be empty", nil)
	}
	return nil
}

func ValidatePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrice
	}
	return nil
}

func ValidateStock(stock int) error {
	if stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// ValidateProductIDs only checks non-emptiness; resolution against the store
// belongs to the order service.
func ValidateProductIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptyProductList
	}
	return nil
}
