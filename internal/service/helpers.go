package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money and distance columns are numeric(10,2).
const (
	maxAmountIntDigits = 8
	maxAmountScale     = 10
)

var maxAmount = decimal.RequireFromString("99999999.99")

// checkAmount rejects negative values and anything that does not fit the
// numeric(10,2) columns. The digit and exponent checks run before any
// comparison so that inputs like 1e2000000000 are never rescaled.
func checkAmount(value decimal.Decimal, field string) error {
	if value.IsNegative() {
		return invalidInput("%s must not be negative", field)
	}
	if value.IsZero() {
		return nil
	}
	if value.Exponent() < -maxAmountScale {
		return invalidInput("%s has too many decimal places", field)
	}
	if value.NumDigits()+int(value.Exponent()) > maxAmountIntDigits || value.GreaterThan(maxAmount) {
		return invalidInput("%s must not exceed %s", field, maxAmount.String())
	}
	return nil
}

func checkOptionalAmount(value *decimal.Decimal, field string) error {
	if value == nil {
		return nil
	}
	return checkAmount(*value, field)
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalidInput("%s must be a uuid", field)
	}
	return id, nil
}

func parseOptionalID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := parseID(*raw, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid time format")
}

func parseOptionalTime(raw *string, field string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := parseTime(*raw)
	if err != nil {
		return nil, invalidInput("%s must be a date", field)
	}
	return &parsed, nil
}

func trimmedPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil
	}
	return &v
}

// requireDriver returns the caller's driver profile id.
func requireDriver(driverID *uuid.UUID) (uuid.UUID, error) {
	if driverID == nil {
		return uuid.Nil, ErrDriverProfileNotFound
	}
	return *driverID, nil
}
