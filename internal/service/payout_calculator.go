package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	payoutThreshold = decimal.NewFromInt(2250)
	payoutBaseRate  = decimal.RequireFromString("0.30")
	payoutBonusRate = decimal.RequireFromString("0.70")
)

// CalculatePayout pays 30% of revenue up to the threshold and 70% of
// everything above it, rounded to cents.
func CalculatePayout(revenue decimal.Decimal) decimal.Decimal {
	base := decimal.Min(revenue, payoutThreshold).Mul(payoutBaseRate)
	bonus := decimal.Max(revenue.Sub(payoutThreshold), decimal.Zero).Mul(payoutBonusRate)
	return base.Add(bonus).Round(2)
}

func PayoutFormula(revenue decimal.Decimal) string {
	r := revenue.String()
	return fmt.Sprintf("min(%s, 2250) × 0.30 + max(%s - 2250, 0) × 0.70", r, r)
}

// PreviewPayout backs the public calculator endpoint.
func PreviewPayout(revenue decimal.Decimal) (decimal.Decimal, string, error) {
	if err := checkAmount(revenue, "revenue"); err != nil {
		return decimal.Zero, "", err
	}
	return CalculatePayout(revenue), PayoutFormula(revenue), nil
}
