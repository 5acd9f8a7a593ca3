// Package finance holds the pure work-order money and numbering rules.
package finance

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	// MaxTaxPercent bounds each of SGST and CGST
	MaxTaxPercent = decimal.NewFromInt(50)
	// MaxRetentionPercent bounds the retention percentage
	MaxRetentionPercent = decimal.NewFromInt(100)
)

// Input is the set of values the derived amounts depend on
type Input struct {
	TotalAmount      decimal.Decimal
	HasGST           bool
	SGSTPercent      decimal.Decimal
	CGSTPercent      decimal.Decimal
	RetentionPercent decimal.Decimal
}

// Breakdown holds the amounts derived from an Input
type Breakdown struct {
	SGSTAmount      decimal.Decimal
	CGSTAmount      decimal.Decimal
	GrossAmount     decimal.Decimal
	RetentionAmount decimal.Decimal
	NetAmount       decimal.Decimal
}

// Clamp bounds the percentages of in to their valid ranges:
// SGST and CGST to [0,50], retention to [0,100].
func Clamp(in Input) Input {
	in.SGSTPercent = clampPercent(in.SGSTPercent, MaxTaxPercent)
	in.CGSTPercent = clampPercent(in.CGSTPercent, MaxTaxPercent)
	in.RetentionPercent = clampPercent(in.RetentionPercent, MaxRetentionPercent)
	return in
}

func clampPercent(p, max decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(max) {
		return max
	}
	return p
}

// Compute derives tax, gross, retention and net amounts. Arithmetic is exact;
// rounding happens only where amounts are displayed.
//
//	gross     = total + sgst + cgst
//	retention = gross * retention% / 100
//	net       = gross - retention
//
// When HasGST is false both tax amounts are zero whatever the percentages.
func Compute(in Input) Breakdown {
	in = Clamp(in)

	sgst, cgst := decimal.Zero, decimal.Zero
	if in.HasGST {
		sgst = percentOf(in.TotalAmount, in.SGSTPercent)
		cgst = percentOf(in.TotalAmount, in.CGSTPercent)
	}

	gross := in.TotalAmount.Add(sgst).Add(cgst)
	retention := percentOf(gross, in.RetentionPercent)

	return Breakdown{
		SGSTAmount:      sgst,
		CGSTAmount:      cgst,
		GrossAmount:     gross,
		RetentionAmount: retention,
		NetAmount:       gross.Sub(retention),
	}
}

// percentOf multiplies before dividing so a two-place amount times a
// two-place percentage stays exact.
func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}
