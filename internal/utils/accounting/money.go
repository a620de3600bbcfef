package accounting

import "github.com/shopspring/decimal"

// Epsilon is the tolerance used for every monetary equality/balance check.
// Sums of independently rounded lines can legitimately differ by a cent,
// so exact comparison would produce false "unbalanced" findings.
var Epsilon = decimal.New(1, -2) // 0.01

// Round2 rounds a monetary amount to 2 decimal places, half away from zero.
// Rounding happens only where an amount is persisted or displayed;
// intermediate sums keep full precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinTolerance reports whether two amounts are equal within Epsilon.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}
