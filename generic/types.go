/*
Package generic provides the domain-agnostic primitives of the payroll engine.

PURPOSE:
  This package contains the money and calendar building blocks that every
  calculation shares. Whether computing a monthly payslip, a severance
  settlement or an employer cost sheet, the same helpers handle decimal
  arithmetic, zero floors, ratios and date spans.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: amounts are plain decimal.Decimal values (soles)
  - Floor0: the "negative means nothing is owed" clamp used by every engine
  - Ratio: division that yields zero instead of failing on a zero denominator
  - Rate: a percentage expressed as a fraction (0.13 = 13%)

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point drift across a
     twelve-month chain of projections
  2. Totality: helpers never panic on zero or negative input
  3. Immutability: every helper returns a new value

USAGE:
  base := generic.Money(3000)
  pension := base.Mul(generic.Rate(0.13))       // 390
  net := generic.Floor0(base.Sub(pension))      // never negative
  ratio := generic.Ratio(net, base)             // 0.87

SEE ALSO:
  - time.go: TimePoint and calendar arithmetic
  - period.go: Periods and elapsed service spans
  - errors.go: Sentinel errors shared by the domain packages
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Amounts in soles, always decimal
// =============================================================================

// Money converts a float literal to a decimal amount.
func Money(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// MoneyFromInt converts an integer amount to a decimal amount.
func MoneyFromInt(value int) decimal.Decimal {
	return decimal.NewFromInt(int64(value))
}

// Rate converts a fractional percentage (0.0174 = 1.74%) to a decimal.
func Rate(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// CLAMPS AND AGGREGATES
// =============================================================================

// Floor0 clamps negative amounts to zero. A negative withholding or benefit
// means nothing is owed; it is not an error.
func Floor0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func MinOf(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func MaxOf(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Sum adds all amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Ratio returns numerator/denominator, or zero when the denominator is not positive.
func Ratio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if !denominator.IsPositive() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}

// Cents rounds an amount to two decimal places for display and comparisons.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
