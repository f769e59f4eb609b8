package severance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

var (
	twelve          = decimal.NewFromInt(12)
	thirty          = decimal.NewFromInt(30)
	six             = decimal.NewFromInt(6)
	oneEighty       = decimal.NewFromInt(180)
	indemnityFactor = decimal.NewFromFloat(1.5)
	indemnityCap    = decimal.NewFromInt(12)
)

// ComputeSeverance settles a termination. history is the six months before
// the termination and feeds the regularity average. A termination before the
// hire date is rejected with generic.ErrInvalidPeriod.
func ComputeSeverance(c Case, history payroll.SemesterHistory) (Result, error) {
	if c.HireDate.IsZero() || c.TerminationDate.IsZero() {
		return Result{}, &generic.InputError{Field: "hire_date/termination_date", Reason: "are required"}
	}
	if c.BasicRemuneration.IsNegative() {
		return Result{}, &generic.InputError{Field: "basic_remuneration", Reason: "must not be negative"}
	}
	tenure, err := generic.SpanInclusive(c.HireDate, c.TerminationDate)
	if err != nil {
		return Result{}, fmt.Errorf("termination on %s before hire on %s: %w", c.TerminationDate, c.HireDate, err)
	}

	r := Result{
		Cause:      c.Cause,
		Tenure:     tenure,
		Regularity: payroll.RegularAverage(history),
	}
	r.GratuityVacationBase = c.BasicRemuneration.Add(r.Regularity.Total)
	r.FundBase = r.GratuityVacationBase.Add(generic.Floor0(c.LastGratuitySixth))

	if r.Fund, err = prorated(r.FundBase, FundAnchor(c.HireDate, c.TerminationDate), c.TerminationDate); err != nil {
		return Result{}, err
	}
	if r.Gratuity, err = truncatedGratuity(r.GratuityVacationBase, c); err != nil {
		return Result{}, err
	}
	if r.Vacation, err = prorated(r.GratuityVacationBase, VacationAnchor(c.HireDate, c.TerminationDate), c.TerminationDate); err != nil {
		return Result{}, err
	}

	if c.PartTime {
		exclude(&r.Fund, "part time under four hours a day")
		exclude(&r.Vacation, "part time under four hours a day")
		r.Notes = append(r.Notes, "no severance fund or vacation for part time under four hours a day")
	}
	if c.ForfeitedVacationRecord && !r.Vacation.Excluded {
		exclude(&r.Vacation, "vacation record not met")
		r.Notes = append(r.Notes, "no truncated vacation: vacation record not met")
	}

	if c.Cause == CauseArbitraryDismissal {
		r.Indemnity = DismissalIndemnity(r.GratuityVacationBase, tenure)
	}

	r.TruncatedTotal = generic.Sum(r.Fund.Amount, r.Gratuity.Amount, r.Vacation.Amount)
	r.Total = r.TruncatedTotal.Add(r.Indemnity.Amount)
	return r, nil
}

// prorated pays base/12 per full month and base/12/30 per residual day from
// anchor to until inclusive.
func prorated(base decimal.Decimal, anchor, until generic.TimePoint) (Benefit, error) {
	b, err := elapsed(base, anchor, until)
	if err != nil {
		return Benefit{}, err
	}
	monthly := base.Div(twelve)
	b.Amount = generic.Floor0(generic.Sum(
		monthly.Mul(decimal.NewFromInt(int64(b.Months))),
		monthly.Div(thirty).Mul(decimal.NewFromInt(int64(b.Days))),
	))
	return b, nil
}

// truncatedGratuity pays base/6 per full month of the semester, less
// base/180 per absence day, floored at zero. Residual days are not paid.
func truncatedGratuity(base decimal.Decimal, c Case) (Benefit, error) {
	b, err := elapsed(base, GratuityAnchor(c.HireDate, c.TerminationDate), c.TerminationDate)
	if err != nil {
		return Benefit{}, err
	}
	gross := base.Div(six).Mul(decimal.NewFromInt(int64(b.Months)))
	b.AbsencePenalty = base.Div(oneEighty).Mul(decimal.NewFromInt(int64(max(c.SemesterAbsenceDays, 0))))
	b.Amount = generic.Floor0(gross.Sub(b.AbsencePenalty))
	return b, nil
}

func elapsed(base decimal.Decimal, anchor, until generic.TimePoint) (Benefit, error) {
	span, err := generic.SpanInclusive(anchor, until)
	if err != nil {
		return Benefit{}, err
	}
	return Benefit{
		Anchor:  anchor,
		Until:   until,
		Elapsed: span,
		Months:  span.TotalMonths(),
		Days:    span.Days,
		Base:    base,
	}, nil
}

// DismissalIndemnity is one and a half remunerations per year of tenure,
// prorated in twelfths per month and three-hundred-sixtieths per day, capped
// at twelve remunerations.
func DismissalIndemnity(base decimal.Decimal, tenure generic.Span) Indemnity {
	base = generic.Floor0(base)
	i := Indemnity{
		Applies: true,
		Tenure:  tenure,
		Base:    base,
		PerYear: base.Mul(indemnityFactor),
		Cap:     base.Mul(indemnityCap),
	}
	i.YearsAmount = i.PerYear.Mul(decimal.NewFromInt(int64(tenure.Years)))
	i.MonthsAmount = i.PerYear.Div(twelve).Mul(decimal.NewFromInt(int64(tenure.Months)))
	i.DaysAmount = i.PerYear.Div(twelve).Div(thirty).Mul(decimal.NewFromInt(int64(tenure.Days)))
	i.Uncapped = generic.Sum(i.YearsAmount, i.MonthsAmount, i.DaysAmount)

	i.Amount = generic.MinOf(i.Uncapped, i.Cap)
	i.Capped = i.Uncapped.GreaterThan(i.Cap)
	return i
}

func exclude(b *Benefit, reason string) {
	b.Excluded = true
	b.Reason = reason
	b.Amount = decimal.Zero
}
