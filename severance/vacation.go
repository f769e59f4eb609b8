package severance

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// VacationIndemnity is the pay owed for vacation periods that expired without
// being taken: one remuneration for the vacation itself and one more as
// indemnity, per expired period.
type VacationIndemnity struct {
	Applies        bool            `json:"applies"`
	Reason         string          `json:"reason,omitempty"`
	Base           decimal.Decimal `json:"base"`
	ExpiredPeriods int             `json:"expired_periods"`
	VacationPay    decimal.Decimal `json:"vacation_pay"`
	Indemnity      decimal.Decimal `json:"indemnity"`
	Total          decimal.Decimal `json:"total"`
}

// ComputeUnusedVacationIndemnity pays base x periods twice. Part-time workers
// and employees who lost their vacation record are owed nothing; the result
// says why.
func ComputeUnusedVacationIndemnity(base decimal.Decimal, expiredPeriods int, partTime, forfeited bool) VacationIndemnity {
	v := VacationIndemnity{
		Base:           generic.Floor0(base),
		ExpiredPeriods: max(expiredPeriods, 0),
		VacationPay:    decimal.Zero,
		Indemnity:      decimal.Zero,
		Total:          decimal.Zero,
	}

	switch {
	case partTime:
		v.Reason = "part time under four hours a day has no vacation entitlement"
		return v
	case forfeited:
		v.Reason = "vacation record not met"
		return v
	}

	v.Applies = true
	v.VacationPay = v.Base.Mul(decimal.NewFromInt(int64(v.ExpiredPeriods)))
	v.Indemnity = v.VacationPay
	v.Total = v.VacationPay.Add(v.Indemnity)
	return v
}
