package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Adjustment categories. Tags are matched exactly when summing, so rows
// stored with any other spelling contribute to no total.
const (
	CategoryAllowance = "ALLOWANCE"
	CategoryBonus     = "BONUS"
	CategoryPenalty   = "PENALTY"
	CategoryDeduction = "DEDUCTION"
	CategoryOvertime  = "OVERTIME"
)

var categories = map[string]struct{}{
	CategoryAllowance: {},
	CategoryBonus:     {},
	CategoryPenalty:   {},
	CategoryDeduction: {},
	CategoryOvertime:  {},
}

// NormalizeCategory trims and upper-cases raw and reports whether the
// result is a recognized category.
func NormalizeCategory(raw string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(raw))
	_, ok := categories[c]
	return c, ok
}

// Totals are the per-category sums of a payroll's adjustments.
type Totals struct {
	Overtime  decimal.Decimal
	Allowance decimal.Decimal
	Bonus     decimal.Decimal
	Penalty   decimal.Decimal
	Deduction decimal.Decimal
}

// SumAdjustments groups adjustments by exact tag and sums each group.
func SumAdjustments(adjustments []PayrollAdjustment) Totals {
	sums := make(map[string]decimal.Decimal, len(categories))
	for _, a := range adjustments {
		sums[a.AdjType] = sums[a.AdjType].Add(a.Amount)
	}

	// A missing key yields the zero Decimal, which is 0.
	return Totals{
		Overtime:  sums[CategoryOvertime],
		Allowance: sums[CategoryAllowance],
		Bonus:     sums[CategoryBonus],
		Penalty:   sums[CategoryPenalty],
		Deduction: sums[CategoryDeduction],
	}
}

// ComputeGrossNet returns gross = basic + overtime + allowance + bonus - penalty
// and net = gross - deduction. Results are not clamped.
func ComputeGrossNet(basic, overtime, allowance, bonus, penalty, deduction decimal.Decimal) (gross, net decimal.Decimal) {
	gross = basic.Add(overtime).Add(allowance).Add(bonus).Sub(penalty)
	net = gross.Sub(deduction)
	return gross, net
}

// ApplyTotals overwrites the aggregate fields with t and refreshes Gross and Net.
func (p *Payroll) ApplyTotals(t Totals) {
	p.OvertimePay = t.Overtime
	p.TotalAllowance = t.Allowance
	p.TotalBonus = t.Bonus
	p.TotalPenalty = t.Penalty
	p.TotalDeduction = t.Deduction
	p.refreshGrossNet()
}

func (p *Payroll) refreshGrossNet() {
	p.Gross, p.Net = ComputeGrossNet(
		p.BasicSalary,
		p.OvertimePay,
		p.TotalAllowance,
		p.TotalBonus,
		p.TotalPenalty,
		p.TotalDeduction,
	)
}
