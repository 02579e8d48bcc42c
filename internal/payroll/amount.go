package payroll

import (
	"regexp"
	"strings"

	payrollerrors "go-hrm/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

var groupedAmount = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseAmount accepts plain decimals and thousands-separated input such as
// "1,250.50". Commas anywhere but between full groups of three are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, payrollerrors.ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		if !groupedAmount.MatchString(s) {
			return decimal.Zero, payrollerrors.ErrInvalidAmount
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, payrollerrors.ErrInvalidAmount.WithErr(err)
	}
	return d, nil
}

// ParseOptionalAmount treats blank input as zero.
func ParseOptionalAmount(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(raw)
}
