package statistics

import (
	"context"
	"sort"
	"strings"

	"go-hrm/internal/shared/contextutil"
	statisticserrors "go-hrm/internal/statistics/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	minYear = 1900
	maxYear = 9999

	GenderMale    = "Male"
	GenderFemale  = "Female"
	GenderOther   = "Other"
	GenderUnknown = "Unknown"
)

//go:generate mockgen -source=statistics_service.go -destination=mock/statistics_service_mock.go -package=mock
type Service interface {
	EmployeesByDepartment(ctx context.Context) ([]DepartmentStat, error)
	EmployeesByPosition(ctx context.Context) ([]PositionStat, error)
	EmployeesByGender(ctx context.Context) ([]GenderStat, error)
	PayrollYears(ctx context.Context) ([]int, error)
	SalaryByMonth(ctx context.Context, year int) ([]MonthlySalaryStat, error)
	SalaryByQuarter(ctx context.Context, year int) ([]QuarterlySalaryStat, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("statistics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("statistics.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) EmployeesByDepartment(ctx context.Context) ([]DepartmentStat, error) {
	rows, err := s.repo.DepartmentCounts(ctx)
	if err != nil {
		return nil, s.queryFailed(ctx, "departments", err)
	}
	return nonNil(rows), nil
}

func (s *service) EmployeesByPosition(ctx context.Context) ([]PositionStat, error) {
	rows, err := s.repo.PositionCounts(ctx)
	if err != nil {
		return nil, s.queryFailed(ctx, "positions", err)
	}
	for i := range rows {
		rows[i].AverageSalary = rows[i].AverageSalary.Round(2)
	}
	return nonNil(rows), nil
}

// EmployeesByGender folds stored values onto display labels and orders by
// count, largest first.
func (s *service) EmployeesByGender(ctx context.Context) ([]GenderStat, error) {
	rows, err := s.repo.GenderCounts(ctx)
	if err != nil {
		return nil, s.queryFailed(ctx, "genders", err)
	}

	counts := make(map[string]int, 4)
	var order []string
	for _, r := range rows {
		label := GenderLabel(r.Gender)
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label] += r.EmployeeCount
	}

	out := make([]GenderStat, 0, len(order))
	for _, label := range order {
		out = append(out, GenderStat{Gender: label, EmployeeCount: counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EmployeeCount != out[j].EmployeeCount {
			return out[i].EmployeeCount > out[j].EmployeeCount
		}
		return out[i].Gender < out[j].Gender
	})
	return out, nil
}

func (s *service) PayrollYears(ctx context.Context) ([]int, error) {
	years, err := s.repo.PayrollYears(ctx)
	if err != nil {
		return nil, s.queryFailed(ctx, "payroll years", err)
	}
	return nonNil(years), nil
}

func (s *service) SalaryByMonth(ctx context.Context, year int) ([]MonthlySalaryStat, error) {
	if year < minYear || year > maxYear {
		return nil, statisticserrors.ErrInvalidYear
	}

	rows, err := s.repo.MonthlyTotals(ctx, year)
	if err != nil {
		return nil, s.queryFailed(ctx, "salary by month", err)
	}

	out := make([]MonthlySalaryStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonthlySalaryStat{
			Month:         r.Month,
			EmployeeCount: r.EmployeeCount,
			TotalGross:    r.TotalGross,
			TotalNet:      r.TotalNet,
			AverageGross:  average(r.TotalGross, r.EmployeeCount),
			AverageNet:    average(r.TotalNet, r.EmployeeCount),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// SalaryByQuarter folds the months with data into quarters. Averages are
// weighted by payroll count, not by month.
func (s *service) SalaryByQuarter(ctx context.Context, year int) ([]QuarterlySalaryStat, error) {
	months, err := s.SalaryByMonth(ctx, year)
	if err != nil {
		return nil, err
	}

	var out []QuarterlySalaryStat
	for _, m := range months {
		q := (m.Month-1)/3 + 1
		if len(out) == 0 || out[len(out)-1].Quarter != q {
			out = append(out, QuarterlySalaryStat{Quarter: q})
		}
		cur := &out[len(out)-1]
		cur.MonthCount++
		cur.EmployeeCount += m.EmployeeCount
		cur.TotalGross = cur.TotalGross.Add(m.TotalGross)
		cur.TotalNet = cur.TotalNet.Add(m.TotalNet)
	}
	for i := range out {
		out[i].AverageGross = average(out[i].TotalGross, out[i].EmployeeCount)
		out[i].AverageNet = average(out[i].TotalNet, out[i].EmployeeCount)
	}
	return nonNil(out), nil
}

// GenderLabel maps M, F and O (or their spelled-out forms) to labels; any
// other value is Unknown.
func GenderLabel(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M", "MALE":
		return GenderMale
	case "F", "FEMALE":
		return GenderFemale
	case "O", "OTHER":
		return GenderOther
	}
	return GenderUnknown
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(count)), 2)
}

func (s *service) queryFailed(ctx context.Context, what string, err error) error {
	contextutil.GetLogger(ctx, s.logger).Error("statistics query failed",
		zap.String("statistic", what),
		zap.Error(err),
	)
	return err
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
