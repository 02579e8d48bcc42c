package statistics_test

import (
	"context"
	"errors"
	"testing"

	"go-hrm/internal/statistics"
	statisticserrors "go-hrm/internal/statistics/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeStatisticsRepository struct {
	departmentCountsFn func(ctx context.Context) ([]statistics.DepartmentStat, error)
	positionCountsFn   func(ctx context.Context) ([]statistics.PositionStat, error)
	genderCountsFn     func(ctx context.Context) ([]statistics.GenderStat, error)
	payrollYearsFn     func(ctx context.Context) ([]int, error)
	monthlyTotalsFn    func(ctx context.Context, year int) ([]statistics.MonthlyTotals, error)
}

func (f *fakeStatisticsRepository) DepartmentCounts(ctx context.Context) ([]statistics.DepartmentStat, error) {
	if f.departmentCountsFn != nil {
		return f.departmentCountsFn(ctx)
	}
	return nil, nil
}

func (f *fakeStatisticsRepository) PositionCounts(ctx context.Context) ([]statistics.PositionStat, error) {
	if f.positionCountsFn != nil {
		return f.positionCountsFn(ctx)
	}
	return nil, nil
}

func (f *fakeStatisticsRepository) GenderCounts(ctx context.Context) ([]statistics.GenderStat, error) {
	if f.genderCountsFn != nil {
		return f.genderCountsFn(ctx)
	}
	return nil, nil
}

func (f *fakeStatisticsRepository) PayrollYears(ctx context.Context) ([]int, error) {
	if f.payrollYearsFn != nil {
		return f.payrollYearsFn(ctx)
	}
	return nil, nil
}

func (f *fakeStatisticsRepository) MonthlyTotals(ctx context.Context, year int) ([]statistics.MonthlyTotals, error) {
	if f.monthlyTotalsFn != nil {
		return f.monthlyTotalsFn(ctx, year)
	}
	return nil, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func month(m, count int, gross, net string) statistics.MonthlyTotals {
	return statistics.MonthlyTotals{Month: m, EmployeeCount: count, TotalGross: dec(gross), TotalNet: dec(net)}
}

func TestStatisticsService_SalaryByMonth(t *testing.T) {
	repo := &fakeStatisticsRepository{
		monthlyTotalsFn: func(ctx context.Context, year int) ([]statistics.MonthlyTotals, error) {
			assert.Equal(t, 2026, year)
			return []statistics.MonthlyTotals{
				month(2, 3, "1000", "900"),
				month(1, 2, "3000", "2500"),
			}, nil
		},
	}
	svc := statistics.NewService(repo)

	got, err := svc.SalaryByMonth(context.Background(), 2026)

	assert.NoError(t, err)
	if assert.Len(t, got, 2) {
		assert.Equal(t, 1, got[0].Month)
		assertDecEqual(t, "1500", got[0].AverageGross)
		assertDecEqual(t, "1250", got[0].AverageNet)
		assert.Equal(t, 2, got[1].Month)
		assertDecEqual(t, "333.33", got[1].AverageGross)
		assertDecEqual(t, "300", got[1].AverageNet)
	}
}

func TestStatisticsService_SalaryByQuarter(t *testing.T) {
	repo := &fakeStatisticsRepository{
		monthlyTotalsFn: func(context.Context, int) ([]statistics.MonthlyTotals, error) {
			return []statistics.MonthlyTotals{
				month(1, 2, "2000", "1800"),
				month(3, 4, "4000", "3000"),
				month(7, 0, "0", "0"),
				month(12, 1, "700", "600"),
			}, nil
		},
	}
	svc := statistics.NewService(repo)

	got, err := svc.SalaryByQuarter(context.Background(), 2026)

	assert.NoError(t, err)
	if assert.Len(t, got, 3) {
		assert.Equal(t, 1, got[0].Quarter)
		assert.Equal(t, 2, got[0].MonthCount)
		assert.Equal(t, 6, got[0].EmployeeCount)
		assertDecEqual(t, "6000", got[0].TotalGross)
		assertDecEqual(t, "1000", got[0].AverageGross)
		assertDecEqual(t, "800", got[0].AverageNet)

		assert.Equal(t, 3, got[1].Quarter)
		assertDecEqual(t, "0", got[1].AverageGross)

		assert.Equal(t, 4, got[2].Quarter)
		assert.Equal(t, 1, got[2].MonthCount)
		assertDecEqual(t, "600", got[2].AverageNet)
	}
}

func TestStatisticsService_RejectsYearOutOfRange(t *testing.T) {
	repo := &fakeStatisticsRepository{
		monthlyTotalsFn: func(context.Context, int) ([]statistics.MonthlyTotals, error) {
			t.Fatal("repository must not be queried")
			return nil, nil
		},
	}
	svc := statistics.NewService(repo)

	_, err := svc.SalaryByMonth(context.Background(), 0)
	assert.ErrorIs(t, err, statisticserrors.ErrInvalidYear)

	_, err = svc.SalaryByQuarter(context.Background(), 10000)
	assert.ErrorIs(t, err, statisticserrors.ErrInvalidYear)
}

func TestStatisticsService_EmployeesByGender(t *testing.T) {
	repo := &fakeStatisticsRepository{
		genderCountsFn: func(context.Context) ([]statistics.GenderStat, error) {
			return []statistics.GenderStat{
				{Gender: "M", EmployeeCount: 3},
				{Gender: "F", EmployeeCount: 4},
				{Gender: "male", EmployeeCount: 2},
				{Gender: "", EmployeeCount: 1},
				{Gender: "x", EmployeeCount: 1},
				{Gender: "O", EmployeeCount: 1},
			}, nil
		},
	}
	svc := statistics.NewService(repo)

	got, err := svc.EmployeesByGender(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []statistics.GenderStat{
		{Gender: statistics.GenderMale, EmployeeCount: 5},
		{Gender: statistics.GenderFemale, EmployeeCount: 4},
		{Gender: statistics.GenderUnknown, EmployeeCount: 2},
		{Gender: statistics.GenderOther, EmployeeCount: 1},
	}, got)
}

func TestStatisticsService_EmployeesByPosition_RoundsAverage(t *testing.T) {
	repo := &fakeStatisticsRepository{
		positionCountsFn: func(context.Context) ([]statistics.PositionStat, error) {
			return []statistics.PositionStat{{Position: "Engineer", EmployeeCount: 3, AverageSalary: dec("1333.333333")}}, nil
		},
	}
	svc := statistics.NewService(repo)

	got, err := svc.EmployeesByPosition(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, got, 1) {
		assertDecEqual(t, "1333.33", got[0].AverageSalary)
	}
}

func TestStatisticsService_EmptyResultsAreNotNil(t *testing.T) {
	svc := statistics.NewService(&fakeStatisticsRepository{})

	depts, err := svc.EmployeesByDepartment(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, depts)

	years, err := svc.PayrollYears(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, years)

	quarters, err := svc.SalaryByQuarter(context.Background(), 2026)
	assert.NoError(t, err)
	assert.NotNil(t, quarters)
}

func TestStatisticsService_PropagatesRepositoryError(t *testing.T) {
	boom := errors.New("db down")
	svc := statistics.NewService(&fakeStatisticsRepository{
		departmentCountsFn: func(context.Context) ([]statistics.DepartmentStat, error) { return nil, boom },
	})

	_, err := svc.EmployeesByDepartment(context.Background())

	assert.ErrorIs(t, err, boom)
}
