package statistics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrm/internal/statistics"
	statisticserrors "go-hrm/internal/statistics/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeStatisticsService struct {
	statistics.Service
	salaryByQuarterFn func(ctx context.Context, year int) ([]statistics.QuarterlySalaryStat, error)
	payrollYearsFn    func(ctx context.Context) ([]int, error)
}

func (f *fakeStatisticsService) SalaryByQuarter(ctx context.Context, year int) ([]statistics.QuarterlySalaryStat, error) {
	return f.salaryByQuarterFn(ctx, year)
}

func (f *fakeStatisticsService) PayrollYears(ctx context.Context) ([]int, error) {
	return f.payrollYearsFn(ctx)
}

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestStatisticsHandler_SalaryByQuarter(t *testing.T) {
	svc := &fakeStatisticsService{
		salaryByQuarterFn: func(ctx context.Context, year int) ([]statistics.QuarterlySalaryStat, error) {
			assert.Equal(t, 2026, year)
			return []statistics.QuarterlySalaryStat{{Quarter: 1, MonthCount: 3, TotalGross: dec("9000")}}, nil
		},
	}
	c, w := newTestContext("/statistics/payroll/quarterly?year=2026")

	statistics.NewHandler(svc).SalaryByQuarter(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"month_count":3`)
	assert.Contains(t, w.Body.String(), `"total_gross":"9000"`)
}

func TestStatisticsHandler_SalaryByQuarter_Errors(t *testing.T) {
	svc := &fakeStatisticsService{
		salaryByQuarterFn: func(context.Context, int) ([]statistics.QuarterlySalaryStat, error) {
			return nil, statisticserrors.ErrInvalidYear
		},
	}

	c, w := newTestContext("/statistics/payroll/quarterly")
	statistics.NewHandler(svc).SalaryByQuarter(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newTestContext("/statistics/payroll/quarterly?year=12")
	statistics.NewHandler(svc).SalaryByQuarter(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"INVALID_INPUT"`)
}

func TestStatisticsHandler_PayrollYears(t *testing.T) {
	svc := &fakeStatisticsService{
		payrollYearsFn: func(context.Context) ([]int, error) { return []int{2026, 2025}, nil },
	}
	c, w := newTestContext("/statistics/payroll/years")

	statistics.NewHandler(svc).PayrollYears(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[2026,2025]`)
}
