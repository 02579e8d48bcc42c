package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/attendance"
	attendanceerrors "go-hrm/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type fakeAttendanceService struct {
	upsertFn         func(ctx context.Context, req attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error)
	clockInFn        func(ctx context.Context) (attendance.AttendanceResponse, error)
	clockOutFn       func(ctx context.Context) (attendance.AttendanceResponse, error)
	getAllFn         func(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error)
	monthlySummaryFn func(ctx context.Context, year, month int) ([]attendance.MonthlySummaryRow, error)
	deleteFn         func(ctx context.Context, id string) error
}

func (f *fakeAttendanceService) Upsert(ctx context.Context, req attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.upsertFn(ctx, req)
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	return f.clockInFn(ctx)
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	return f.clockOutFn(ctx)
}

func (f *fakeAttendanceService) GetAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeAttendanceService) MonthlySummary(ctx context.Context, year, month int) ([]attendance.MonthlySummaryRow, error) {
	return f.monthlySummaryFn(ctx, year, month)
}

func (f *fakeAttendanceService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestAttendanceHandler_Upsert(t *testing.T) {
	employeeID := uuid.NewString()
	svc := &fakeAttendanceService{
		upsertFn: func(ctx context.Context, req attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, employeeID, req.EmployeeID)
			assert.Equal(t, "08:00", req.CheckIn)
			return attendance.AttendanceResponse{EmployeeID: req.EmployeeID, WorkHours: dec("9"), Status: attendance.StatusPresent}, nil
		},
	}

	h := attendance.NewHandler(svc)
	c, w := newTestContext(http.MethodPut, "/attendances",
		`{"employee_id":"`+employeeID+`","work_date":"2026-03-02","check_in":"08:00","check_out":"17:00"}`)

	h.Upsert(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Ok)
	assert.Contains(t, string(env.Data), `"work_hours":"9"`)
}

func TestAttendanceHandler_Upsert_MissingWorkDate(t *testing.T) {
	h := attendance.NewHandler(&fakeAttendanceService{})
	c, w := newTestContext(http.MethodPut, "/attendances", `{"employee_id":"`+uuid.NewString()+`"}`)

	h.Upsert(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, w).Error.Code)
}

func TestAttendanceHandler_ClockInTwice(t *testing.T) {
	svc := &fakeAttendanceService{
		clockInFn: func(ctx context.Context) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		},
	}

	h := attendance.NewHandler(svc)
	c, w := newTestContext(http.MethodPost, "/attendances/clock-in", "")

	h.ClockIn(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATE", decodeEnvelope(t, w).Error.Code)
}

func TestAttendanceHandler_MonthlySummary(t *testing.T) {
	svc := &fakeAttendanceService{
		monthlySummaryFn: func(ctx context.Context, year, month int) ([]attendance.MonthlySummaryRow, error) {
			assert.Equal(t, 2026, year)
			assert.Equal(t, 2, month)
			return []attendance.MonthlySummaryRow{{FullName: "Ana Lim", PresentDays: 18}}, nil
		},
	}

	h := attendance.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/attendances/summary?year=2026&month=2", "")

	h.MonthlySummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"present_days":18`)
}

func TestAttendanceHandler_MonthlySummary_MissingMonth(t *testing.T) {
	h := attendance.NewHandler(&fakeAttendanceService{})
	c, w := newTestContext(http.MethodGet, "/attendances/summary?year=2026", "")

	h.MonthlySummary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
