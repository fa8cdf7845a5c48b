package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/staffcore/payroll-backend-go/internal/domain/attendance"
	"github.com/staffcore/payroll-backend-go/internal/domain/payroll"
	"github.com/staffcore/payroll-backend-go/internal/domain/salary"
	"github.com/staffcore/payroll-backend-go/internal/domain/staff"
	"github.com/staffcore/payroll-backend-go/internal/handler/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunService struct {
	generateFn func(ctx context.Context, req payroll.GenerateRunRequest, actor string) (payroll.RunResponse, error)
	getFn      func(ctx context.Context, id string) (payroll.RunResponse, error)
	approveFn  func(ctx context.Context, id string, actor string) (payroll.RunResponse, error)
	lockFn     func(ctx context.Context, id string, actor string) (payroll.RunResponse, error)
	rejectFn   func(ctx context.Context, id string) (payroll.RunResponse, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubRunService) Generate(ctx context.Context, req payroll.GenerateRunRequest, actor string) (payroll.RunResponse, error) {
	return s.generateFn(ctx, req, actor)
}

func (s *stubRunService) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	return s.getFn(ctx, id)
}

func (s *stubRunService) ListRuns(context.Context, payroll.RunFilter) ([]payroll.RunResponse, error) {
	return nil, nil
}

func (s *stubRunService) ListRunPayslips(context.Context, string) ([]payroll.PayslipResponse, error) {
	return nil, nil
}

func (s *stubRunService) Approve(ctx context.Context, id string, actor string) (payroll.RunResponse, error) {
	return s.approveFn(ctx, id, actor)
}

func (s *stubRunService) Lock(ctx context.Context, id string, actor string) (payroll.RunResponse, error) {
	return s.lockFn(ctx, id, actor)
}

func (s *stubRunService) Reject(ctx context.Context, id string) (payroll.RunResponse, error) {
	return s.rejectFn(ctx, id)
}

func (s *stubRunService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubPayslipService struct {
	computeFn func(ctx context.Context, staffID string, month, year int) (payroll.PayslipResponse, error)
}

func (s *stubPayslipService) ComputePayslip(ctx context.Context, staffID string, month, year int) (payroll.PayslipResponse, error) {
	return s.computeFn(ctx, staffID, month, year)
}

type stubRegistryService struct{}

func (stubRegistryService) CreateStaff(context.Context, staff.CreateStaffRequest) (staff.StaffResponse, error) {
	return staff.StaffResponse{}, nil
}

func (stubRegistryService) GetStaff(context.Context, string) (staff.StaffResponse, error) {
	return staff.StaffResponse{}, nil
}

func (stubRegistryService) ListStaff(context.Context, staff.ListFilter) ([]staff.StaffResponse, error) {
	return nil, nil
}

func (stubRegistryService) UpdateStaffStatus(context.Context, string, staff.UpdateStatusRequest) (staff.StaffResponse, error) {
	return staff.StaffResponse{}, nil
}

func (stubRegistryService) AddSalaryRecord(context.Context, salary.CreateSalaryRecordRequest) (salary.SalaryRecordResponse, error) {
	return salary.SalaryRecordResponse{}, nil
}

func (stubRegistryService) ListSalaryRecords(context.Context, string) ([]salary.SalaryRecordResponse, error) {
	return nil, nil
}

func (stubRegistryService) RecordEvent(context.Context, attendance.RecordEventRequest) (attendance.EventResponse, error) {
	return attendance.EventResponse{}, nil
}

func (stubRegistryService) ListEvents(context.Context, string, int, int) ([]attendance.EventResponse, error) {
	return nil, nil
}

func newTestRouter(runSvc payroll.RunService, payslipSvc payroll.PayslipService) http.Handler {
	staffHandler := NewStaffHandler(stubRegistryService{})
	payrollHandler := NewPayrollHandler(runSvc, payslipSvc)
	return NewRouter("test", staffHandler, payrollHandler)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestGenerateRunEndpoint(t *testing.T) {
	runSvc := &stubRunService{
		generateFn: func(_ context.Context, req payroll.GenerateRunRequest, actor string) (payroll.RunResponse, error) {
			assert.Equal(t, 5, req.PeriodMonth)
			assert.Equal(t, 2025, req.PeriodYear)
			assert.Equal(t, "hr.manager", actor)
			return payroll.RunResponse{ID: "run-1", PeriodMonth: 5, PeriodYear: 2025, Status: "draft", CreatedBy: actor}, nil
		},
	}
	router := newTestRouter(runSvc, &stubPayslipService{})

	payload := bytes.NewBufferString(`{"month": 5, "year": 2025}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/runs", payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "hr.manager")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Payroll run generated", body.Message)
}

func TestGenerateRunEndpointConflict(t *testing.T) {
	runSvc := &stubRunService{
		generateFn: func(context.Context, payroll.GenerateRunRequest, string) (payroll.RunResponse, error) {
			return payroll.RunResponse{}, payroll.ErrRunAlreadyExists
		},
	}
	router := newTestRouter(runSvc, &stubPayslipService{})

	payload := bytes.NewBufferString(`{"month": 5, "year": 2025}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/runs", payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "hr.manager")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeResponse(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "CONFLICT", body.Error.Code)
	assert.Contains(t, body.Error.Message, "5/2025")
}

func TestApproveRunEndpoint(t *testing.T) {
	runSvc := &stubRunService{
		approveFn: func(_ context.Context, id string, actor string) (payroll.RunResponse, error) {
			assert.Equal(t, "run-1", id)
			assert.Equal(t, "hr.head", actor)
			return payroll.RunResponse{ID: id, Status: "approved"}, nil
		},
	}
	router := newTestRouter(runSvc, &stubPayslipService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/runs/run-1/approve", nil)
	req.Header.Set("X-Actor", "hr.head")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
}

func TestLockRunEndpointInvalidTransition(t *testing.T) {
	runSvc := &stubRunService{
		lockFn: func(context.Context, string, string) (payroll.RunResponse, error) {
			return payroll.RunResponse{}, payroll.ErrInvalidTransition
		},
	}
	router := newTestRouter(runSvc, &stubPayslipService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/runs/run-1/lock", nil)
	req.Header.Set("X-Actor", "cfo")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeResponse(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INVALID_TRANSITION", body.Error.Code)
}

func TestGetRunEndpointNotFound(t *testing.T) {
	runSvc := &stubRunService{
		getFn: func(context.Context, string) (payroll.RunResponse, error) {
			return payroll.RunResponse{}, payroll.ErrRunNotFound
		},
	}
	router := newTestRouter(runSvc, &stubPayslipService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/runs/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeResponse(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestDeleteRunEndpoint(t *testing.T) {
	runSvc := &stubRunService{
		deleteFn: func(_ context.Context, id string) error {
			assert.Equal(t, "run-1", id)
			return nil
		},
	}
	router := newTestRouter(runSvc, &stubPayslipService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/payroll/runs/run-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestComputePayslipEndpoint(t *testing.T) {
	payslipSvc := &stubPayslipService{
		computeFn: func(_ context.Context, staffID string, month, year int) (payroll.PayslipResponse, error) {
			assert.Equal(t, "staff-1", staffID)
			assert.Equal(t, 5, month)
			assert.Equal(t, 2025, year)
			return payroll.PayslipResponse{StaffID: staffID, PeriodMonth: month, PeriodYear: year}, nil
		},
	}
	router := newTestRouter(&stubRunService{}, payslipSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips/staff-1?month=5&year=2025", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
}

func TestComputePayslipEndpointMissingPeriod(t *testing.T) {
	router := newTestRouter(&stubRunService{}, &stubPayslipService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips/staff-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
