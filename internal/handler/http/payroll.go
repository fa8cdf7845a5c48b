package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/staffcore/payroll-backend-go/internal/domain/payroll"
	"github.com/staffcore/payroll-backend-go/internal/handler/http/middleware"
	"github.com/staffcore/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Runs
	GenerateRun(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	ListRunPayslips(w http.ResponseWriter, r *http.Request)
	ApproveRun(w http.ResponseWriter, r *http.Request)
	LockRun(w http.ResponseWriter, r *http.Request)
	RejectRun(w http.ResponseWriter, r *http.Request)
	DeleteRun(w http.ResponseWriter, r *http.Request)

	// Ad-hoc payslip view
	ComputePayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	runService     payroll.RunService
	payslipService payroll.PayslipService
}

func NewPayrollHandler(runService payroll.RunService, payslipService payroll.PayslipService) PayrollHandler {
	return &payrollHandlerImpl{runService: runService, payslipService: payslipService}
}

// ========== RUNS ==========

func (h *payrollHandlerImpl) GenerateRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	result, err := h.runService.Generate(r.Context(), req, actor)
	if err != nil {
		if errors.Is(err, payroll.ErrRunAlreadyExists) {
			response.ConflictForPeriod(w, req.PeriodMonth, req.PeriodYear)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run generated", result)
}

func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.runService.GetRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	var filter payroll.RunFilter

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		filter.PeriodYear = &year
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := payroll.RunStatus(statusStr)
		filter.Status = &status
	}

	result, err := h.runService.ListRuns(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRunPayslips(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.runService.ListRunPayslips(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ApproveRun(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.runService.Approve, "Payroll run approved")
}

func (h *payrollHandlerImpl) LockRun(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.runService.Lock, "Payroll run locked")
}

func (h *payrollHandlerImpl) RejectRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.runService.Reject(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run returned to draft", result)
}

func (h *payrollHandlerImpl) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	if err := h.runService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run deleted", nil)
}

type transitionFunc func(ctx context.Context, id string, actor string) (payroll.RunResponse, error)

func (h *payrollHandlerImpl) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc, message string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	result, err := fn(r.Context(), id, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// ========== PAYSLIP VIEW ==========

func (h *payrollHandlerImpl) ComputePayslip(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")
	if staffID == "" {
		response.BadRequest(w, "Staff ID is required", nil)
		return
	}

	month, year, ok := periodFromQuery(w, r)
	if !ok {
		return
	}

	result, err := h.payslipService.ComputePayslip(r.Context(), staffID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func periodFromQuery(w http.ResponseWriter, r *http.Request) (month, year int, ok bool) {
	var err error
	month, err = strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "Invalid or missing month", nil)
		return 0, 0, false
	}
	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Invalid or missing year", nil)
		return 0, 0, false
	}
	return month, year, true
}
