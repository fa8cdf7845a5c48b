package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffcore/payroll-backend-go/internal/domain/attendance"
	"github.com/staffcore/payroll-backend-go/internal/domain/payroll"
	"github.com/staffcore/payroll-backend-go/internal/domain/salary"
	"github.com/staffcore/payroll-backend-go/internal/domain/staff"
	"github.com/staffcore/payroll-backend-go/internal/pkg/validator"
	"github.com/staffcore/payroll-backend-go/internal/service/payslip"
)

type RunServiceImpl struct {
	runRepo        payroll.RunRepository
	staffRepo      staff.StaffRepository
	salaryRepo     salary.SalaryRepository
	attendanceRepo attendance.AttendanceRepository
	calculator     *payslip.Calculator
}

func NewRunService(
	runRepo payroll.RunRepository,
	staffRepo staff.StaffRepository,
	salaryRepo salary.SalaryRepository,
	attendanceRepo attendance.AttendanceRepository,
	calculator *payslip.Calculator,
) payroll.RunService {
	return &RunServiceImpl{
		runRepo:        runRepo,
		staffRepo:      staffRepo,
		salaryRepo:     salaryRepo,
		attendanceRepo: attendanceRepo,
		calculator:     calculator,
	}
}

// Generate computes a payslip for every active staff member with a
// resolvable salary and persists the run plus its per-staff snapshot in one
// transaction. The (month, year) uniqueness precondition is enforced by the
// store's constraint, not a check-then-create.
func (s *RunServiceImpl) Generate(ctx context.Context, req payroll.GenerateRunRequest, actor string) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}
	if err := validateActor(actor); err != nil {
		return payroll.RunResponse{}, err
	}

	roster, err := s.staffRepo.GetActive(ctx)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to get active roster: %w", err)
	}

	periodEnd := time.Date(req.PeriodYear, time.Month(req.PeriodMonth), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1)

	var slips []payroll.Payslip
	totalGross := decimal.Zero
	totalDeductions := decimal.Zero
	totalNet := decimal.Zero

	for _, member := range roster {
		record, err := s.salaryRepo.GetEffective(ctx, member.ID, periodEnd)
		if err != nil {
			if errors.Is(err, salary.ErrSalaryRecordNotFound) {
				continue // no salary resolves to zero gross; excluded from the run
			}
			return payroll.RunResponse{}, fmt.Errorf("failed to resolve salary for staff %s: %w", member.ID, err)
		}
		if record.MonthlyGross.IsZero() {
			continue
		}

		events, err := s.attendanceRepo.ListByStaffPeriod(ctx, member.ID, req.PeriodMonth, req.PeriodYear)
		if err != nil {
			return payroll.RunResponse{}, fmt.Errorf("failed to load ledger for staff %s: %w", member.ID, err)
		}

		slip := s.calculator.Compute(member, record.MonthlyGross, req.PeriodMonth, req.PeriodYear, attendance.BuildLedger(events))
		slips = append(slips, slip)

		totalGross = totalGross.Add(slip.Gross)
		totalDeductions = totalDeductions.Add(slip.TotalDeductions())
		totalNet = totalNet.Add(slip.Net)
	}

	run := payroll.PayrollRun{
		PeriodMonth:     req.PeriodMonth,
		PeriodYear:      req.PeriodYear,
		Status:          payroll.RunStatusDraft,
		CreatedBy:       actor,
		TotalStaff:      len(slips),
		TotalGross:      totalGross,
		TotalDeductions: totalDeductions,
		TotalNet:        totalNet,
	}

	created, err := s.runRepo.CreateRun(ctx, run, slips)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return payroll.ToRunResponse(created), nil
}

func (s *RunServiceImpl) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	run, err := s.runRepo.GetRunByID(ctx, id)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(run), nil
}

func (s *RunServiceImpl) ListRuns(ctx context.Context, filter payroll.RunFilter) ([]payroll.RunResponse, error) {
	runs, err := s.runRepo.ListRuns(ctx, filter)
	if err != nil {
		return nil, err
	}
	return payroll.ToRunResponses(runs), nil
}

func (s *RunServiceImpl) ListRunPayslips(ctx context.Context, runID string) ([]payroll.PayslipResponse, error) {
	// Existence first, so an unknown run is NotFound rather than empty.
	if _, err := s.runRepo.GetRunByID(ctx, runID); err != nil {
		return nil, err
	}

	lines, err := s.runRepo.ListRunLines(ctx, runID)
	if err != nil {
		return nil, err
	}

	slips := make([]payroll.Payslip, 0, len(lines))
	for _, line := range lines {
		slips = append(slips, line.Payslip)
	}
	return payroll.ToPayslipResponses(slips), nil
}

func (s *RunServiceImpl) Approve(ctx context.Context, id string, actor string) (payroll.RunResponse, error) {
	if err := validateActor(actor); err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.Approve(ctx, id, actor)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(run), nil
}

func (s *RunServiceImpl) Lock(ctx context.Context, id string, actor string) (payroll.RunResponse, error) {
	if err := validateActor(actor); err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.Lock(ctx, id, actor)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(run), nil
}

func (s *RunServiceImpl) Reject(ctx context.Context, id string) (payroll.RunResponse, error) {
	run, err := s.runRepo.Reject(ctx, id)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(run), nil
}

func (s *RunServiceImpl) Delete(ctx context.Context, id string) error {
	return s.runRepo.DeleteRun(ctx, id)
}

func validateActor(actor string) error {
	if validator.IsEmpty(actor) {
		return validator.ValidationErrors{{Field: "actor", Message: "is required"}}
	}
	return nil
}

// PayslipServiceImpl serves the ad-hoc payslip view, recomputed live from
// current salary and ledger state.
type PayslipServiceImpl struct {
	staffRepo      staff.StaffRepository
	salaryRepo     salary.SalaryRepository
	attendanceRepo attendance.AttendanceRepository
	calculator     *payslip.Calculator
}

func NewPayslipService(
	staffRepo staff.StaffRepository,
	salaryRepo salary.SalaryRepository,
	attendanceRepo attendance.AttendanceRepository,
	calculator *payslip.Calculator,
) payroll.PayslipService {
	return &PayslipServiceImpl{
		staffRepo:      staffRepo,
		salaryRepo:     salaryRepo,
		attendanceRepo: attendanceRepo,
		calculator:     calculator,
	}
}

func (s *PayslipServiceImpl) ComputePayslip(ctx context.Context, staffID string, month, year int) (payroll.PayslipResponse, error) {
	req := payroll.GenerateRunRequest{PeriodMonth: month, PeriodYear: year}
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	periodEnd := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)

	gross := decimal.Zero
	record, err := s.salaryRepo.GetEffective(ctx, member.ID, periodEnd)
	switch {
	case err == nil:
		gross = record.MonthlyGross
	case errors.Is(err, salary.ErrSalaryRecordNotFound):
		// zero gross, not an error
	default:
		return payroll.PayslipResponse{}, fmt.Errorf("failed to resolve salary: %w", err)
	}

	events, err := s.attendanceRepo.ListByStaffPeriod(ctx, member.ID, month, year)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to load ledger: %w", err)
	}

	slip := s.calculator.Compute(member, gross, month, year, attendance.BuildLedger(events))
	return payroll.ToPayslipResponse(slip), nil
}
