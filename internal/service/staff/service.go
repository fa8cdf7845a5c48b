package staff

import (
	"context"
	"fmt"

	"github.com/staffcore/payroll-backend-go/internal/domain/attendance"
	"github.com/staffcore/payroll-backend-go/internal/domain/salary"
	"github.com/staffcore/payroll-backend-go/internal/domain/staff"
	"github.com/staffcore/payroll-backend-go/internal/pkg/validator"
)

// RegistryService fronts the staff roster, salary history, and attendance
// ledger the payroll core reads from.
type RegistryService interface {
	CreateStaff(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error)
	GetStaff(ctx context.Context, id string) (staff.StaffResponse, error)
	ListStaff(ctx context.Context, filter staff.ListFilter) ([]staff.StaffResponse, error)
	UpdateStaffStatus(ctx context.Context, id string, req staff.UpdateStatusRequest) (staff.StaffResponse, error)

	AddSalaryRecord(ctx context.Context, req salary.CreateSalaryRecordRequest) (salary.SalaryRecordResponse, error)
	ListSalaryRecords(ctx context.Context, staffID string) ([]salary.SalaryRecordResponse, error)

	RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.EventResponse, error)
	ListEvents(ctx context.Context, staffID string, month, year int) ([]attendance.EventResponse, error)
}

type RegistryServiceImpl struct {
	staffRepo      staff.StaffRepository
	salaryRepo     salary.SalaryRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewRegistryService(
	staffRepo staff.StaffRepository,
	salaryRepo salary.SalaryRepository,
	attendanceRepo attendance.AttendanceRepository,
) RegistryService {
	return &RegistryServiceImpl{
		staffRepo:      staffRepo,
		salaryRepo:     salaryRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *RegistryServiceImpl) CreateStaff(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	resumption, _ := staff.ParseDate(req.ResumptionDate)
	created, err := s.staffRepo.Create(ctx, staff.Staff{
		FullName:       req.FullName,
		Department:     req.Department,
		Position:       req.Position,
		Status:         staff.StatusActive,
		ResumptionDate: resumption,
	})
	if err != nil {
		return staff.StaffResponse{}, err
	}

	return staff.ToResponse(created), nil
}

func (s *RegistryServiceImpl) GetStaff(ctx context.Context, id string) (staff.StaffResponse, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(member), nil
}

func (s *RegistryServiceImpl) ListStaff(ctx context.Context, filter staff.ListFilter) ([]staff.StaffResponse, error) {
	members, err := s.staffRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]staff.StaffResponse, 0, len(members))
	for _, member := range members {
		result = append(result, staff.ToResponse(member))
	}
	return result, nil
}

func (s *RegistryServiceImpl) UpdateStaffStatus(ctx context.Context, id string, req staff.UpdateStatusRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	current, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	if current.Status == staff.StatusInactive && req.Status == string(staff.StatusInactive) {
		return staff.StaffResponse{}, staff.ErrAlreadyInactive
	}

	updated, err := s.staffRepo.UpdateStatus(ctx, id, req)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(updated), nil
}

func (s *RegistryServiceImpl) AddSalaryRecord(ctx context.Context, req salary.CreateSalaryRecordRequest) (salary.SalaryRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	// Unknown staff must surface as NotFound, not a dangling record.
	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	effectiveFrom, _ := staff.ParseDate(req.EffectiveFrom)
	created, err := s.salaryRepo.Create(ctx, salary.SalaryRecord{
		StaffID:       req.StaffID,
		MonthlyGross:  req.MonthlyGross,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	return salary.ToResponse(created), nil
}

func (s *RegistryServiceImpl) ListSalaryRecords(ctx context.Context, staffID string) ([]salary.SalaryRecordResponse, error) {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return nil, err
	}

	records, err := s.salaryRepo.ListByStaffID(ctx, staffID)
	if err != nil {
		return nil, err
	}

	result := make([]salary.SalaryRecordResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, salary.ToResponse(rec))
	}
	return result, nil
}

func (s *RegistryServiceImpl) RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		return attendance.EventResponse{}, err
	}

	eventDate, _ := staff.ParseDate(req.Date)
	event := attendance.Event{
		StaffID:         req.StaffID,
		Kind:            attendance.EventKind(req.Kind),
		Date:            eventDate,
		SurchargeAmount: req.SurchargeAmount,
		PenaltyDays:     req.PenaltyDays,
		Amount:          req.Amount,
		Category:        req.Category,
		Reason:          req.Reason,
		Note:            req.Note,
	}
	if req.AbsenceType != nil {
		absenceType := attendance.AbsenceType(*req.AbsenceType)
		event.AbsenceType = &absenceType
	}

	created, err := s.attendanceRepo.Create(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return attendance.ToResponse(created), nil
}

func (s *RegistryServiceImpl) ListEvents(ctx context.Context, staffID string, month, year int) ([]attendance.EventResponse, error) {
	if !validator.IsValidMonth(month) || !validator.IsValidYear(year) {
		return nil, validator.ValidationErrors{{Field: "period", Message: "month and year are required"}}
	}

	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return nil, err
	}

	events, err := s.attendanceRepo.ListByStaffPeriod(ctx, staffID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	result := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		result = append(result, attendance.ToResponse(ev))
	}
	return result, nil
}
