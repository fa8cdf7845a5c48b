package staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffcore/payroll-backend-go/internal/domain/staff"
)

type fakeStaffRepo struct {
	members map[string]staff.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{members: make(map[string]staff.Staff)}
}

func (f *fakeStaffRepo) Create(_ context.Context, s staff.Staff) (staff.Staff, error) {
	f.members[s.ID] = s
	return s, nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id string) (staff.Staff, error) {
	member, ok := f.members[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return member, nil
}

func (f *fakeStaffRepo) List(_ context.Context, _ staff.ListFilter) ([]staff.Staff, error) {
	result := make([]staff.Staff, 0, len(f.members))
	for _, member := range f.members {
		result = append(result, member)
	}
	return result, nil
}

func (f *fakeStaffRepo) GetActive(_ context.Context) ([]staff.Staff, error) {
	var result []staff.Staff
	for _, member := range f.members {
		if member.Status == staff.StatusActive {
			result = append(result, member)
		}
	}
	return result, nil
}

func (f *fakeStaffRepo) UpdateStatus(_ context.Context, id string, req staff.UpdateStatusRequest) (staff.Staff, error) {
	member, ok := f.members[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	member.Status = staff.EmploymentStatus(req.Status)
	if req.LastActiveDate != nil {
		lastDay, _ := staff.ParseDate(*req.LastActiveDate)
		member.LastActiveDate = &lastDay
	} else {
		member.LastActiveDate = nil
	}
	f.members[id] = member
	return member, nil
}

func TestUpdateStaffStatusDeactivates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStaffRepo()
	repo.members["staff-1"] = staff.Staff{
		ID:             "staff-1",
		FullName:       "Ada Eze",
		Status:         staff.StatusActive,
		ResumptionDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	svc := NewRegistryService(repo, nil, nil)

	lastDay := "2025-05-20"
	updated, err := svc.UpdateStaffStatus(ctx, "staff-1", staff.UpdateStatusRequest{
		Status:         string(staff.StatusInactive),
		LastActiveDate: &lastDay,
	})
	require.NoError(t, err)
	assert.Equal(t, "inactive", updated.Status)
}

func TestUpdateStaffStatusAlreadyInactive(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStaffRepo()
	lastDay := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	repo.members["staff-1"] = staff.Staff{
		ID:             "staff-1",
		FullName:       "Ada Eze",
		Status:         staff.StatusInactive,
		ResumptionDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		LastActiveDate: &lastDay,
	}
	svc := NewRegistryService(repo, nil, nil)

	day := "2025-05-20"
	_, err := svc.UpdateStaffStatus(ctx, "staff-1", staff.UpdateStatusRequest{
		Status:         string(staff.StatusInactive),
		LastActiveDate: &day,
	})
	assert.ErrorIs(t, err, staff.ErrAlreadyInactive)

	// Reactivating an inactive member is still allowed.
	updated, err := svc.UpdateStaffStatus(ctx, "staff-1", staff.UpdateStatusRequest{
		Status: string(staff.StatusActive),
	})
	require.NoError(t, err)
	assert.Equal(t, "active", updated.Status)
}

func TestUpdateStaffStatusUnknownStaff(t *testing.T) {
	ctx := context.Background()
	svc := NewRegistryService(newFakeStaffRepo(), nil, nil)

	day := "2025-05-20"
	_, err := svc.UpdateStaffStatus(ctx, "missing", staff.UpdateStatusRequest{
		Status:         string(staff.StatusInactive),
		LastActiveDate: &day,
	})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}
