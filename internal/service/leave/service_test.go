package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLeaveRepo struct {
	seq   int
	items map[string]leave.LeaveRequest
}

func newMemLeaveRepo() *memLeaveRepo {
	return &memLeaveRepo{items: make(map[string]leave.LeaveRequest)}
}

func (m *memLeaveRepo) Create(_ context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	m.seq++
	l.ID = fmt.Sprintf("lr-%d", m.seq)
	m.items[l.ID] = l
	return l, nil
}

func (m *memLeaveRepo) GetByID(_ context.Context, id string) (*leave.LeaveRequest, error) {
	l, ok := m.items[id]
	if !ok {
		return nil, leave.ErrLeaveRequestNotFound
	}
	return &l, nil
}

func (m *memLeaveRepo) Update(_ context.Context, l *leave.LeaveRequest) error {
	m.items[l.ID] = *l
	return nil
}

func (m *memLeaveRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memLeaveRepo) List(_ context.Context, f approval.Filter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, l := range m.items {
		if f.OwnerID != nil && l.UserID != *f.OwnerID {
			continue
		}
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func as(id string, role user.Role) context.Context {
	return user.WithPrincipal(context.Background(), user.Principal{UserID: id, Role: role})
}

func newService() (leave.LeaveService, *memLeaveRepo) {
	repo := newMemLeaveRepo()
	clk := &clock.Fixed{T: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewLeaveService(repo, clk), repo
}

func TestSubmitCountsDays(t *testing.T) {
	svc, _ := newService()
	resp, err := svc.Submit(as("alice", user.RoleEmployee), leave.CreateLeaveRequest{
		LeaveType: "annual",
		StartDate: "2024-03-10",
		EndDate:   "2024-03-12",
		Reason:    "family trip",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "alice", resp.UserID)
}

func TestUpdateRederivesDays(t *testing.T) {
	svc, _ := newService()
	ctx := as("alice", user.RoleEmployee)
	resp, err := svc.Submit(ctx, leave.CreateLeaveRequest{LeaveType: "sick", StartDate: "2024-03-10", EndDate: "2024-03-10", Reason: "flu"})
	require.NoError(t, err)

	end := "2024-03-14"
	updated, err := svc.Update(ctx, leave.UpdateLeaveRequest{ID: resp.ID, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Days)
}

func TestApprovedCannotBeEdited(t *testing.T) {
	svc, _ := newService()
	ctx := as("alice", user.RoleEmployee)
	resp, err := svc.Submit(ctx, leave.CreateLeaveRequest{LeaveType: "sick", StartDate: "2024-03-10", EndDate: "2024-03-10", Reason: "flu"})
	require.NoError(t, err)

	_, err = svc.Decide(as("boss", user.RoleManager), approval.DecideRequest{ID: resp.ID, Action: "approve"})
	require.NoError(t, err)

	reason := "changed"
	_, err = svc.Update(ctx, leave.UpdateLeaveRequest{ID: resp.ID, Reason: &reason})
	assert.ErrorIs(t, err, approval.ErrNotPending)
	assert.ErrorIs(t, svc.Delete(ctx, resp.ID), approval.ErrNotPending)
}

func TestEmployeeCannotDecide(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Decide(as("bob", user.RoleEmployee), approval.DecideRequest{ID: "lr-1", Action: "approve"})
	assert.ErrorIs(t, err, approval.ErrApproverRoleRequired)
}

func TestListScopedToOwner(t *testing.T) {
	svc, _ := newService()
	req := leave.CreateLeaveRequest{LeaveType: "personal", StartDate: "2024-03-05", EndDate: "2024-03-05", Reason: "errand"}
	_, err := svc.Submit(as("alice", user.RoleEmployee), req)
	require.NoError(t, err)
	_, err = svc.Submit(as("bob", user.RoleEmployee), req)
	require.NoError(t, err)

	own, err := svc.List(as("alice", user.RoleEmployee), approval.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, own.TotalCount)

	all, err := svc.List(as("root", user.RoleAdmin), approval.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.TotalCount)
}

func TestTypes(t *testing.T) {
	svc, _ := newService()
	types := svc.Types()
	require.Len(t, types, 8)
	assert.Equal(t, "sick", types[0].Value)
}
