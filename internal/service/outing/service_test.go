package outing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/outing"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOutingRepo struct {
	seq   int
	items map[string]outing.OutingReport
}

func (m *memOutingRepo) Create(_ context.Context, o outing.OutingReport) (outing.OutingReport, error) {
	m.seq++
	o.ID = fmt.Sprintf("out-%d", m.seq)
	m.items[o.ID] = o
	return o, nil
}

func (m *memOutingRepo) GetByID(_ context.Context, id string) (*outing.OutingReport, error) {
	o, ok := m.items[id]
	if !ok {
		return nil, outing.ErrOutingReportNotFound
	}
	return &o, nil
}

func (m *memOutingRepo) Update(_ context.Context, o *outing.OutingReport) error {
	m.items[o.ID] = *o
	return nil
}

func (m *memOutingRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memOutingRepo) List(_ context.Context, f approval.Filter) ([]outing.OutingReport, int64, error) {
	var out []outing.OutingReport
	for _, o := range m.items {
		if f.OwnerID == nil || o.UserID == *f.OwnerID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memOutingRepo) Current(_ context.Context, userID string, now time.Time) (outing.OutingReport, error) {
	for _, o := range m.items {
		if o.UserID == userID && o.Status == approval.StatusApproved && o.ActualReturnTime == nil && !o.StartTime.After(now) {
			return o, nil
		}
	}
	return outing.OutingReport{}, outing.ErrNoCurrentOuting
}

func as(id string, role user.Role) context.Context {
	return user.WithPrincipal(context.Background(), user.Principal{UserID: id, Role: role})
}

func setup(t *testing.T) (outing.OutingService, *clock.Fixed, string) {
	t.Helper()
	clk := &clock.Fixed{T: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	svc := NewOutingService(&memOutingRepo{items: make(map[string]outing.OutingReport)}, clk)
	resp, err := svc.Submit(as("alice", user.RoleEmployee), outing.CreateOutingRequest{
		Destination:        "Supplier",
		Purpose:            "contract signing",
		StartTime:          "2024-03-15 10:00:00",
		ExpectedReturnTime: "2024-03-15 12:00:00",
	})
	require.NoError(t, err)
	return svc, clk, resp.ID
}

func TestCompleteLifecycle(t *testing.T) {
	svc, clk, id := setup(t)
	alice := as("alice", user.RoleEmployee)

	_, err := svc.Complete(alice, id)
	assert.ErrorIs(t, err, outing.ErrNotOut, "pending outing cannot be completed")

	_, err = svc.Decide(as("root", user.RoleAdmin), approval.DecideRequest{ID: id, Action: "approve"})
	require.NoError(t, err)

	_, err = svc.Complete(as("bob", user.RoleEmployee), id)
	assert.ErrorIs(t, err, approval.ErrNotOwner)

	clk.Set(time.Date(2024, 3, 15, 11, 45, 0, 0, time.UTC))
	done, err := svc.Complete(alice, id)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	require.NotNil(t, done.ActualReturnTime)
	assert.Equal(t, "2024-03-15 11:45:00", *done.ActualReturnTime)

	_, err = svc.Complete(alice, id)
	assert.ErrorIs(t, err, outing.ErrNotOut)

	_, err = svc.Complete(alice, "missing")
	assert.ErrorIs(t, err, outing.ErrOutingReportNotFound)
}

func TestCurrent(t *testing.T) {
	svc, clk, id := setup(t)
	alice := as("alice", user.RoleEmployee)

	cur, err := svc.Current(alice)
	require.NoError(t, err)
	assert.Nil(t, cur)

	_, err = svc.Decide(as("boss", user.RoleManager), approval.DecideRequest{ID: id, Action: "approve"})
	require.NoError(t, err)

	cur, err = svc.Current(alice)
	require.NoError(t, err)
	assert.Nil(t, cur, "not started yet")

	clk.Set(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))
	cur, err = svc.Current(alice)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, id, cur.ID)
}

func TestDecideRequiresApprover(t *testing.T) {
	svc, _, id := setup(t)
	_, err := svc.Decide(as("alice", user.RoleEmployee), approval.DecideRequest{ID: id, Action: "approve"})
	assert.ErrorIs(t, err, approval.ErrApproverRoleRequired)
}

func TestDecidedOutingIsFrozen(t *testing.T) {
	svc, _, id := setup(t)
	alice := as("alice", user.RoleEmployee)
	_, err := svc.Decide(as("boss", user.RoleManager), approval.DecideRequest{ID: id, Action: "reject"})
	require.NoError(t, err)

	purpose := "renegotiation"
	_, err = svc.Update(alice, outing.UpdateOutingRequest{ID: id, Purpose: &purpose})
	assert.ErrorIs(t, err, approval.ErrNotPending)
	assert.ErrorIs(t, svc.Delete(alice, id), approval.ErrNotPending)
	_, err = svc.Decide(as("root", user.RoleAdmin), approval.DecideRequest{ID: id, Action: "approve"})
	assert.ErrorIs(t, err, approval.ErrNotPending)
}
