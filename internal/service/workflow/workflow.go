// Package workflow runs the shared pending -> approved/rejected lifecycle
// over any request kind that embeds an approval.Record.
package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
)

// Entity is a request that has an owner and an approval record.
type Entity interface {
	Owner() string
	Approval() *approval.Record
}

// Store is the persistence a Workflow needs. GetByID returns the kind's
// not-found sentinel for an unknown id.
type Store[T Entity] interface {
	GetByID(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id string) error
}

type Workflow[T Entity] struct {
	name  string
	store Store[T]
	clock clock.Clock
}

// New returns a workflow for one request kind; name is used in errors and logs.
func New[T Entity](name string, store Store[T], clk clock.Clock) *Workflow[T] {
	return &Workflow[T]{name: name, store: store, clock: clk}
}

// Get returns the request if the caller owns it or may view every request.
func (w *Workflow[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return zero, err
	}
	entity, err := w.store.GetByID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", w.name, err)
	}
	if entity.Owner() != p.UserID && !p.Can(user.PermissionRequestViewAll) {
		return zero, approval.ErrNotVisible
	}
	return entity, nil
}

// Edit loads the caller's own pending request, lets apply change and
// validate it, then stores it.
func (w *Workflow[T]) Edit(ctx context.Context, id string, apply func(T) error) (T, error) {
	var zero T
	entity, err := w.ownedPending(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := apply(entity); err != nil {
		return zero, err
	}
	if err := w.store.Update(ctx, entity); err != nil {
		return zero, fmt.Errorf("update %s: %w", w.name, err)
	}
	return entity, nil
}

// Delete removes the caller's own pending request and returns what was removed.
func (w *Workflow[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T
	entity, err := w.ownedPending(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := w.store.Delete(ctx, id); err != nil {
		return zero, fmt.Errorf("delete %s: %w", w.name, err)
	}
	return entity, nil
}

func (w *Workflow[T]) ownedPending(ctx context.Context, id string) (T, error) {
	var zero T
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return zero, err
	}
	entity, err := w.store.GetByID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", w.name, err)
	}
	if entity.Owner() != p.UserID {
		return zero, approval.ErrNotOwner
	}
	if entity.Approval().Status != approval.StatusPending {
		return zero, approval.ErrNotPending
	}
	return entity, nil
}

// Decide approves or rejects a pending request. The role check runs before
// the lookup.
func (w *Workflow[T]) Decide(ctx context.Context, req approval.DecideRequest) (T, error) {
	var zero T
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return zero, err
	}
	if !approval.CanDecide(p.Role) {
		return zero, approval.ErrApproverRoleRequired
	}
	entity, err := w.store.GetByID(ctx, req.ID)
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", w.name, err)
	}
	if err := entity.Approval().Decide(p.UserID, approval.Action(req.Action), req.Notes, w.clock.Now()); err != nil {
		return zero, err
	}
	if err := w.store.Update(ctx, entity); err != nil {
		return zero, fmt.Errorf("update %s: %w", w.name, err)
	}

	slog.Info("request decided",
		"kind", w.name,
		"id", req.ID,
		"status", entity.Approval().Status,
		"approver_id", p.UserID,
	)
	return entity, nil
}

// Scope restricts filter to the caller's own requests unless the caller may
// view every request.
func Scope(ctx context.Context, filter *approval.Filter) error {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	filter.OwnerID = p.OwnerScope(user.PermissionRequestViewAll)
	return nil
}
