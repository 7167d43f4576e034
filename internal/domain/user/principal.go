package user

import "context"

// Principal is the authenticated caller of an action.
type Principal struct {
	UserID   string
	Username string
	Role     Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) Can(permission Permission) bool {
	return HasPermission(p.Role, permission)
}

// OwnerScope returns nil for callers who may see every user's records,
// otherwise the caller's own id. Repositories apply it as a WHERE filter.
func (p Principal) OwnerScope(viewAll Permission) *string {
	if p.Can(viewAll) {
		return nil
	}
	id := p.UserID
	return &id
}

type principalKey struct{}

// WithPrincipal stores the caller on ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the caller stored by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}
