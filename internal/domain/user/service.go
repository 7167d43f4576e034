package user

import "context"

// UserService is the admin user-management surface.
type UserService interface {
	List(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error

	// EnsureAdmin creates the bootstrap admin account if its username is free.
	EnsureAdmin(ctx context.Context, username, email, password string) error
}
