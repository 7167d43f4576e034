package auth

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context) (user.UserResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (user.UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
