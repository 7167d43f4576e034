package user

import (
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	RealName     *string `json:"real_name"`
	EmployeeCode *string `json:"employee_id"`
	Department   *string `json:"department"`
	Position     *string `json:"position"`
	Phone        *string `json:"phone"`
	Role         string  `json:"role"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		RealName:     u.RealName,
		EmployeeCode: u.EmployeeCode,
		Department:   u.Department,
		Position:     u.Position,
		Phone:        u.Phone,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    utils.FormatDateTime(u.CreatedAt),
	}
}

// CreateUserRequest is an admin creating an account directly.
type CreateUserRequest struct {
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	RealName     string  `json:"real_name"`
	EmployeeCode *string `json:"employee_id,omitempty"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Role         string  `json:"role"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username is required"})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, digits and underscores",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	} else if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 6 characters"})
	}

	errs = validator.Required(errs, "real_name", r.RealName)

	if r.Role == "" {
		r.Role = string(RoleEmployee)
	}
	if !validator.IsInSlice(r.Role, Roles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: " + strings.Join(Roles, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateUserRequest is an admin editing an account; nil fields are left as is.
type UpdateUserRequest struct {
	ID           string  `json:"-"`
	Email        *string `json:"email,omitempty"`
	RealName     *string `json:"real_name,omitempty"`
	EmployeeCode *string `json:"employee_id,omitempty"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Role         *string `json:"role,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, Roles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: " + strings.Join(Roles, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the set fields onto u.
func (r *UpdateUserRequest) Apply(u *User) {
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.RealName != nil {
		u.RealName = r.RealName
	}
	if r.EmployeeCode != nil {
		u.EmployeeCode = r.EmployeeCode
	}
	if r.Department != nil {
		u.Department = r.Department
	}
	if r.Position != nil {
		u.Position = r.Position
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
	if r.Role != nil {
		u.Role = Role(*r.Role)
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
}

type UserFilter struct {
	Search *string `json:"search,omitempty"` // matches username, real_name or email
	utils.Pagination
}

func (f *UserFilter) Validate() error {
	errs := f.Pagination.Normalize()
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListUserResponse = utils.Page[UserResponse]
