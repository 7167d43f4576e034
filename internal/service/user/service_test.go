package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	seq   int
	users map[string]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]user.User)}
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return user.User{}, user.ErrUsernameExists
		}
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	m.users[u.ID] = u
	return u, nil
}

func (m *memUserRepo) Update(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u := m.users[id]
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) List(_ context.Context, _ user.UserFilter) ([]user.User, int64, error) {
	var out []user.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func as(id string, role user.Role) context.Context {
	return user.WithPrincipal(context.Background(), user.Principal{UserID: id, Role: role})
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123"))
	require.Len(t, repo.users, 1)

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, admin.Role)
	assert.True(t, admin.CheckPassword("admin123"))
}

func TestCreateRequiresAdmin(t *testing.T) {
	svc := NewUserService(newMemUserRepo())
	req := user.CreateUserRequest{Username: "carol", Email: "carol@example.com", Password: "secret1", RealName: "Carol"}

	_, err := svc.Create(as("m", user.RoleManager), req)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	resp, err := svc.Create(as("root", user.RoleAdmin), req)
	require.NoError(t, err)
	assert.Equal(t, "employee", resp.Role)
	assert.True(t, resp.IsActive)

	_, err = svc.Create(as("root", user.RoleAdmin), req)
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestDeleteAdminRefused(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "admin@example.com", "admin123"))
	admin, _ := repo.GetByUsername(context.Background(), "admin")

	err := svc.Delete(as("root", user.RoleAdmin), admin.ID)
	assert.ErrorIs(t, err, user.ErrCannotDeleteAdmin)

	emp, err := svc.Create(as("root", user.RoleAdmin), user.CreateUserRequest{
		Username: "dave", Email: "dave@example.com", Password: "secret1", RealName: "Dave",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(as("root", user.RoleAdmin), emp.ID))
	assert.NotContains(t, repo.users, emp.ID)
}

func TestUpdateRole(t *testing.T) {
	svc := NewUserService(newMemUserRepo())
	admin := as("root", user.RoleAdmin)
	created, err := svc.Create(admin, user.CreateUserRequest{
		Username: "erin", Email: "erin@example.com", Password: "secret1", RealName: "Erin",
	})
	require.NoError(t, err)

	role := "manager"
	updated, err := svc.Update(admin, user.UpdateUserRequest{ID: created.ID, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "manager", updated.Role)

	bad := "owner"
	_, err = svc.Update(admin, user.UpdateUserRequest{ID: created.ID, Role: &bad})
	assert.Error(t, err)
}
