package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/office-attendance-go/internal/config"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/diary"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/setting"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, trustProxy bool) (http.Handler, jwt.Service, *stubAttendance) {
	t.Helper()
	svc, err := jwt.NewJWTService("router-secret", "1h")
	require.NoError(t, err)

	cfg := &config.Config{
		App:     config.AppConfig{Env: "test", LogLevel: "error", TrustProxyHeaders: trustProxy},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Storage: config.StorageConfig{BasePath: t.TempDir()},
	}
	attendanceSvc := &stubAttendance{}
	r := NewRouter(cfg, NewLogger(cfg), svc,
		NewAuthHandler(struct{ auth.AuthService }{}),
		NewUserHandler(struct{ user.UserService }{}),
		NewSettingHandler(struct{ setting.SettingService }{}),
		NewAttendanceHandler(attendanceSvc),
		NewLeaveHandler(&stubLeave{}),
		NewExpenseHandler(&stubExpense{}),
		NewOutingHandler(stubOuting{}),
		NewDiaryHandler(struct{ diary.DiaryService }{}),
		NewScheduleHandler(struct{ schedule.ScheduleService }{}),
	)
	return r, svc, attendanceSvc
}

func bearer(t *testing.T, svc jwt.Service, role user.Role) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken("u-"+string(role), string(role), role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouterHealth(t *testing.T) {
	r, _, _ := newTestRouter(t, false)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouterRequiresToken(t *testing.T) {
	r, _, _ := newTestRouter(t, false)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/outing/current", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterAdminRoutes(t *testing.T) {
	r, svc, _ := newTestRouter(t, false)

	for _, path := range []string{"/api/v1/admin/users", "/api/v1/admin/settings", "/api/v1/admin/attendance/records"} {
		for _, role := range []user.Role{user.RoleEmployee, user.RoleManager} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", bearer(t, svc, role))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code, "%s as %s", path, role)
		}
	}
}

func TestRouterClockInSourceAddress(t *testing.T) {
	r, svc, attendanceSvc := newTestRouter(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", nil)
	req.RemoteAddr = "10.0.0.5:40000"
	req.Header.Set("X-Forwarded-For", "192.168.1.9")
	req.Header.Set("Authorization", bearer(t, svc, user.RoleEmployee))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10.0.0.5", attendanceSvc.sourceIP)

	r, svc, attendanceSvc = newTestRouter(t, true)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", nil)
	req.RemoteAddr = "10.0.0.5:40000"
	req.Header.Set("X-Forwarded-For", "192.168.1.9")
	req.Header.Set("Authorization", bearer(t, svc, user.RoleEmployee))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "192.168.1.9", attendanceSvc.sourceIP)
}
