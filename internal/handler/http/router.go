package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/office-attendance-go/internal/config"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const appVersion = "v1.0.0"

// NewLogger is the JSON logger shared by the request log and the services.
func NewLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "office-attendance"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
}

func logLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	JWTService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	settingHandler SettingHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	expenseHandler ExpenseHandler,
	outingHandler OutingHandler,
	diaryHandler DiaryHandler,
	scheduleHandler ScheduleHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	// Clock-in gating reads RemoteAddr; only rewrite it behind a trusted proxy.
	if cfg.App.TrustProxyHeaders {
		r.Use(chiMiddleware.RealIP)
	}

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "ok", "version": appVersion})
	})

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
	r.Get("/uploads/*", uploads.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", authHandler.Logout)
				r.With(middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/profile", authHandler.GetProfile)
				r.With(middleware.RequirePermission(user.PermissionEditOwnProfile)).Put("/profile", authHandler.UpdateProfile)
				r.Post("/change-password", authHandler.ChangePassword)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Route("/users", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
					r.Get("/{id}", userHandler.Get)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})

				r.Route("/settings", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettingsManage))
					r.Get("/", settingHandler.List)
					r.Post("/", settingHandler.BulkUpdate)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/records", attendanceHandler.ListAll)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/statistics", attendanceHandler.AllStatistics)
					r.With(middleware.RequirePermission(user.PermissionAttendanceManage)).Post("/absent", attendanceHandler.MarkAbsent)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceClock)).Post("/clock-in", attendanceHandler.ClockIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceClock)).Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/history", attendanceHandler.History)
				r.Get("/statistics", attendanceHandler.Statistics)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", leaveHandler.Types)
				r.Route("/requests", func(r chi.Router) {
					r.Get("/", leaveHandler.List)
					r.With(middleware.RequirePermission(user.PermissionRequestCreate)).Post("/", leaveHandler.Submit)
					r.Get("/{id}", leaveHandler.Get)
					r.Put("/{id}", leaveHandler.Update)
					r.Delete("/{id}", leaveHandler.Delete)
					r.Post("/{id}/approve", leaveHandler.Decide)
				})
			})

			r.Route("/expense", func(r chi.Router) {
				r.Get("/types", expenseHandler.Types)
				r.Get("/statistics", expenseHandler.Statistics)
				r.Route("/reports", func(r chi.Router) {
					r.Get("/", expenseHandler.List)
					r.With(middleware.RequirePermission(user.PermissionRequestCreate)).Post("/", expenseHandler.Submit)
					r.Get("/{id}", expenseHandler.Get)
					r.Put("/{id}", expenseHandler.Update)
					r.Delete("/{id}", expenseHandler.Delete)
					r.Post("/{id}/approve", expenseHandler.Decide)
				})
			})

			r.Route("/outing", func(r chi.Router) {
				r.Get("/current", outingHandler.Current)
				r.Route("/reports", func(r chi.Router) {
					r.Get("/", outingHandler.List)
					r.With(middleware.RequirePermission(user.PermissionRequestCreate)).Post("/", outingHandler.Submit)
					r.Get("/{id}", outingHandler.Get)
					r.Put("/{id}", outingHandler.Update)
					r.Delete("/{id}", outingHandler.Delete)
					r.Post("/{id}/approve", outingHandler.Decide)
					r.Post("/{id}/complete", outingHandler.Complete)
				})
			})

			r.Route("/diary", func(r chi.Router) {
				r.Get("/today", diaryHandler.Today)
				r.Get("/statistics", diaryHandler.Statistics)
				r.Route("/diaries", func(r chi.Router) {
					r.Get("/", diaryHandler.List)
					r.Post("/", diaryHandler.Create)
					r.Get("/{id}", diaryHandler.Get)
					r.Put("/{id}", diaryHandler.Update)
					r.Delete("/{id}", diaryHandler.Delete)
				})
			})

			// Create, update and delete check schedule.manage in the service.
			r.Route("/schedule", func(r chi.Router) {
				r.Get("/my-schedule", scheduleHandler.MySchedule)
				r.Get("/today", scheduleHandler.Today)
				r.Get("/shift-types", scheduleHandler.ShiftTypes)
				r.Get("/calendar", scheduleHandler.Calendar)
				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", scheduleHandler.List)
					r.Post("/", scheduleHandler.Create)
					r.Get("/{id}", scheduleHandler.Get)
					r.Put("/{id}", scheduleHandler.Update)
					r.Delete("/{id}", scheduleHandler.Delete)
				})
			})
		})
	})
	return r
}
