package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/office-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/storage"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/office-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/office-attendance-go/internal/service/auth"
	diaryService "github.com/cmlabs-hris/office-attendance-go/internal/service/diary"
	expenseService "github.com/cmlabs-hris/office-attendance-go/internal/service/expense"
	"github.com/cmlabs-hris/office-attendance-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/office-attendance-go/internal/service/leave"
	outingService "github.com/cmlabs-hris/office-attendance-go/internal/service/outing"
	scheduleService "github.com/cmlabs-hris/office-attendance-go/internal/service/schedule"
	settingService "github.com/cmlabs-hris/office-attendance-go/internal/service/setting"
	userService "github.com/cmlabs-hris/office-attendance-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := appHTTP.NewLogger(cfg)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: ", err)
	}
	// pgx decodes timestamptz into time.Local; keep it on the office timezone.
	time.Local = loc
	clk := clock.New(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Error applying schema: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	expenseReportRepo := postgresql.NewExpenseReportRepository(db)
	outingReportRepo := postgresql.NewOutingReportRepository(db)
	diaryRepo := postgresql.NewDiaryRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		log.Fatal("Failed to initialize JWT service: ", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}
	fileService := file.NewFileService(fileStorage, cfg.Storage.BaseURL)

	settingSvc := settingService.NewSettingService(settingRepo)
	userSvc := userService.NewUserService(userRepo)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, transactor, settingSvc, userRepo, clk)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, clk)
	expenseSvc := expenseService.NewExpenseService(expenseReportRepo, fileService, clk)
	outingSvc := outingService.NewOutingService(outingReportRepo, clk)
	diarySvc := diaryService.NewDiaryService(diaryRepo, clk)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo, userRepo, clk)

	if err := userSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal("Failed to seed admin account: ", err)
	}

	router := appHTTP.NewRouter(
		cfg,
		logger,
		JWTService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewSettingHandler(settingSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewExpenseHandler(expenseSvc),
		appHTTP.NewOutingHandler(outingSvc),
		appHTTP.NewDiaryHandler(diarySvc),
		appHTTP.NewScheduleHandler(scheduleSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	slog.Info("server stopped")
}
