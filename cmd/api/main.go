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
	"strings"
	"syscall"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/config"
	appHTTP "github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/middleware"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/cron"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/email"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/geocode"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/sse"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/storage"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/ojt-track/ojt-attendance-backend-go/internal/service/auth"
	dashboardService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/dashboard"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/service/file"
	geofenceService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/geofence"
	internService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/intern"
	leaveService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/leave"
	notificationService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/notification"
	reportService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/report"
	scheduleService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/schedule"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logLevel := parseLogLevel(cfg.App.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
	loc := cfg.Location()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if cfg.Database.MigrateOnBoot {
		if err := database.RunMigrations(db); err != nil {
			log.Fatal("Failed to run migrations: ", err)
		}
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	internRepo := postgresql.NewInternRepository(db)
	geofenceRepo := postgresql.NewGeofenceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.Env == "production")
	if err != nil {
		log.Fatal("Failed to initialize JWT service: ", err)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage types: ", cfg.Storage.Type)
	}
	fileService := file.NewFileService(fileStorage)

	var geocoder geocode.Geocoder = geocode.Noop{}
	if cfg.Geocoder.Enabled {
		var cache geocode.Cache = geocode.NewMemoryCache()
		if cfg.Redis.Addr != "" {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer redisClient.Close()
			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				slog.Warn("Redis unavailable, using in-memory geocode cache", "error", err)
			} else {
				cache = geocode.NewRedisCache(redisClient)
			}
		}
		geocoder = geocode.NewPhotonClient(cfg.Geocoder, cache)
	}

	hub := sse.NewHub(32)
	notifier := notificationService.NewNotificationService(hub, notificationService.Config{})

	authService := serviceAuth.NewAuthService(tx, userRepo, JWTService, JWTRepository)
	if cfg.Bootstrap.AdminEmail != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
			log.Fatal("Failed to bootstrap admin: ", err)
		}
	}

	internSvc := internService.NewInternService(internRepo)
	geofenceSvc := geofenceService.NewGeofenceService(geofenceRepo)
	scheduleSvc := scheduleService.NewScheduleService(tx, scheduleRepo, internRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		tx,
		attendanceRepo,
		internRepo,
		geofenceRepo,
		scheduleRepo,
		fileService,
		geocoder,
		notifier,
		loc,
	)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRepo, internRepo, notifier)
	reportSvc := reportService.NewReportService(reportRepo, loc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, loc)

	var scheduler *cron.Scheduler
	if cfg.Cron.Enabled {
		var mailer email.EmailService
		if cfg.SMTP.Host != "" {
			mailer, err = email.NewEmailService(cfg.SMTP)
			if err != nil {
				log.Fatal("Failed to initialize email service: ", err)
			}
		}

		scheduler = cron.NewScheduler(5 * time.Minute)
		jobs := cron.NewAttendanceJobs(tx, attendanceRepo, scheduleRepo, dashboardRepo, userRepo, JWTRepository, mailer, notifier, cron.AttendanceJobsConfig{
			Recipients: cfg.SMTP.Recipients,
			DigestHour: cron.DefaultDigestHour,
			Location:   loc,
		})
		jobs.RegisterJobs(scheduler)
		scheduler.Start()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			LogLevel:       logLevel,
			AllowedOrigins: cfg.App.AllowedOrigins,
			StorageDir:     cfg.Storage.BasePath,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:         appHTTP.NewAuthHandler(JWTService, authService),
			Intern:       appHTTP.NewInternHandler(internSvc),
			Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
			Approval:     appHTTP.NewApprovalHandler(attendanceSvc),
			Leave:        appHTTP.NewLeaveHandler(leaveSvc),
			Geofence:     appHTTP.NewGeofenceHandler(geofenceSvc),
			Schedule:     appHTTP.NewScheduleHandler(scheduleSvc),
			Report:       appHTTP.NewReportHandler(reportSvc),
			Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
			Notification: appHTTP.NewNotificationHandler(notifier, JWTService),
		},
		middleware.NewUserRateLimiter(cfg.App.ClockRateLimit),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop()
	}
	notifier.Stop()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
