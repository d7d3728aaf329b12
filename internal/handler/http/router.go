package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/middleware"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
)

// RouterConfig holds the settings the router reads from configuration.
type RouterConfig struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// StorageDir is served under /storage when set
	StorageDir string
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	Intern       InternHandler
	Attendance   AttendanceHandler
	Approval     ApprovalHandler
	Leave        LeaveHandler
	Geofence     GeofenceHandler
	Schedule     ScheduleHandler
	Report       ReportHandler
	Dashboard    DashboardHandler
	Notification NotificationHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers, clockLimiter *middleware.UserRateLimiter) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ojt-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.StorageDir != "" {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(cfg.StorageDir)))
		r.Get("/storage/*", fs.ServeHTTP)
	}

	clock := func(next http.Handler) http.Handler { return next }
	if clockLimiter != nil {
		clock = clockLimiter.Limit
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
		})

		// EventSource authenticates with a short-lived query token
		r.Get("/events", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)
			r.Post("/events/token", h.Notification.GetSSEToken)

			r.Route("/interns", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionInternManageOwn)).Get("/me", h.Intern.Me)
				r.With(middleware.RequirePermission(user.PermissionInternManageOwn)).Post("/me", h.Intern.CreateProfile)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionInternViewAll))
					r.Get("/", h.Intern.List)
					r.Get("/{id}", h.Intern.Get)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceClock))
					r.With(clock).Post("/clock-in", h.Attendance.ClockIn)
					r.With(clock).Post("/clock-out", h.Attendance.ClockOut)
					r.Post("/break-start", h.Attendance.StartBreak)
					r.Post("/break-end", h.Attendance.EndBreak)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
					r.Get("/today", h.Attendance.Today)
					r.Get("/history", h.Attendance.History)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.List)
				r.With(middleware.RequireAnyPermission(user.PermissionAttendanceViewOwn, user.PermissionAttendanceViewAll)).Get("/{id}", h.Attendance.Get)
				r.With(middleware.RequirePermission(user.PermissionAttendanceUpdate)).Put("/{id}", h.Attendance.Update)
			})

			r.Route("/approvals", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceApprove))
				r.Get("/", h.Approval.List)
				r.Get("/pending", h.Approval.ListPending)
				r.Post("/{id}/approve", h.Approval.Approve)
				r.Post("/{id}/reject", h.Approval.Reject)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.Create)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.ListMine)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", h.Leave.List)
				r.With(middleware.RequireAnyPermission(user.PermissionLeaveViewOwn, user.PermissionLeaveViewAll)).Get("/{id}", h.Leave.Get)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Delete("/{id}", h.Leave.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/geofences", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionGeofenceView))
					r.Get("/", h.Geofence.List)
					r.Get("/{id}", h.Geofence.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionGeofenceManage))
					r.Post("/", h.Geofence.Create)
					r.Put("/{id}", h.Geofence.Update)
					r.Delete("/{id}", h.Geofence.Delete)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAnyPermission(user.PermissionScheduleViewOwn, user.PermissionScheduleManage))
					r.Get("/", h.Schedule.List)
					r.Get("/{id}", h.Schedule.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
					r.Post("/", h.Schedule.Create)
					r.Post("/assign", h.Schedule.Assign)
					r.Put("/{id}", h.Schedule.Update)
					r.Delete("/{id}", h.Schedule.Delete)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/dtr", h.Report.DTR)
				r.Get("/attendance", h.Report.Attendance)
				r.Get("/hours", h.Report.Hours)
				r.Get("/export", h.Report.Export)
			})

			r.With(middleware.RequirePermission(user.PermissionDashboardView)).Get("/dashboard/stats", h.Dashboard.GetStats)
		})
	})
	return r
}
