package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/leadwise/crm-backend-go/internal/handler/http/middleware"
	"github.com/leadwise/crm-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Org          OrgHandler
	Lead         LeadHandler
	Task         TaskHandler
	Ticket       TicketHandler
	Attendance   AttendanceHandler
	Notification NotificationHandler
}

func NewRouter(jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leadwise-crm"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// SSE stream authenticates via a short-lived query token because
		// EventSource cannot set headers.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.Org.ListUsers)
				r.Post("/", h.Org.CreateUser)
				r.Get("/{id}", h.Org.GetUser)
				r.Put("/{id}", h.Org.UpdateUser)
				r.Post("/{id}/activate", h.Org.ActivateUser)
				r.Post("/{id}/deactivate", h.Org.DeactivateUser)
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", h.Org.ListRoles)
				r.Post("/", h.Org.CreateRole)
				r.Get("/{id}", h.Org.GetRole)
				r.Put("/{id}", h.Org.UpdateRole)
				r.Delete("/{id}", h.Org.DeleteRole)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Org.ListDepartments)
				r.Post("/", h.Org.CreateDepartment)
				r.Delete("/{id}", h.Org.DeleteDepartment)
			})

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", h.Lead.List)
				r.Post("/", h.Lead.Create)
				r.Get("/login-queue", h.Lead.ListLoginQueue)
				r.Get("/{id}", h.Lead.Get)
				r.Put("/{id}", h.Lead.Update)
				r.Delete("/{id}", h.Lead.Delete)
				r.Post("/{id}/assign", h.Lead.Assign)
				r.Post("/{id}/transfer", h.Lead.Transfer)
				r.Put("/{id}/reporters", h.Lead.SetReporters)
				r.Post("/{id}/move-to-login", h.Lead.MoveToLoginQueue)
				r.Get("/{id}/activities", h.Lead.Activities)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.List)
				r.Post("/", h.Task.Create)
				r.Get("/{id}", h.Task.Get)
				r.Put("/{id}", h.Task.Update)
				r.Delete("/{id}", h.Task.Delete)
				r.Post("/{id}/assign", h.Task.Assign)
				r.Post("/{id}/complete", h.Task.Complete)
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", h.Ticket.List)
				r.Post("/", h.Ticket.Create)
				r.Get("/{id}", h.Ticket.Get)
				r.Put("/{id}", h.Ticket.Update)
				r.Delete("/{id}", h.Ticket.Delete)
				r.Post("/{id}/assign", h.Ticket.Assign)
				r.Put("/{id}/status", h.Ticket.SetStatus)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/my", h.Attendance.My)
				r.Get("/", h.Attendance.List)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/mark-read", h.Notification.MarkAsRead)
				r.Post("/mark-all-read", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})
		})
	})
	return r
}
