package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/teamtracker/teamtracker-api/internal/auth"
	"github.com/teamtracker/teamtracker-api/internal/employee"
	"github.com/teamtracker/teamtracker-api/internal/extraday"
	"github.com/teamtracker/teamtracker-api/internal/leave"
	"github.com/teamtracker/teamtracker-api/internal/note"
	"github.com/teamtracker/teamtracker-api/internal/registry"
	"github.com/teamtracker/teamtracker-api/internal/transport/middleware"
	"github.com/teamtracker/teamtracker-api/internal/transport/swagger"
	"github.com/teamtracker/teamtracker-api/internal/user"
	"github.com/go-chi/chi"
)

// Handlers bundles the per-domain handlers the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	Employee *employee.Handler
	Leave    *leave.Handler
	Note     *note.Handler
	ExtraDay *extraday.Handler
	User     *user.Handler
	Registry *registry.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/forgot-password", h.Auth.ForgotPassword)
			sr.Post("/reset-password", h.Auth.ResetPassword)
		})

		// Everything below requires a resolved identity
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Post("/auth/change-password", h.Auth.ChangePassword)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employee.GetEmployees)
				er.Post("/", h.Employee.CreateEmployee)
				er.Get("/search", h.Employee.SearchEmployees)
				er.Get("/used-colors", h.Employee.GetUsedColors)
				er.Get("/{id}", h.Employee.GetEmployee)
				er.Patch("/{id}", h.Employee.UpdateEmployee)
				er.Delete("/{id}", h.Employee.DeleteEmployee)
			})

			pr.Route("/leaves", func(lr chi.Router) {
				lr.Get("/", h.Leave.GetLeaves)
				lr.Post("/", h.Leave.CreateLeave)
				lr.Get("/types", h.Registry.GetLeaveTypes)
				lr.Get("/{id}", h.Leave.GetLeave)
				lr.Patch("/{id}", h.Leave.UpdateLeave)
				lr.Delete("/{id}", h.Leave.DeleteLeave)
			})

			pr.Route("/notes", func(nr chi.Router) {
				nr.Get("/", h.Note.GetNotes)
				nr.Post("/", h.Note.CreateNote)
				nr.Get("/types", h.Registry.GetNoteTypes)
				nr.Get("/{id}", h.Note.GetNote)
				nr.Patch("/{id}", h.Note.UpdateNote)
				nr.Delete("/{id}", h.Note.DeleteNote)
			})

			pr.Route("/extradays", func(xr chi.Router) {
				xr.Get("/", h.ExtraDay.GetExtraDays)
				xr.Post("/", h.ExtraDay.CreateExtraDay)
				xr.Get("/{id}", h.ExtraDay.GetEmployeeExtraDays)
				xr.Patch("/{id}", h.ExtraDay.UpdateExtraDay)
				xr.Delete("/{id}", h.ExtraDay.DeleteExtraDay)
			})

			pr.Get("/themes", h.Registry.GetThemes)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", h.User.GetCurrentUser)
				ur.Patch("/", h.User.UpdateProfile)
				ur.Patch("/email", h.User.UpdateEmail)
				ur.Delete("/", h.User.DeleteAccount)
			})
		})
	})
}
