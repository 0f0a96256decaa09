package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/verdanthq/verdant-api/internal/api"
	apiMiddleware "github.com/verdanthq/verdant-api/internal/api/middleware"
)

// setupRouter builds the chi router: standard middleware, public auth
// routes, and the authenticated API groups, with handlers constructed
// from the application's services.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		&app.config.Auth,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	programHandler := api.NewProgramHandler(app.enrollmentService, app.logger)
	enrollmentHandler := api.NewEnrollmentHandler(app.enrollmentService, app.logger)
	progressHandler := api.NewProgressHandler(app.progressService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Everything else requires a bearer token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Program catalog
			r.Get("/programs", programHandler.ListPrograms)
			r.Get("/programs/{programID}", programHandler.GetProgram)

			// Enrollment lifecycle and completion tracking
			r.Post("/enrollments", enrollmentHandler.Enroll)
			r.Get("/enrollments/active", enrollmentHandler.GetActive)
			r.Get("/enrollments/{id}", enrollmentHandler.Get)
			r.Post("/enrollments/{id}/items", enrollmentHandler.CompleteItem)
			r.Post("/enrollments/{id}/days/{day}/complete", enrollmentHandler.CompleteDay)
			r.Get("/enrollments/{id}/days/{day}", enrollmentHandler.DayStatus)
			r.Post("/enrollments/{id}/abandon", enrollmentHandler.Abandon)

			// Daily logs, streaks, and the calendar view
			r.Post("/logs", progressHandler.LogDay)
			r.Get("/progress/summary", progressHandler.Summary)
			r.Get("/progress/calendar", progressHandler.Calendar)

			// Account
			r.Get("/users/me", userHandler.GetMe)
			r.Put("/users/me", userHandler.UpdateMe)
			r.Delete("/users/me", userHandler.DeleteMe)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
