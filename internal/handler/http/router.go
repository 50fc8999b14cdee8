package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/masarhr/masar-backend-go/internal/handler/http/middleware"
	"github.com/masarhr/masar-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	payrollHandler PayrollHandler,
	gosiHandler GosiHandler,
	compensationHandler CompensationHandler,
	gradeHandler GradeHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "masar-hr"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Post("/batches", payrollHandler.RunBatch)
				r.Get("/line-items", payrollHandler.ListLineItems)
				r.Get("/summary", payrollHandler.GetSummary)
			})

			r.Route("/gosi/rates", func(r chi.Router) {
				r.Get("/", gosiHandler.ResolveRates)
				r.Get("/configs", gosiHandler.ListRates)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HRAdminOnly)
					r.Put("/configs", gosiHandler.UpsertRate)
					r.Post("/sync", gosiHandler.SyncRates)
				})
			})

			r.Route("/grades", func(r chi.Router) {
				r.Get("/", gradeHandler.List)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HRAdminOnly)
					r.Put("/", gradeHandler.Upsert)
				})
			})

			r.Route("/employees/{employeeId}", func(r chi.Router) {
				r.Get("/payroll", payrollHandler.GetCurrent)

				r.Route("/compensation-changes", func(r chi.Router) {
					r.Get("/", compensationHandler.ListChanges)
					r.Get("/{changeId}", compensationHandler.GetChange)

					// HR admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.HRAdminOnly)
						r.Post("/", compensationHandler.ProposeChange)
					})
				})
			})
		})
	})
	return r
}
