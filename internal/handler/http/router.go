package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/staffcore/payroll-backend-go/internal/handler/http/middleware"
)

func NewRouter(env string, staffHandler StaffHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-staffcore"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Actor"},
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
		r.Use(middleware.WithActor)

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", staffHandler.List)
			r.Post("/", staffHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", staffHandler.Get)
				r.Patch("/status", staffHandler.UpdateStatus)

				r.Route("/salary-records", func(r chi.Router) {
					r.Get("/", staffHandler.ListSalaryRecords)
					r.Post("/", staffHandler.AddSalaryRecord)
				})

				r.Route("/attendance-events", func(r chi.Router) {
					r.Get("/", staffHandler.ListEvents)
					r.Post("/", staffHandler.RecordEvent)
				})
			})
		})

		r.Get("/payslips/{staffID}", payrollHandler.ComputePayslip)

		r.Route("/payroll/runs", func(r chi.Router) {
			r.Get("/", payrollHandler.ListRuns)
			r.Post("/", payrollHandler.GenerateRun)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetRun)
				r.Delete("/", payrollHandler.DeleteRun)
				r.Get("/payslips", payrollHandler.ListRunPayslips)
				r.Post("/approve", payrollHandler.ApproveRun)
				r.Post("/lock", payrollHandler.LockRun)
				r.Post("/reject", payrollHandler.RejectRun)
			})
		})
	})
	return r
}
