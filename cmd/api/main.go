package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/staffcore/payroll-backend-go/internal/config"
	appHTTP "github.com/staffcore/payroll-backend-go/internal/handler/http"
	"github.com/staffcore/payroll-backend-go/internal/pkg/database"
	"github.com/staffcore/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/staffcore/payroll-backend-go/internal/service/payroll"
	"github.com/staffcore/payroll-backend-go/internal/service/payslip"
	staffService "github.com/staffcore/payroll-backend-go/internal/service/staff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	staffRepo := postgresql.NewStaffRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	runRepo := postgresql.NewRunRepository(db)

	calculator := payslip.NewCalculator()
	registrySvc := staffService.NewRegistryService(staffRepo, salaryRepo, attendanceRepo)
	runSvc := payrollService.NewRunService(runRepo, staffRepo, salaryRepo, attendanceRepo, calculator)
	payslipSvc := payrollService.NewPayslipService(staffRepo, salaryRepo, attendanceRepo, calculator)

	staffHandler := appHTTP.NewStaffHandler(registrySvc)
	payrollHandler := appHTTP.NewPayrollHandler(runSvc, payslipSvc)

	router := appHTTP.NewRouter(cfg.App.Env, staffHandler, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("server listening", "addr", port, "env", cfg.App.Env)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
