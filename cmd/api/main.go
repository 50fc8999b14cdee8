package main

import (
	"fmt"
	"net/http"

	"github.com/masarhr/masar-backend-go/internal/config"
	appHTTP "github.com/masarhr/masar-backend-go/internal/handler/http"
	"github.com/masarhr/masar-backend-go/internal/pkg/database"
	"github.com/masarhr/masar-backend-go/internal/pkg/jwt"
	"github.com/masarhr/masar-backend-go/internal/repository/postgresql"
	compensationService "github.com/masarhr/masar-backend-go/internal/service/compensation"
	gosiService "github.com/masarhr/masar-backend-go/internal/service/gosi"
	gradeService "github.com/masarhr/masar-backend-go/internal/service/grade"
	payrollService "github.com/masarhr/masar-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	gradeRepo := postgresql.NewGradeRepository(db)
	gosiRateRepo := postgresql.NewGosiRateRepository(db)
	changeRepo := postgresql.NewCompensationChangeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	rateService := gosiService.NewRateService(db, gosiRateRepo, cfg.Gosi.FallbackDisabled)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, rateService, cfg.Payroll.BatchWorkers)
	changeService := compensationService.NewChangeService(db, changeRepo, employeeRepo, gradeRepo, payrollRepo, rateService)
	gradeSvc := gradeService.NewGradeService(gradeRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	gosiHandler := appHTTP.NewGosiHandler(rateService)
	compensationHandler := appHTTP.NewCompensationHandler(changeService)
	gradeHandler := appHTTP.NewGradeHandler(gradeSvc)

	router := appHTTP.NewRouter(
		JWTService,
		payrollHandler,
		gosiHandler,
		compensationHandler,
		gradeHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
