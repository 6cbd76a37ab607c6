package routes

import (
	"HospitalMgmt/cache"
	"HospitalMgmt/config"
	"HospitalMgmt/controllers"
	"HospitalMgmt/handlers"
	"HospitalMgmt/mailer"
	"HospitalMgmt/middlewares"
	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
	"HospitalMgmt/services"
	"HospitalMgmt/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(config *config.AppConfig, db *gorm.DB, cache *cache.Cache, tokens *utils.TokenMaker, mail mailer.Mailer) http.Handler {
	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middlewares.CorsMiddleware(middlewares.DefaultCorsConfig(config.AllowedOrigins())))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: config.RateLimitRPS,
		Burst:             config.RateLimitBurst,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	userRepo := repositories.NewUserRepository(db, cache)
	staffRepo := repositories.NewStaffRepository(db, cache)
	patientRepo := repositories.NewPatientRepository(db, cache)
	opdItemRepo := repositories.NewOPDItemRepository(db, cache)
	pathologyTestRepo := repositories.NewPathologyTestRepository(db, cache)
	opdBillRepo := repositories.NewOPDBillRepository(db, cache)
	pathologyBillRepo := repositories.NewPathologyBillRepository(db, cache)
	commissionRepo := repositories.NewCommissionRepository(db)

	userService := services.NewUserService(userRepo, tokens)
	opdBillService := services.NewOPDBillService(opdBillRepo, opdItemRepo)
	pathologyBillService := services.NewPathologyBillService(pathologyBillRepo, pathologyTestRepo)
	invoiceService := services.NewInvoiceService(opdBillRepo, pathologyBillRepo, mail, config.ClinicName)

	billing := controllers.BillingHandlers{
		OPDItems:       handlers.NewCatalogHandler[models.OPDItem](services.NewCatalogService[models.OPDItem](opdItemRepo)),
		PathologyTests: handlers.NewCatalogHandler[models.PathologyTest](services.NewCatalogService[models.PathologyTest](pathologyTestRepo)),
		OPDBills:       handlers.NewBillHandler[models.OPDBill](opdBillService, invoiceService.OPDInvoice, invoiceService.EmailOPDInvoice),
		PathologyBills: handlers.NewBillHandler[models.PathologyBill](pathologyBillService, invoiceService.PathologyInvoice, invoiceService.EmailPathologyInvoice),
		Reports:        handlers.NewReportHandler(pathologyBillService),
		Commissions:    handlers.NewCommissionHandler(services.NewCommissionService(commissionRepo)),
	}

	// Register routes
	controllers.SetupRootRoute(router)

	protected := router.Group("/", middlewares.TokenAuthMiddleware(tokens))

	authController := controllers.NewAuthController(handlers.NewAuthHandler(userService))
	authController.RegisterRoutes(router, protected)

	controllers.SetupPatientRoutes(
		protected,
		handlers.NewDashboardHandler(services.NewDashboardService(patientRepo, opdBillRepo, pathologyBillRepo)),
		handlers.NewPatientHandler(services.NewPatientService(patientRepo)),
		handlers.NewStaffHandler(services.NewStaffService(staffRepo)),
	)
	controllers.SetupBillingRoutes(protected, billing)

	return router
}
