package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/joho/godotenv"

	"kasirhub/internal/caching"
	"kasirhub/internal/handlers"
	"kasirhub/internal/jobs/background"
	"kasirhub/internal/middleware"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"
	"kasirhub/internal/services"
	"kasirhub/pkg/database"
)

const version = "1.0.0"

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using generated secret (sessions will not survive restarts)")
	}
	tokenTTL := envInt("JWT_TTL_SECONDS", 3600)
	refreshTTL := envInt("REFRESH_TTL_SECONDS", 30*24*3600)

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := envInt("REDIS_DB", 0)

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorageService(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	for _, bucket := range []string{"product-images", "payment-proofs", "expense-proofs"} {
		if err := storageSvc.EnsureBucketExists(context.Background(), bucket); err != nil {
			log.Printf("WARNING: Failed to ensure bucket %s: %v", bucket, err)
		}
	}

	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	partnerRepo := repositories.NewPartnerRepository(pool)
	branchRepo := repositories.NewBranchRepository(pool)
	branchAdminRepo := repositories.NewBranchAdminRepository(pool)
	cashierAccountRepo := repositories.NewCashierAccountRepository(pool)
	pinOperatorRepo := repositories.NewPinOperatorRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	categoryRepo := repositories.NewCategoryRepository(pool)
	discountRuleRepo := repositories.NewDiscountRuleRepository(pool)
	licenseRepo := repositories.NewLicenseRepository(pool)
	planRepo := repositories.NewSubscriptionPlanRepository(pool)
	partnerSubRepo := repositories.NewPartnerSubscriptionRepository(pool)
	orderRepo := repositories.NewSubscriptionOrderRepository(pool)
	shiftRepo := repositories.NewShiftScheduleRepository(pool)
	voidRepo := repositories.NewVoidRequestRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret, tokenTTL, refreshTTL)
	subSvc := services.NewSubscriptionService(planRepo, partnerSubRepo, orderRepo, branchRepo, licenseRepo)
	licenseSvc := services.NewLicenseService(licenseRepo, subSvc, cacheSvc)
	productSvc := services.NewProductService(productRepo)
	reportSvc := services.NewReportService(reportRepo, cacheSvc)
	expenseSvc := services.NewExpenseService(expenseRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo, partnerRepo, cacheSvc)
	partnerHandlers := handlers.NewPartnerHandlers(partnerRepo, cacheSvc)
	branchHandlers := handlers.NewBranchHandlers(branchRepo, subSvc)
	branchAdminHandlers := handlers.NewBranchAdminHandlers(branchAdminRepo, branchRepo, authSvc)
	cashierHandlers := handlers.NewCashierHandlers(cashierAccountRepo, pinOperatorRepo, authSvc)
	productHandlers := handlers.NewProductHandlers(productSvc, storageSvc)
	categoryHandlers := handlers.NewCategoryHandlers(categoryRepo)
	discountRuleHandlers := handlers.NewDiscountRuleHandlers(discountRuleRepo)
	licenseHandlers := handlers.NewLicenseHandlers(licenseSvc)
	subscriptionHandlers := handlers.NewSubscriptionHandlers(subSvc, planRepo, orderRepo, storageSvc)
	shiftHandlers := handlers.NewShiftScheduleHandlers(shiftRepo)
	voidHandlers := handlers.NewVoidRequestHandlers(voidRepo)
	expenseHandlers := handlers.NewExpenseHandlers(expenseSvc, storageSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler := background.NewJobScheduler(subSvc, licenseSvc, reportSvc, cacheSvc, partnerRepo)
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	v1 := e.Group("/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.RefreshToken)

	// Public device activation (the POS device has no dashboard session)
	v1.POST("/licenses/activate", licenseHandlers.ActivateLicense)

	// Protected routes
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.NewJWTConfig(jwtSecret, cacheSvc)))

	protected.GET("/me", authHandlers.Me)
	protected.POST("/auth/logout", authHandlers.Logout)
	protected.POST("/auth/verify-email", authHandlers.VerifyEmail)

	// Platform operator routes
	platform := protected.Group("", middleware.RequireRole(models.RolePlatformAdmin))
	platform.POST("/partners", partnerHandlers.CreatePartner)
	platform.GET("/partners", partnerHandlers.ListPartners)
	platform.GET("/partners/:id", partnerHandlers.GetPartnerByID)
	platform.PUT("/partners/:id", partnerHandlers.UpdatePartner)
	platform.PATCH("/partners/:id/status", partnerHandlers.SetPartnerStatus)
	platform.DELETE("/partners/:id", partnerHandlers.DeletePartner)

	// Plan catalog is readable by every dashboard role
	protected.GET("/plans", subscriptionHandlers.ListPlans)

	platform.POST("/plans", subscriptionHandlers.CreatePlan)
	platform.PUT("/plans/:id", subscriptionHandlers.UpdatePlan)
	platform.DELETE("/plans/:id", subscriptionHandlers.DeletePlan)
	platform.GET("/orders", subscriptionHandlers.ListPendingOrders)
	platform.POST("/orders/:id/approve", subscriptionHandlers.ApproveOrder)
	platform.POST("/orders/:id/reject", subscriptionHandlers.RejectOrder)

	// Business owner routes
	mitra := protected.Group("", middleware.RequireRole(models.RoleSuperAdmin))
	mitra.POST("/branches", branchHandlers.CreateBranch)
	mitra.PUT("/branches/:id", branchHandlers.UpdateBranch)
	mitra.DELETE("/branches/:id", branchHandlers.DeleteBranch)

	mitra.POST("/branch-admins", branchAdminHandlers.CreateBranchAdmin)
	mitra.GET("/branch-admins", branchAdminHandlers.ListBranchAdmins)
	mitra.PUT("/branch-admins/:id", branchAdminHandlers.UpdateBranchAdmin)
	mitra.PATCH("/branch-admins/:id/active", branchAdminHandlers.SetBranchAdminActive)
	mitra.DELETE("/branch-admins/:id", branchAdminHandlers.DeleteBranchAdmin)

	mitra.POST("/licenses", licenseHandlers.CreateLicense)
	mitra.GET("/licenses", licenseHandlers.ListLicenses)
	mitra.PATCH("/licenses/:id/assign", licenseHandlers.AssignLicense)
	mitra.POST("/licenses/:id/reset-device", licenseHandlers.ResetLicenseDevice)
	mitra.DELETE("/licenses/:id", licenseHandlers.DeleteLicense)

	mitra.POST("/subscription-orders", subscriptionHandlers.CreateOrder)
	mitra.POST("/subscription-orders/:id/proof", subscriptionHandlers.UploadPaymentProof)
	mitra.GET("/subscription-orders", subscriptionHandlers.ListMyOrders)
	mitra.GET("/subscription", subscriptionHandlers.GetMySubscription)

	// Owner and branch admin routes
	partner := protected.Group("", middleware.RequireRole(models.RoleSuperAdmin, models.RoleBranchAdmin))
	partner.GET("/branches", branchHandlers.ListBranches)
	partner.GET("/branches/:id", branchHandlers.GetBranchByID)

	partner.POST("/products", productHandlers.CreateProduct)
	partner.GET("/products", productHandlers.ListProducts)
	partner.GET("/products/:id", productHandlers.GetProductByID)
	partner.PUT("/products/:id", productHandlers.UpdateProduct)
	partner.DELETE("/products/:id", productHandlers.DeleteProduct)

	partner.POST("/categories", categoryHandlers.CreateCategory)
	partner.GET("/categories", categoryHandlers.ListCategories)
	partner.PUT("/categories/:id", categoryHandlers.UpdateCategory)
	partner.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	partner.POST("/discount-rules", discountRuleHandlers.CreateDiscountRule)
	partner.GET("/discount-rules", discountRuleHandlers.ListDiscountRules)
	partner.PUT("/discount-rules/:id", discountRuleHandlers.UpdateDiscountRule)
	partner.DELETE("/discount-rules/:id", discountRuleHandlers.DeleteDiscountRule)

	partner.POST("/cashier-accounts", cashierHandlers.CreateCashierAccount)
	partner.GET("/cashier-accounts", cashierHandlers.ListCashierAccounts)
	partner.PUT("/cashier-accounts/:id", cashierHandlers.UpdateCashierAccount)
	partner.DELETE("/cashier-accounts/:id", cashierHandlers.DeleteCashierAccount)

	partner.POST("/pin-operators", cashierHandlers.CreatePinOperator)
	partner.GET("/pin-operators", cashierHandlers.ListPinOperators)
	partner.PUT("/pin-operators/:id", cashierHandlers.UpdatePinOperator)
	partner.DELETE("/pin-operators/:id", cashierHandlers.DeletePinOperator)

	partner.POST("/shift-schedules", shiftHandlers.CreateShiftSchedule)
	partner.GET("/shift-schedules", shiftHandlers.ListShiftSchedules)
	partner.PUT("/shift-schedules/:id", shiftHandlers.UpdateShiftSchedule)
	partner.DELETE("/shift-schedules/:id", shiftHandlers.DeleteShiftSchedule)

	partner.POST("/void-requests", voidHandlers.CreateVoidRequest)
	partner.GET("/void-requests", voidHandlers.ListVoidRequests)
	partner.POST("/void-requests/:id/approve", voidHandlers.ApproveVoidRequest)
	partner.POST("/void-requests/:id/reject", voidHandlers.RejectVoidRequest)

	partner.POST("/expenses", expenseHandlers.CreateExpense)
	partner.GET("/expenses", expenseHandlers.ListExpenses)
	partner.PUT("/expenses/:id", expenseHandlers.UpdateExpense)
	partner.DELETE("/expenses/:id", expenseHandlers.DeleteExpense)

	partner.GET("/reports/sales", reportHandlers.GetSalesReport)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("KasirHub admin API v%s starting on port %s", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", port)))
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}
