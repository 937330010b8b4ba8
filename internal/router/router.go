package router

import (
	"time"

	"smartpos/internal/config"
	"smartpos/internal/handler"
	"smartpos/internal/infra"
	"smartpos/internal/middleware"
	"smartpos/internal/model"
	"smartpos/internal/repository"
	"smartpos/internal/service"
	"smartpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, pushCB *infra.CircuitBreaker, pushSvc service.PushService, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	businessRepo := repository.NewBusinessRepository(db)
	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	onboardingRepo := repository.NewOnboardingRepository(db)
	revokedRepo := repository.NewRevokedTokenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	subscriptionSvc := service.NewSubscriptionService(subscriptionRepo, businessRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, businessRepo, subscriptionRepo, revokedRepo, subscriptionSvc, cfg)
	productSvc := service.NewProductService(productRepo)
	saleSvc := service.NewSaleService(orderRepo, productRepo)
	onboardingSvc := service.NewOnboardingService(onboardingRepo, productRepo, orderRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	onboardingH := handler.NewOnboardingHandler(onboardingSvc)
	superadminH := handler.NewSuperadminHandler(subscriptionSvc, dispatcher)
	pushH := handler.NewPushHandler(pushSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, pushCB))

	// Auth (public). Logout stays outside AuthRequired so a browser holding
	// an expired or revoked cookie can still clear it.
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/logout", authH.Logout)
		auth.POST("/create-superadmin", authH.CreateSuperadmin)
	}

	// Protected routes
	authMW := middleware.AuthRequired(cfg.JWTSecret, revokedRepo)
	protected := r.Group("", authMW)
	{
		products := protected.Group("/products")
		{
			products.GET("", productsH.List)
			products.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), productsH.Add)
			products.PATCH("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), productsH.UpdateStock)
		}

		sales := protected.Group("/sales")
		{
			sales.POST("", salesH.Record)
			sales.GET("", salesH.List)
		}

		onboarding := protected.Group("/onboarding")
		{
			onboarding.POST("/events", onboardingH.RecordEvent)
			onboarding.GET("/status", onboardingH.Status)
		}

		push := protected.Group("/push")
		{
			push.GET("/vapid-key", pushH.VAPIDKey)
			push.POST("/subscribe", pushH.Subscribe)
		}

		superadmin := protected.Group("/superadmin", middleware.RequireRole(model.RoleSuperadmin))
		{
			superadmin.GET("/clients", superadminH.ListClients)
			superadmin.POST("/clients/:business_id/activate", superadminH.Activate)
			superadmin.POST("/clients/:business_id/renew", superadminH.Renew)
			superadmin.POST("/clients/:business_id/suspend", superadminH.Suspend)
			superadmin.POST("/clients/:business_id/reactivate", superadminH.Reactivate)
			superadmin.POST("/clients/:business_id/push-reminder", superadminH.PushReminder)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
