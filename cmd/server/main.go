package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartapp "github.com/shop/backend/internal/application/cart"
	orderapp "github.com/shop/backend/internal/application/order"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/clients"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"github.com/shop/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Shop Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	orderLineRepo := persistence.NewGormOrderLineRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	shareRepo := persistence.NewGormCartShareRepository(db.DB)
	invitationRepo := persistence.NewGormCartInvitationRepository(db.DB)

	// Outbound service clients
	userDirectory := clients.NewHTTPUserDirectory(cfg.Clients.UserServiceURL, cfg.Clients.Timeout)
	emailSender := clients.NewHTTPEmailSender(cfg.Clients.EmailServiceURL, cfg.Clients.Timeout)
	productCatalog := clients.NewHTTPProductCatalog(cfg.Clients.CatalogServiceURL, cfg.Clients.Timeout)

	// Application services
	orderService := orderapp.NewOrderService(orderRepo, userDirectory, emailSender, log)
	sellerOrderService := orderapp.NewSellerOrderService(orderRepo, orderLineRepo, log)
	cartService := cartapp.NewCartService(cartRepo, productCatalog, log)
	sharingService := cartapp.NewSharingService(shareRepo, invitationRepo, cartRepo, emailSender, cfg.Cart.ShareBaseURL, log)
	sharingService.SetShareCache(cache.NewRedisShareTokenCache(redisClient, cfg.Cart.ShareCacheTTL))

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService)
	sellerOrderHandler := handler.NewSellerOrderHandler(sellerOrderService)
	cartHandler := handler.NewCartHandler(cartService)
	sharingHandler := handler.NewCartSharingHandler(sharingService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint, outside API versioning and authentication
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths, "/api/v1/system/info")
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Buyer-facing order routes
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.GET("/:id/lines", orderHandler.GetLines)
	orderRoutes.PUT("/:id/status", orderHandler.UpdateStatus)
	r.Register(orderRoutes)

	// Seller fulfillment routes
	sellerRoutes := router.NewDomainGroup("seller", "/seller")
	sellerRoutes.GET("/orders", sellerOrderHandler.ListOrders)
	sellerRoutes.GET("/orders/:id/lines", sellerOrderHandler.ListOrderLines)
	sellerRoutes.PUT("/orders/:id/check-status", sellerOrderHandler.CheckOrderStatus)
	sellerRoutes.GET("/order-lines", sellerOrderHandler.ListLines)
	sellerRoutes.PUT("/order-lines/:id/status", sellerOrderHandler.UpdateLineStatus)
	r.Register(sellerRoutes)

	// Cart routes
	cartRoutes := router.NewDomainGroup("carts", "/carts")
	cartRoutes.POST("", cartHandler.Create)
	cartRoutes.GET("", cartHandler.List)
	cartRoutes.POST("/merge", cartHandler.Merge)
	cartRoutes.GET("/:id", cartHandler.GetByID)
	cartRoutes.DELETE("/:id", cartHandler.Delete)
	cartRoutes.GET("/:id/items", cartHandler.GetItems)
	cartRoutes.PUT("/:id/items", cartHandler.AddItem)
	cartRoutes.PUT("/:id/items/:itemId", cartHandler.UpdateItemQuantity)
	cartRoutes.DELETE("/:id/items/:itemId", cartHandler.RemoveItem)
	cartRoutes.POST("/:id/invites", cartHandler.Invite)
	r.Register(cartRoutes)

	// Cart sharing routes. Token resolution is public so share links work
	// without an account.
	shareRoutes := router.NewDomainGroup("cart-shares", "/cart-shares")
	shareRoutes.POST("", sharingHandler.CreateShare)
	shareRoutes.GET("/token/:token", sharingHandler.GetShareByToken)
	shareRoutes.DELETE("/:id", sharingHandler.RevokeShare)
	r.Register(shareRoutes)

	invitationRoutes := router.NewDomainGroup("cart-invitations", "/cart-invitations")
	invitationRoutes.POST("", sharingHandler.InviteUser)
	invitationRoutes.GET("", sharingHandler.ListInvitations)
	invitationRoutes.POST("/accept", sharingHandler.AcceptInvitation)
	r.Register(invitationRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	r.Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
