package app

import (
	"brickshare-backend/internal/auth"
	"brickshare-backend/internal/catalog"
	"brickshare-backend/internal/config"
	"brickshare-backend/internal/constants"
	"brickshare-backend/internal/database"
	"brickshare-backend/internal/health"
	"brickshare-backend/internal/leasing"
	"brickshare-backend/internal/ledger"
	"brickshare-backend/internal/middleware"
	"brickshare-backend/internal/payments"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration, returning the DB and Redis client for startup checks and
// seeding.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	shareLedger := ledger.GormLedger{}
	engine := &leasing.Service{DB: db, Ledger: shareLedger}

	// Payment webhook mounted early, before the session middleware, so the
	// raw body and signature header reach the handler untouched.
	webhook := &payments.WebhookHandler{DB: db, Engine: engine, WebhookSecret: cfg.PaymentWebhookSecret}
	app.Post("/api/v1/payments/webhook", webhook.HandleWebhook)

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// --- Routes (no auth) ---
	healthHandlers := &health.Handlers{Rdb: rdb, DB: db, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{UserFinder: userFinder, DB: db, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// --- Domain modules. Reads are open; mutations require a session and the
	// matching permission. ---
	if db != nil && rdb != nil {
		catalogService := &catalog.Service{DB: db, Ledger: shareLedger}
		catalogHandlers := &catalog.Handlers{Service: catalogService}
		roomGroup := app.Group("/api/v1/rooms")
		roomGroup.Post("/create-room", middleware.RequireAuth(), middleware.AuthorizePermission(constants.CreateRoom), catalogHandlers.CreateRoom)
		roomGroup.Patch("/update-lease-status", middleware.RequireAuth(), middleware.AuthorizePermission(constants.UpdateLeaseStatus), catalogHandlers.UpdateLeaseStatus)
		roomGroup.Get("/get-room/:room_id", catalogHandlers.GetRoom)

		leasingHandlers := &leasing.Handlers{Service: engine}
		leasingGroup := app.Group("/api/v1/leasing")
		leasingGroup.Post("/lease-shares", middleware.RequireAuth(), middleware.AuthorizePermission(constants.LeaseShares), leasingHandlers.LeaseShares)
		leasingGroup.Post("/reclaim-expired", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ReclaimShares), leasingHandlers.ReclaimExpired)
		leasingGroup.Get("/check-lease-status", leasingHandlers.CheckLeaseStatus)
		leasingGroup.Get("/get-tenants", leasingHandlers.GetTenants)
	}

	return app, db, rdb, nil
}
