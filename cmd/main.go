package main

import (
	"context"
	"net/http"
	"time"

	"chaptr/config"
	"chaptr/internal/auth"
	"chaptr/internal/ledger"
	"chaptr/internal/payments"
	"chaptr/internal/storage"
	"chaptr/internal/utils"
	"chaptr/internal/verify"
	"chaptr/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	utils.Init()

	if config.C.App.ID == "" {
		utils.Log.Warn("APP_ID not set; payment confirmation and proof verification will fail")
	}
	if config.C.JWT.Secret == "" {
		utils.Log.Fatal("JWT_SECRET not set")
	}

	//-------------------------------------------------------
	// 1. Pending-payment registry: Redis when configured,
	//    in-memory otherwise
	//-------------------------------------------------------
	pendingTTL := time.Duration(config.C.Payments.PendingTTLMin) * time.Minute

	var registry payments.Registry
	if config.C.Redis.Addr != "" {
		rdb, err := storage.OpenRedis(config.C.Redis.Addr, config.C.Redis.Password, config.C.Redis.DB)
		if err != nil {
			utils.Log.Fatal("redis init failed", "err", err)
		}
		registry = payments.NewRedisRegistry(rdb, pendingTTL)
		utils.Log.Info("pending registry: redis", "addr", config.C.Redis.Addr)
	} else {
		registry = payments.NewMemoryRegistry()
		utils.Log.Info("pending registry: in-memory")
	}

	//-------------------------------------------------------
	// 2. Tip ledger: Postgres when configured
	//-------------------------------------------------------
	var tips ledger.Ledger
	if config.C.Database.DSN != "" {
		db, err := storage.OpenPostgres(config.C.Database.DSN)
		if err != nil {
			utils.Log.Fatal("postgres init failed", "err", err)
		}
		tips, err = ledger.NewPostgresLedger(db)
		if err != nil {
			utils.Log.Fatal("tips schema init failed", "err", err)
		}
		utils.Log.Info("tip ledger: postgres")
	} else {
		tips = ledger.NewMemoryLedger()
		utils.Log.Info("tip ledger: in-memory")
	}

	//-------------------------------------------------------
	// 3. Notification hub
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()

	//-------------------------------------------------------
	// 4. Payment service + expiry sweep
	//-------------------------------------------------------
	var txVerifier payments.TransactionVerifier
	if config.C.DevPortal.APIKey != "" {
		txVerifier = payments.NewDevPortalVerifier(config.C.DevPortal.BaseURL, config.C.App.ID, config.C.DevPortal.APIKey)
	} else if config.C.Payments.AllowUnverified {
		utils.Log.Warn("DEV_PORTAL_API_KEY not set, payments will be accepted WITHOUT verification")
	}

	svc := payments.NewService(registry, tips, txVerifier, hub, payments.ServiceOptions{
		AppID:           config.C.App.ID,
		MinAmount:       config.C.Payments.MinAmount,
		MaxAmount:       config.C.Payments.MaxAmount,
		PendingTTL:      pendingTTL,
		AllowUnverified: config.C.Payments.AllowUnverified,
	})

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := svc.ExpireStale(context.Background()); err != nil {
				utils.Log.Error("expiry sweep failed", "err", err)
			} else if n > 0 {
				utils.Log.Info("expired stale payments", "count", n)
			}
		}
	}()

	//-------------------------------------------------------
	// 5. Gin + CORS + routes
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	secret := []byte(config.C.JWT.Secret)

	authHandler := auth.NewHandler(auth.NewPersonalSignVerifier(), secret, config.C.Nonce.TTLSeconds)
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/nonce", authHandler.GetNonce)
		authGroup.POST("/complete-siwe", authHandler.CompleteSiwe)
	}

	verifyHandler := verify.NewHandler(
		verify.NewCloudVerifier(config.C.DevPortal.BaseURL, config.C.App.ID),
		config.C.App.ID,
	)
	r.POST("/verify", verifyHandler.Verify)

	ph := payments.NewHandler(svc, tips)
	r.POST("/payments/initiate", ph.Initiate)
	r.POST("/payments/confirm", ph.Confirm)
	r.GET("/stories/:id/tips", ph.StoryTips)

	guarded := r.Group("/", auth.JwtAuthMiddleware(secret))
	{
		guarded.GET("/ws", websocket.ServeWS(hub))
		guarded.GET("/tips/author/:id", ph.AuthorTips)
	}

	//-------------------------------------------------------
	// 6. Serve
	//-------------------------------------------------------
	utils.Log.Info("server running", "port", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Log.Fatal("server stopped", "err", err)
	}
}
