package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"gymdesk/internal/handlers"
	"gymdesk/internal/middleware"
	"gymdesk/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Firebase auth
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credPath = "./firebase-service-account.json"
	}
	authClient, err := services.InitFirebase(credPath)
	if err != nil {
		log.Fatalf("Firebase initialization failed: %v", err)
	}
	accounts := services.NewAccountService(authClient)

	// Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Redis is optional; without it metrics are computed on every request.
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, metrics caching disabled: %v", err)
			cache = nil
		}
	} else {
		log.Println("REDIS_URL not set, metrics caching disabled")
	}

	roster := services.NewRosterService(db, cache)
	midtransClient := services.NewMidtransService()
	checkout := services.NewCheckoutService(db, midtransClient, accounts)
	waha := services.NewWahaService()
	email := services.NewEmailService()

	e := echo.New()
	e.HTTPErrorHandler = middleware.CustomErrorHandler
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 30 * time.Second

	authHandler := handlers.NewAuthHandler(authClient, accounts, email)
	memberHandler := handlers.NewMemberHandler(roster)
	paymentHandler := handlers.NewPaymentHandler(roster)
	dashboardHandler := handlers.NewDashboardHandler(roster)
	subscriptionHandler := handlers.NewSubscriptionHandler(accounts, checkout)
	reminderHandler := handlers.NewReminderHandler(waha, email)

	// Public routes
	e.POST("/auth/signup", authHandler.HandleSignup)
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)
	e.POST("/auth/reset-password", authHandler.HandleResetPassword)
	e.POST("/webhooks/midtrans", subscriptionHandler.HandleMidtransNotification)

	// Authenticated routes. Subscription endpoints stay outside the access
	// gate so an expired trial can still be upgraded.
	api := e.Group("/api")
	api.Use(middleware.RequireAuth(authClient))

	api.GET("/subscription", subscriptionHandler.GetSubscription)
	api.GET("/subscription/plans", subscriptionHandler.ListPlans)
	api.POST("/subscription/checkout", subscriptionHandler.InitiateCheckout)

	// Everything below requires an active trial or a paid subscription.
	gated := api.Group("")
	gated.Use(middleware.RequireFullAccess(accounts))

	gated.GET("/members", memberHandler.ListMembers)
	gated.POST("/members", memberHandler.RegisterMember)
	gated.PUT("/members/:id", memberHandler.UpdateMember)
	gated.PATCH("/members/:id/paid", memberHandler.SetPaid)
	gated.DELETE("/members/:id", memberHandler.DeleteMember)

	gated.GET("/payments", paymentHandler.ListPayments)
	gated.POST("/payments", paymentHandler.RecordPayment)

	gated.GET("/dashboard", dashboardHandler.GetMetrics)
	gated.POST("/dashboard/refresh", dashboardHandler.RefreshMetrics)

	gated.POST("/reminders/whatsapp", reminderHandler.SendWhatsAppReminder)
	gated.POST("/reminders/email", reminderHandler.SendEmailReminder)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
