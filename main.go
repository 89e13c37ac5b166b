package main

import (
	"log"

	"github.com/neuralarc-ai/helium-inviter/config"
	"github.com/neuralarc-ai/helium-inviter/controllers"
	"github.com/neuralarc-ai/helium-inviter/middleware"
	"github.com/neuralarc-ai/helium-inviter/models"
	"github.com/neuralarc-ai/helium-inviter/services/activity"
	"github.com/neuralarc-ai/helium-inviter/services/invite"
	"github.com/neuralarc-ai/helium-inviter/services/mail"
	"github.com/neuralarc-ai/helium-inviter/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Helium Inviter API
// @version         1.0
// @description     Backend for the Helium beta invitation admin dashboard

// @host      localhost:3001
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token issued by /auth/login
func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Error initializing logger:", err)
	}

	if err := godotenv.Load(); err != nil {
		utils.LogInfo("No .env file found, using process environment")
	}

	cfg := config.GetConfig()

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Error connecting to database:", err)
	}

	models.SetDB(db)

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// The dashboard is served from a different origin; keep CORS wide open
	// and answer preflights without a body.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	activityService := activity.NewActivityService(db)
	inviteService := invite.NewInviteService(db)
	mailService := mail.NewMailService()

	authController := controllers.NewAuthController(activityService)
	inviteCodeController := controllers.NewInviteCodeController(inviteService, activityService)
	emailController := controllers.NewEmailController(mailService, inviteService, activityService)
	waitlistController := controllers.NewWaitlistController(db, activityService)
	mailSettingsController := controllers.NewMailSettingsController()
	activityController := controllers.NewActivityController(activityService)

	api := r.Group("/api")
	{
		// Public routes
		api.GET("/health", controllers.HealthCheck)
		api.POST("/auth/login", authController.Login)

		// Everything else requires the admin session
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/send-invite-email", emailController.SendInviteEmail)
			protected.POST("/send-reminder-email", emailController.SendReminderEmail)
			protected.POST("/test-email", emailController.SendTestEmail)

			protected.GET("/invite-codes", inviteCodeController.ListInviteCodes)
			protected.POST("/generate-codes", inviteCodeController.GenerateInviteCodes)
			protected.PUT("/invite-codes/:id", inviteCodeController.UpdateInviteCode)
			protected.DELETE("/invite-codes/:id", inviteCodeController.DeleteInviteCode)
			protected.POST("/invite-codes/delete-expired", inviteCodeController.DeleteExpiredCodes)
			protected.GET("/dashboard-stats", inviteCodeController.GetDashboardStats)

			protected.GET("/waitlist", waitlistController.ListWaitlistEntries)
			protected.PUT("/waitlist/:id", waitlistController.UpdateWaitlistEntry)
			protected.DELETE("/waitlist/:id", waitlistController.DeleteWaitlistEntry)
			protected.POST("/waitlist/:id/notify", waitlistController.MarkNotified)

			protected.GET("/admin/mail/settings", mailSettingsController.GetMailSettings)
			protected.PUT("/admin/mail/settings", mailSettingsController.UpdateMailSettings)
			protected.GET("/admin/stats", controllers.GetSystemStats)
			protected.GET("/admin/system/status", controllers.GetSystemStatus)
			protected.GET("/admin/logs", controllers.GetLogs)
			protected.GET("/admin/activities", activityController.GetRecentActivities)
		}

		// WebSocket log stream authenticates via query token instead of the
		// Authorization header.
		api.GET("/admin/logs/watch", controllers.WatchLogs)
	}

	utils.LogInfo("Helium Inviter server starting on port " + cfg.Port)
	r.Run(":" + cfg.Port)
}
