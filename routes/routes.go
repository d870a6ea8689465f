package routes

import (
	"reserve-management-api/controllers"
	"reserve-management-api/middleware"
	"reserve-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Reserve Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/refresh", controllers.RefreshToken)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// RIDS forms
			rids := protected.Group("/rids")
			{
				// Reservists manage their own form
				rids.POST("", middleware.RequireRole(models.RoleReservist), controllers.CreateRIDS)
				rids.GET("/me", middleware.RequireRole(models.RoleReservist), controllers.GetMyRIDS)
				rids.GET("/:id", controllers.GetRIDS)
				rids.PUT("/:id", middleware.RequireRole(models.RoleReservist), controllers.UpdateRIDS)
				rids.POST("/:id/submit", middleware.RequireRole(models.RoleReservist), controllers.SubmitRIDS)
				rids.GET("/:id/history", controllers.GetRIDSHistory)

				// Staff/admin review queue and decisions
				rids.GET("", middleware.RequireRole(models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin), controllers.GetRIDSList)
				rids.POST("/:id/approve", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.ApproveRIDS)
				rids.POST("/:id/reject", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.RejectRIDS)
				rids.POST("/:id/status", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.ChangeRIDSStatus)

				// Supporting documents
				rids.POST("/:id/documents", middleware.RequireRole(models.RoleReservist), controllers.UploadRIDSDocument)
				rids.GET("/:id/documents", controllers.GetRIDSDocuments)
			}

			// Documents
			documents := protected.Group("/documents")
			{
				documents.GET("/download/:document_id", controllers.DownloadRIDSDocument)
				documents.DELETE("/:document_id", middleware.RequireRole(models.RoleReservist), controllers.DeleteRIDSDocument)
				documents.GET("/types", controllers.GetDocumentTypes)
			}

			// Promotion board
			promotions := protected.Group("/promotions")
			{
				promotions.GET("/requirements", controllers.GetPromotionRequirements)
				promotions.POST("/requirements", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.CreatePromotionRequirement)
				promotions.PUT("/requirements/:id", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.UpdatePromotionRequirement)
				promotions.DELETE("/requirements/:id", middleware.RequireRole(models.RoleSuperAdmin), controllers.DeletePromotionRequirement)

				promotions.GET("/eligibility/:id", middleware.RequireRole(models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin), controllers.GetPromotionEligibility)
				promotions.GET("/candidates", middleware.RequireRole(models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin), controllers.GetPromotionCandidates)
			}

			// Training sessions and attendance
			trainings := protected.Group("/trainings")
			{
				trainings.GET("", controllers.GetTrainingSessions)
				trainings.GET("/:id", controllers.GetTrainingSession)
				trainings.POST("", middleware.RequireRole(models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin), controllers.CreateTrainingSession)
				trainings.PUT("/:id", middleware.RequireRole(models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin), controllers.UpdateTrainingSession)
				trainings.POST("/:id/attendance", middleware.RequireRole(models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin), controllers.RecordAttendance)
				trainings.GET("/attendance/me", middleware.RequireRole(models.RoleReservist), controllers.GetMyAttendance)
			}

			// Announcements
			announcements := protected.Group("/announcements")
			{
				announcements.GET("/active", controllers.GetActiveAnnouncements)
				announcements.GET("", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.GetAnnouncements)
				announcements.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.CreateAnnouncement)
				announcements.PUT("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.UpdateAnnouncement)
				announcements.DELETE("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.DeleteAnnouncement)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/unread-count", controllers.GetUnreadNotificationCount)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Account administration
			users := protected.Group("/users")
			users.Use(middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
			{
				users.GET("", controllers.GetUsers)
				users.GET("/:id", controllers.GetUser)
				users.POST("", controllers.CreateUser)
				users.PUT("/:id", controllers.UpdateUser)
				users.DELETE("/:id", controllers.DeleteUser)
			}
		}
	}
}
