package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/auth/signup", handler.SignUp)
		api.POST("/auth/signin", handler.SignIn)

		api.GET("/properties", handler.ListProperties)
		api.GET("/properties/nearby", handler.NearbyProperties)
		api.GET("/properties/:id", handler.GetProperty)
		api.GET("/properties/:id/contact", handler.ContactLink)

		api.GET("/language", handler.GetLanguage)
		api.PUT("/language", handler.SetLanguage)
	}

	authed := api.Group("")
	authed.Use(handler.AuthRequired())
	{
		authed.POST("/auth/signout", handler.SignOut)
		authed.GET("/auth/me", handler.Me)
		authed.PUT("/profile", handler.UpdateProfile)

		authed.GET("/favorites", handler.ListFavorites)
		authed.POST("/favorites/:propertyId/toggle", handler.ToggleFavorite)

		authed.GET("/notifications", handler.ListNotifications)
		authed.GET("/notifications/stream", handler.StreamNotifications)
		authed.POST("/notifications/read-all", handler.MarkAllNotificationsRead)
		authed.POST("/notifications/:id/read", handler.MarkNotificationRead)
	}

	admin := api.Group("/admin")
	admin.Use(handler.AuthRequired(), handler.AdminRequired())
	{
		admin.POST("/properties", handler.AdminCreateProperty)
		admin.PUT("/properties/:id", handler.AdminUpdateProperty)
		admin.DELETE("/properties/:id", handler.AdminDeleteProperty)
		admin.POST("/properties/:id/images", handler.AdminUploadImages)

		admin.GET("/users", handler.AdminListUsers)
		admin.PUT("/users/:id/active", handler.AdminSetUserActive)

		admin.GET("/transactions", handler.AdminListTransactions)
		admin.GET("/stats", handler.AdminStats)
		admin.POST("/notifications", handler.AdminCreateNotification)
	}
}
