package router

import (
	"github.com/labstack/echo/v4"

	"brokerdex/internal/adapter/api/handler"
	"brokerdex/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/api/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/stats", adminHandler.GetStats)

	admin.GET("/agents", adminHandler.ListAgents)
	admin.POST("/agents/:id/approve", adminHandler.ApproveAgent)
	admin.POST("/agents/:id/reject", adminHandler.RejectAgent)

	admin.GET("/registrations", adminHandler.ListRegistrations)
	admin.GET("/registrations/:id", adminHandler.GetRegistration)
	admin.POST("/registrations/:id/approve", adminHandler.ApproveRegistration)
	admin.POST("/registrations/:id/reject", adminHandler.RejectRegistration)
}
