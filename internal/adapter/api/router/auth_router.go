package router

import (
	"github.com/labstack/echo/v4"

	"brokerdex/internal/adapter/api/handler"
	"brokerdex/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	e.POST("/api/auth/login", authHandler.Login)

	protected := e.Group("/api/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.GET("/me", authHandler.Me)
}
