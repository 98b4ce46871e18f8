package router

import (
	"github.com/labstack/echo/v4"

	"brokerdex/internal/adapter/api/handler"
)

func SetupAgentRouter(e *echo.Echo) {
	agentHandler := handler.GetAgentHandler()
	registrationHandler := handler.GetRegistrationHandler()

	agents := e.Group("/api/agents")
	agents.POST("/register", registrationHandler.Register)
	agents.GET("", agentHandler.ListAgents)
	agents.GET("/:id", agentHandler.GetAgent)
	agents.GET("/:id/dashboard", agentHandler.GetDashboard)
}
