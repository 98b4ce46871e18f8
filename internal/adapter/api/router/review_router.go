package router

import (
	"github.com/labstack/echo/v4"

	"brokerdex/internal/adapter/api/handler"
)

func SetupReviewRouter(e *echo.Echo) {
	reviewHandler := handler.GetReviewHandler()

	reviews := e.Group("/api/agents/:agentId/reviews")
	reviews.GET("", reviewHandler.ListReviews)
	reviews.POST("", reviewHandler.AddReview)
}
