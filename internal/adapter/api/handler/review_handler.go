package handler

import (
	"github.com/labstack/echo/v4"

	"brokerdex/internal/usecase"
	apperrors "brokerdex/pkg/errors"
	"brokerdex/pkg/response"
	"brokerdex/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

type addReviewRequest struct {
	ReviewerName string `json:"reviewerName" validate:"required"`
	Rating       int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment      string `json:"comment" validate:"max=1000"`
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	params := utils.GetPaginationParams(c, 10)

	reviews, total, err := h.reviewUseCase.ListReviews(c.Request().Context(), c.Param("agentId"), params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, params.Page, params.PageSize, total)
}

func (h *ReviewHandler) AddReview(c echo.Context) error {
	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, apperrors.BadRequest("Invalid request payload", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.AddReview(c.Request().Context(), c.Param("agentId"), usecase.AddReviewInput{
		ReviewerName: req.ReviewerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessMessage(c, review, "Review added")
}
