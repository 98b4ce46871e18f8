package usecase

import (
	"context"
	"strings"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/domain/repository"
	apperrors "brokerdex/pkg/errors"
)

const maxCommentLength = 1000

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewUseCase(reviewRepo repository.ReviewRepository) *ReviewUseCase {
	return &ReviewUseCase{reviewRepo: reviewRepo}
}

type AddReviewInput struct {
	ReviewerName string
	Rating       int
	Comment      string
}

// AddReview validates and persists a review; the repository recomputes the
// agent's denormalized rating fields in the same operation. Validation runs
// before any write, so a rejected review leaves no partial state.
func (uc *ReviewUseCase) AddReview(ctx context.Context, agentID string, input AddReviewInput) (*entity.Review, error) {
	if strings.TrimSpace(input.ReviewerName) == "" {
		return nil, apperrors.BadRequest("ReviewerName is required", nil)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if len(input.Comment) > maxCommentLength {
		return nil, apperrors.BadRequest("Comment must be at most 1000 characters", nil)
	}

	review := &entity.Review{
		AgentID:      agentID,
		ReviewerName: input.ReviewerName,
		Rating:       input.Rating,
		Comment:      input.Comment,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (uc *ReviewUseCase) ListReviews(ctx context.Context, agentID string, page, pageSize int) ([]*entity.Review, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	return uc.reviewRepo.ListByAgent(ctx, agentID, pageSize, (page-1)*pageSize)
}
