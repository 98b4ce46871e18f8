package repository

import (
	"context"

	"brokerdex/internal/domain/entity"
)

type ReviewRepository interface {
	// Create inserts the review and recomputes the owning agent's
	// numberOfReviews and ratingAverage in the same transaction. A missing
	// agent yields a not found error.
	Create(ctx context.Context, review *entity.Review) error
	ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*entity.Review, int64, error)
	// BreakdownByAgent counts reviews per star value over all reviews.
	BreakdownByAgent(ctx context.Context, agentID string) (entity.RatingBreakdown, error)
}
