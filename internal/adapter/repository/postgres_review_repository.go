package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/domain/repository"
	apperrors "brokerdex/pkg/errors"
)

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) repository.ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

// Create inserts the review and refreshes the agent's denormalized rating
// fields with scalar subqueries in the same transaction, so concurrent
// submissions cannot publish a stale average. The foreign key on agent_id
// surfaces a missing agent as not found.
func (r *postgresReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.Internal("Failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	const insertSQL = `
		INSERT INTO reviews (id, agent_id, reviewer_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, insertSQL,
		review.ID, review.AgentID, review.ReviewerName, review.Rating,
		review.Comment, review.CreatedAt,
	); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NotFound("Agent", err)
		}
		return apperrors.Internal("Failed to create review", err)
	}

	const aggregateSQL = `
		UPDATE agents SET
			number_of_reviews = (SELECT COUNT(*) FROM reviews WHERE agent_id = $1),
			rating_average = (SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE agent_id = $1)
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, aggregateSQL, review.AgentID); err != nil {
		return apperrors.Internal("Failed to update agent rating", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Internal("Failed to commit review", err)
	}

	return nil
}

func (r *postgresReviewRepository) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*entity.Review, int64, error) {
	const query = `
		SELECT id, agent_id, reviewer_name, rating, comment, created_at
		FROM reviews
		WHERE agent_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entity.Review{}
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.AgentID, &rv.ReviewerName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, 0, apperrors.Internal("Failed to scan review", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Internal("Failed to iterate reviews", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE agent_id = $1`, agentID).Scan(&total); err != nil {
		return nil, 0, apperrors.Internal("Failed to count reviews", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) BreakdownByAgent(ctx context.Context, agentID string) (entity.RatingBreakdown, error) {
	const query = `
		SELECT rating, COUNT(*)
		FROM reviews
		WHERE agent_id = $1
		GROUP BY rating
	`

	rows, err := r.pool.Query(ctx, query, agentID)
	if err != nil {
		return entity.RatingBreakdown{}, apperrors.Internal("Failed to compute rating breakdown", err)
	}
	defer rows.Close()

	var breakdown entity.RatingBreakdown
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return entity.RatingBreakdown{}, apperrors.Internal("Failed to scan rating breakdown", err)
		}
		switch rating {
		case 1:
			breakdown.Stars1 = count
		case 2:
			breakdown.Stars2 = count
		case 3:
			breakdown.Stars3 = count
		case 4:
			breakdown.Stars4 = count
		case 5:
			breakdown.Stars5 = count
		}
	}
	if err := rows.Err(); err != nil {
		return entity.RatingBreakdown{}, apperrors.Internal("Failed to iterate rating breakdown", err)
	}

	return breakdown, nil
}
