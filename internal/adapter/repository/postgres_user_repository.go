package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/domain/repository"
	apperrors "brokerdex/pkg/errors"
)

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &postgresUserRepository{pool: pool}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = entity.RoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO users (id, phone, name, role, agent_id, is_agent_approved, is_profile_completed, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	if _, err := r.pool.Exec(ctx, query,
		user.ID, user.Phone, user.Name, string(user.Role), user.AgentID,
		user.IsAgentApproved, user.IsProfileCompleted, user.CreatedAt,
	); err != nil {
		return apperrors.Internal("Failed to create user", err)
	}

	return nil
}

const userSelect = `
	SELECT id, phone, name, role, agent_id, is_agent_approved, is_profile_completed, created_at
	FROM users
`

func (r *postgresUserRepository) scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(&u.ID, &u.Phone, &u.Name, &role, &u.AgentID, &u.IsAgentApproved, &u.IsProfileCompleted, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = entity.UserRole(role)
	return &u, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := r.scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal("Failed to get user", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	user, err := r.scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE phone = $1`, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal("Failed to get user", err)
	}
	return user, nil
}
