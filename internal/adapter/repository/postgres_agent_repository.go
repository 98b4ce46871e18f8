package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/domain/repository"
	apperrors "brokerdex/pkg/errors"
	"brokerdex/pkg/logger"
)

type postgresAgentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAgentRepository(pool *pgxpool.Pool) repository.AgentRepository {
	return &postgresAgentRepository{pool: pool}
}

func (r *postgresAgentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO agents (
			id, full_name, company_name, city, years_of_experience,
			rating_average, number_of_reviews, customs, goods_types,
			is_verified, is_approved, mobile, phone_numbers, bio,
			working_hours, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`

	_, err := r.pool.Exec(ctx, query,
		agent.ID, agent.FullName, agent.CompanyName, agent.City,
		agent.YearsOfExperience, agent.RatingAverage, agent.NumberOfReviews,
		agent.Customs, agent.GoodsTypes, agent.IsVerified, agent.IsApproved,
		agent.Mobile, agent.PhoneNumbers, agent.Bio, agent.WorkingHours,
		agent.CreatedAt,
	)
	if err != nil {
		return apperrors.Internal("Failed to create agent", err)
	}

	return nil
}

// listSelect is the full projection; listSelectLegacy omits the contact
// columns so listings keep working against schemas that predate them.
const (
	listSelect = `
		SELECT id, full_name, company_name, city, years_of_experience,
		       rating_average, number_of_reviews, customs, goods_types,
		       is_verified, is_approved, mobile, phone_numbers, created_at
		FROM agents
	`
	listSelectLegacy = `
		SELECT id, full_name, company_name, city, years_of_experience,
		       rating_average, number_of_reviews, customs, goods_types,
		       is_verified, is_approved, created_at
		FROM agents
	`
	listOrder = ` ORDER BY rating_average DESC, created_at ASC, id ASC`
)

func (r *postgresAgentRepository) List(ctx context.Context, filter repository.AgentFilter) ([]*entity.Agent, int64, error) {
	where, args := buildAgentWhere(filter)

	paged := func(selectClause string) (string, []any) {
		q := selectClause + where + listOrder +
			fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		return q, append(append([]any{}, args...), filter.Limit, filter.Offset)
	}

	query, queryArgs := paged(listSelect)
	agents, err := r.queryAgents(ctx, query, queryArgs, true)
	if isUndefinedColumn(err) {
		logger.Warn("agents: contact columns missing, retrying without them")
		query, queryArgs = paged(listSelectLegacy)
		agents, err = r.queryAgents(ctx, query, queryArgs, false)
	}
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list agents", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM agents`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Internal("Failed to count agents", err)
	}

	return agents, total, nil
}

func buildAgentWhere(filter repository.AgentFilter) (string, []any) {
	where := ""
	args := []any{}
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		and(fmt.Sprintf("(full_name ILIKE $%d OR company_name ILIKE $%d)", n, n))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		and(fmt.Sprintf("city = $%d", len(args)))
	}
	// Port and service are aliases over the same two tag lists: a tag in
	// either list matches either filter.
	for _, tag := range []string{filter.Port, filter.Service} {
		if tag == "" {
			continue
		}
		args = append(args, tag)
		n := len(args)
		and(fmt.Sprintf("($%d = ANY(customs) OR $%d = ANY(goods_types))", n, n))
	}

	return where, args
}

func (r *postgresAgentRepository) queryAgents(ctx context.Context, query string, args []any, withContact bool) ([]*entity.Agent, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := []*entity.Agent{}
	for rows.Next() {
		var a entity.Agent
		dest := []any{
			&a.ID, &a.FullName, &a.CompanyName, &a.City, &a.YearsOfExperience,
			&a.RatingAverage, &a.NumberOfReviews, &a.Customs, &a.GoodsTypes,
			&a.IsVerified, &a.IsApproved,
		}
		if withContact {
			dest = append(dest, &a.Mobile, &a.PhoneNumbers)
		}
		dest = append(dest, &a.CreatedAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if a.PhoneNumbers == nil {
			a.PhoneNumbers = []string{}
		}
		agents = append(agents, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}

func (r *postgresAgentRepository) GetByID(ctx context.Context, id string) (*entity.Agent, error) {
	agent, err := r.getAgentRow(ctx, id, true)
	if isUndefinedColumn(err) {
		logger.Warn("agents: contact columns missing, retrying without them")
		agent, err = r.getAgentRow(ctx, id, false)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Agent", err)
		}
		return nil, apperrors.Internal("Failed to get agent", err)
	}

	if err := r.loadLicenses(ctx, agent); err != nil {
		return nil, apperrors.Internal("Failed to load licenses", err)
	}
	if err := r.loadAnalytics(ctx, agent); err != nil {
		return nil, apperrors.Internal("Failed to load analytics", err)
	}

	return agent, nil
}

func (r *postgresAgentRepository) getAgentRow(ctx context.Context, id string, withContact bool) (*entity.Agent, error) {
	query := detailSelect(withContact)

	var a entity.Agent
	dest := []any{
		&a.ID, &a.FullName, &a.CompanyName, &a.City, &a.YearsOfExperience,
		&a.RatingAverage, &a.NumberOfReviews, &a.Customs, &a.GoodsTypes,
		&a.IsVerified, &a.IsApproved,
	}
	if withContact {
		dest = append(dest, &a.Mobile, &a.PhoneNumbers)
	}
	dest = append(dest, &a.Bio, &a.WorkingHours, &a.CreatedAt)

	if err := r.pool.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		return nil, err
	}
	if a.PhoneNumbers == nil {
		a.PhoneNumbers = []string{}
	}

	return &a, nil
}

func detailSelect(withContact bool) string {
	contact := ""
	if withContact {
		contact = "mobile, phone_numbers, "
	}
	return `
		SELECT id, full_name, company_name, city, years_of_experience,
		       rating_average, number_of_reviews, customs, goods_types,
		       is_verified, is_approved, ` + contact + `bio, working_hours, created_at
		FROM agents
		WHERE id = $1
	`
}

func (r *postgresAgentRepository) loadLicenses(ctx context.Context, agent *entity.Agent) error {
	const query = `
		SELECT id, title, is_verified, is_public
		FROM licenses
		WHERE agent_id = $1
		ORDER BY title ASC
	`

	rows, err := r.pool.Query(ctx, query, agent.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	agent.Licenses = []entity.License{}
	for rows.Next() {
		l := entity.License{AgentID: agent.ID}
		if err := rows.Scan(&l.ID, &l.Title, &l.IsVerified, &l.IsPublic); err != nil {
			return err
		}
		agent.Licenses = append(agent.Licenses, l)
	}

	return rows.Err()
}

func (r *postgresAgentRepository) loadAnalytics(ctx context.Context, agent *entity.Agent) error {
	const query = `
		SELECT id, profile_views, pending_approvals
		FROM agent_analytics
		WHERE agent_id = $1
	`

	var a entity.AgentAnalytics
	a.AgentID = agent.ID
	err := r.pool.QueryRow(ctx, query, agent.ID).Scan(&a.ID, &a.ProfileViews, &a.PendingApprovals)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	agent.Analytics = &a
	return nil
}

func (r *postgresAgentRepository) ListAdmin(ctx context.Context, pendingOnly bool, limit, offset int) ([]*entity.Agent, int64, error) {
	where := ""
	if pendingOnly {
		where = " WHERE is_approved = false"
	}

	query := listSelect + where + ` ORDER BY created_at DESC, id ASC` +
		` LIMIT $1 OFFSET $2`
	agents, err := r.queryAgents(ctx, query, []any{limit, offset}, true)
	if isUndefinedColumn(err) {
		query = listSelectLegacy + where + ` ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2`
		agents, err = r.queryAgents(ctx, query, []any{limit, offset}, false)
	}
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list agents", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM agents`+where).Scan(&total); err != nil {
		return nil, 0, apperrors.Internal("Failed to count agents", err)
	}

	return agents, total, nil
}

func (r *postgresAgentRepository) SetApproval(ctx context.Context, id string, approved bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE agents SET is_approved = $2 WHERE id = $1`, id, approved)
	if err != nil {
		return apperrors.Internal("Failed to update agent approval", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Agent", nil)
	}

	return nil
}

func (r *postgresAgentRepository) IncrementProfileViews(ctx context.Context, agentID string) error {
	const query = `
		INSERT INTO agent_analytics (id, agent_id, profile_views)
		VALUES ($1, $2, 1)
		ON CONFLICT (agent_id)
		DO UPDATE SET profile_views = agent_analytics.profile_views + 1
	`

	if _, err := r.pool.Exec(ctx, query, uuid.New().String(), agentID); err != nil {
		return apperrors.Internal("Failed to record profile view", err)
	}

	return nil
}

func (r *postgresAgentRepository) CountAgents(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM agents`)
}

func (r *postgresAgentRepository) CountPendingAgents(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM agents WHERE is_approved = false`)
}

func (r *postgresAgentRepository) CountUnverifiedLicenses(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM licenses WHERE agent_id IS NOT NULL AND is_verified = false`)
}

func (r *postgresAgentRepository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, apperrors.Internal("Failed to count", err)
	}
	return n, nil
}
