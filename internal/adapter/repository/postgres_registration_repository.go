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

type postgresRegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRegistrationRepository(pool *pgxpool.Pool) repository.RegistrationRepository {
	return &postgresRegistrationRepository{pool: pool}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, request *entity.RegistrationRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.Status == "" {
		request.Status = entity.RegistrationStatusPending
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.Internal("Failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	const insertSQL = `
		INSERT INTO registration_requests (
			id, full_name, company_name, legal_type, mobile, office_phone,
			home_phone, address, latitude, longitude, customs, goods_types,
			years_of_experience, description, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`
	if _, err := tx.Exec(ctx, insertSQL,
		request.ID, request.FullName, request.CompanyName, string(request.LegalType),
		request.Mobile, request.OfficePhone, request.HomePhone, request.Address,
		request.Latitude, request.Longitude, request.Customs, request.GoodsTypes,
		request.YearsOfExperience, request.Description, request.Status,
		request.CreatedAt,
	); err != nil {
		return apperrors.Internal("Failed to create registration request", err)
	}

	for i := range request.Attachments {
		att := &request.Attachments[i]
		if att.ID == "" {
			att.ID = uuid.New().String()
		}
		att.RegistrationRequestID = request.ID
		if _, err := tx.Exec(ctx,
			`INSERT INTO registration_attachments (id, registration_request_id, file_name, url) VALUES ($1,$2,$3,$4)`,
			att.ID, request.ID, att.FileName, att.URL,
		); err != nil {
			return apperrors.Internal("Failed to create attachment", err)
		}
	}

	for i := range request.Phones {
		ph := &request.Phones[i]
		if ph.ID == "" {
			ph.ID = uuid.New().String()
		}
		ph.RegistrationRequestID = request.ID
		if _, err := tx.Exec(ctx,
			`INSERT INTO registration_phones (id, registration_request_id, type, number) VALUES ($1,$2,$3,$4)`,
			ph.ID, request.ID, ph.Type, ph.Number,
		); err != nil {
			return apperrors.Internal("Failed to create phone", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Internal("Failed to commit registration request", err)
	}

	return nil
}

const registrationSelect = `
	SELECT id, full_name, company_name, legal_type, mobile, office_phone,
	       home_phone, address, latitude, longitude, customs, goods_types,
	       years_of_experience, description, status, reject_reason,
	       approved_agent_id, created_at
	FROM registration_requests
`

func scanRegistration(row pgx.Row) (*entity.RegistrationRequest, error) {
	var req entity.RegistrationRequest
	var legalType string
	err := row.Scan(
		&req.ID, &req.FullName, &req.CompanyName, &legalType, &req.Mobile,
		&req.OfficePhone, &req.HomePhone, &req.Address, &req.Latitude,
		&req.Longitude, &req.Customs, &req.GoodsTypes, &req.YearsOfExperience,
		&req.Description, &req.Status, &req.RejectReason, &req.ApprovedAgentID,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.LegalType = entity.LegalType(legalType)
	return &req, nil
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id string) (*entity.RegistrationRequest, error) {
	req, err := scanRegistration(r.pool.QueryRow(ctx, registrationSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Registration", err)
		}
		return nil, apperrors.Internal("Failed to get registration request", err)
	}

	if err := r.loadChildren(ctx, req); err != nil {
		return nil, apperrors.Internal("Failed to load registration children", err)
	}

	return req, nil
}

func (r *postgresRegistrationRepository) loadChildren(ctx context.Context, req *entity.RegistrationRequest) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, file_name, url FROM registration_attachments WHERE registration_request_id = $1 ORDER BY id`,
		req.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	req.Attachments = []entity.RegistrationAttachment{}
	for rows.Next() {
		att := entity.RegistrationAttachment{RegistrationRequestID: req.ID}
		if err := rows.Scan(&att.ID, &att.FileName, &att.URL); err != nil {
			return err
		}
		req.Attachments = append(req.Attachments, att)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	phoneRows, err := r.pool.Query(ctx,
		`SELECT id, type, number FROM registration_phones WHERE registration_request_id = $1 ORDER BY id`,
		req.ID,
	)
	if err != nil {
		return err
	}
	defer phoneRows.Close()

	req.Phones = []entity.RegistrationPhone{}
	for phoneRows.Next() {
		ph := entity.RegistrationPhone{RegistrationRequestID: req.ID}
		if err := phoneRows.Scan(&ph.ID, &ph.Type, &ph.Number); err != nil {
			return err
		}
		req.Phones = append(req.Phones, ph)
	}

	return phoneRows.Err()
}

func (r *postgresRegistrationRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.RegistrationRequest, int64, error) {
	where := ""
	args := []any{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	query := registrationSelect + where + ` ORDER BY created_at DESC, id ASC`
	if len(args) == 1 {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list registration requests", err)
	}
	defer rows.Close()

	requests := []*entity.RegistrationRequest{}
	for rows.Next() {
		req, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, apperrors.Internal("Failed to scan registration request", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Internal("Failed to iterate registration requests", err)
	}

	countQuery := `SELECT COUNT(*) FROM registration_requests`
	countArgs := []any{}
	if status != "" {
		countQuery += ` WHERE status = $1`
		countArgs = append(countArgs, status)
	}
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.Internal("Failed to count registration requests", err)
	}

	return requests, total, nil
}

// Approve inserts the promoted agent and flips the request status in one
// transaction. The status update is guarded on status='pending' so a second
// concurrent approval cannot spawn a duplicate agent.
func (r *postgresRegistrationRepository) Approve(ctx context.Context, id string, agent *entity.Agent) error {
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = time.Now().UTC()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.Internal("Failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	const agentSQL = `
		INSERT INTO agents (
			id, full_name, company_name, city, years_of_experience,
			rating_average, number_of_reviews, customs, goods_types,
			is_verified, is_approved, mobile, phone_numbers, bio,
			working_hours, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`
	if _, err := tx.Exec(ctx, agentSQL,
		agent.ID, agent.FullName, agent.CompanyName, agent.City,
		agent.YearsOfExperience, agent.RatingAverage, agent.NumberOfReviews,
		agent.Customs, agent.GoodsTypes, agent.IsVerified, agent.IsApproved,
		agent.Mobile, agent.PhoneNumbers, agent.Bio, agent.WorkingHours,
		agent.CreatedAt,
	); err != nil {
		return apperrors.Internal("Failed to create agent from registration", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE registration_requests SET status = $2, approved_agent_id = $3 WHERE id = $1 AND status = $4`,
		id, entity.RegistrationStatusApproved, agent.ID, entity.RegistrationStatusPending,
	)
	if err != nil {
		return apperrors.Internal("Failed to update registration status", err)
	}
	if tag.RowsAffected() == 0 {
		return r.decisionConflict(ctx, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Internal("Failed to commit approval", err)
	}

	return nil
}

func (r *postgresRegistrationRepository) Reject(ctx context.Context, id string, reason string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE registration_requests SET status = $2, reject_reason = $3 WHERE id = $1 AND status = $4`,
		id, entity.RegistrationStatusRejected, reason, entity.RegistrationStatusPending,
	)
	if err != nil {
		return apperrors.Internal("Failed to reject registration", err)
	}
	if tag.RowsAffected() == 0 {
		return r.decisionConflict(ctx, id)
	}

	return nil
}

// decisionConflict distinguishes "no such request" from "already decided"
// after a guarded update matched zero rows.
func (r *postgresRegistrationRepository) decisionConflict(ctx context.Context, id string) error {
	var status string
	err := r.pool.QueryRow(ctx, `SELECT status FROM registration_requests WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("Registration", err)
	}
	if err != nil {
		return apperrors.Internal("Failed to check registration status", err)
	}

	return apperrors.Conflict("Registration request already " + status)
}
