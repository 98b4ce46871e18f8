package repository

import (
	"context"

	"brokerdex/internal/domain/entity"
)

type RegistrationRepository interface {
	// Create persists the request together with its attachment and phone
	// children in one transaction.
	Create(ctx context.Context, request *entity.RegistrationRequest) error
	// GetByID loads the request with attachments and phones.
	GetByID(ctx context.Context, id string) (*entity.RegistrationRequest, error)
	// List returns requests newest first, optionally filtered by exact status.
	List(ctx context.Context, status string, limit, offset int) ([]*entity.RegistrationRequest, int64, error)
	// Approve promotes a pending request into the given agent and flips the
	// status, all in one transaction. A request that exists but is no longer
	// pending yields a conflict error; a missing request yields not found.
	Approve(ctx context.Context, id string, agent *entity.Agent) error
	// Reject flips a pending request to rejected, persisting the reason.
	// Same not-found/conflict contract as Approve.
	Reject(ctx context.Context, id string, reason string) error
}
