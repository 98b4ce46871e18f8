package repository

import (
	"context"

	"brokerdex/internal/domain/entity"
)

// AgentFilter carries the public listing filters. Port and Service both
// match against the customs and goodsTypes tag lists (OR over both).
type AgentFilter struct {
	Query   string
	City    string
	Port    string
	Service string
	Limit   int
	Offset  int
}

type AgentStats struct {
	TotalAgents      int64 `json:"totalAgents"`
	PendingApprovals int64 `json:"pendingApprovals"`
	PendingLicenses  int64 `json:"pendingLicenses"`
}

type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	// GetByID loads the agent with its licenses and analytics.
	GetByID(ctx context.Context, id string) (*entity.Agent, error)
	List(ctx context.Context, filter AgentFilter) ([]*entity.Agent, int64, error)
	// ListAdmin returns all agents, or only unapproved ones when pendingOnly
	// is set.
	ListAdmin(ctx context.Context, pendingOnly bool, limit, offset int) ([]*entity.Agent, int64, error)
	SetApproval(ctx context.Context, id string, approved bool) error
	IncrementProfileViews(ctx context.Context, agentID string) error
	CountAgents(ctx context.Context) (int64, error)
	CountPendingAgents(ctx context.Context) (int64, error)
	CountUnverifiedLicenses(ctx context.Context) (int64, error)
}
