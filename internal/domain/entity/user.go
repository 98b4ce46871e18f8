package entity

import (
	"time"
)

type UserRole string

const (
	RoleAdmin UserRole = "Admin"
	RoleAgent UserRole = "Agent"
	RoleUser  UserRole = "User"
)

// User is a login identity keyed by phone number. IsAgentApproved mirrors the
// owning Agent's approval for display on /auth/me only; Agent.IsApproved is
// the source of truth for all filtering and admin flows.
type User struct {
	ID                 string    `json:"id"`
	Phone              string    `json:"phone"`
	Name               string    `json:"name,omitempty"`
	Role               UserRole  `json:"role"`
	AgentID            *string   `json:"agentId,omitempty"`
	IsAgentApproved    bool      `json:"isAgentApproved"`
	IsProfileCompleted bool      `json:"isProfileCompleted"`
	CreatedAt          time.Time `json:"createdAt"`
}
