package entity

import (
	"time"
)

// Agent is a vetted customs broker listed in the directory.
type Agent struct {
	ID                string    `json:"id"`
	FullName          string    `json:"fullName"`
	CompanyName       string    `json:"companyName"`
	City              string    `json:"city"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	RatingAverage     float64   `json:"ratingAverage"`
	NumberOfReviews   int       `json:"numberOfReviews"`
	Customs           []string  `json:"customs"`
	GoodsTypes        []string  `json:"goodsTypes"`
	IsVerified        bool      `json:"isVerified"`
	IsApproved        bool      `json:"isApproved"`

	// Contact. These columns may be missing on older schemas; readers fall
	// back to defaults instead of failing the request.
	Mobile       string   `json:"mobile"`
	PhoneNumbers []string `json:"phoneNumbers"`

	// Profile
	Bio          string `json:"bio"`
	WorkingHours string `json:"workingHours"`

	Licenses  []License       `json:"licenses,omitempty"`
	Analytics *AgentAnalytics `json:"analytics,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// License belongs to an agent. Verification and publicity are independent:
// only public licenses surface on the profile, verified or not.
type License struct {
	ID         string `json:"id"`
	AgentID    string `json:"agentId,omitempty"`
	Title      string `json:"title"`
	IsVerified bool   `json:"isVerified"`
	IsPublic   bool   `json:"isPublic"`
}

// AgentAnalytics is a one-to-one counter record per agent.
// PendingApprovals has no writer anywhere; the column is kept for schema
// fidelity with earlier deployments.
type AgentAnalytics struct {
	ID               string `json:"id"`
	AgentID          string `json:"agentId"`
	ProfileViews     int    `json:"profileViews"`
	PendingApprovals int    `json:"pendingApprovals"`
}
