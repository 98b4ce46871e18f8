package entity

import (
	"time"
)

// Review belongs to exactly one agent and is immutable after creation.
// Deleting the agent cascade-deletes its reviews.
type Review struct {
	ID           string    `json:"id"`
	AgentID      string    `json:"agentId"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"` // 1-5
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RatingBreakdown counts reviews per star value over all of an agent's
// reviews, not just the page returned.
type RatingBreakdown struct {
	Stars1 int `json:"stars1"`
	Stars2 int `json:"stars2"`
	Stars3 int `json:"stars3"`
	Stars4 int `json:"stars4"`
	Stars5 int `json:"stars5"`
}

// Add increments the bucket for a rating. Out-of-range values are ignored;
// they cannot be written through the API.
func (b *RatingBreakdown) Add(rating int) {
	switch rating {
	case 1:
		b.Stars1++
	case 2:
		b.Stars2++
	case 3:
		b.Stars3++
	case 4:
		b.Stars4++
	case 5:
		b.Stars5++
	}
}
