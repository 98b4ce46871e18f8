package usecase

import (
	"time"

	"brokerdex/internal/domain/entity"
)

// TokenIssuer abstracts the token infrastructure so use cases stay free of
// signing details.
type TokenIssuer interface {
	Issue(user *entity.User) (token string, expiresAt time.Time, err error)
}
