package usecase

import (
	"context"
	"strings"
	"time"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/domain/repository"
	apperrors "brokerdex/pkg/errors"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Role        string    `json:"role"`
}

// Login issues a bearer token for the phone number, provisioning a User row
// on first login. OTP verification is deliberately absent; any signed-token
// scheme can slot in front of this later.
func (uc *AuthUseCase) Login(ctx context.Context, phone string) (*LoginResult, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, apperrors.BadRequest("Phone is required", nil)
	}

	user, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if !apperrors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		user = &entity.User{Phone: phone, Role: entity.RoleUser}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	token, expiresAt, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Role:        string(user.Role),
	}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
