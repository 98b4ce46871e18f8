package usecase

import (
	"context"
	"math"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/domain/repository"
	apperrors "brokerdex/pkg/errors"
	"brokerdex/pkg/logger"
	"brokerdex/pkg/utils"
)

const summaryTagLimit = 5

type AgentUseCase struct {
	agentRepo  repository.AgentRepository
	reviewRepo repository.ReviewRepository
}

func NewAgentUseCase(agentRepo repository.AgentRepository, reviewRepo repository.ReviewRepository) *AgentUseCase {
	return &AgentUseCase{
		agentRepo:  agentRepo,
		reviewRepo: reviewRepo,
	}
}

type ListAgentsInput struct {
	Page     int
	PageSize int
	Query    string
	City     string
	Port     string
	Service  string
}

// AgentSummary is the listing projection: tag lists are truncated for
// display, contact fields default to empty when the schema lacks them.
type AgentSummary struct {
	ID                string   `json:"id"`
	FullName          string   `json:"fullName"`
	CompanyName       string   `json:"companyName"`
	City              string   `json:"city"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	RatingAverage     float64  `json:"ratingAverage"`
	NumberOfReviews   int      `json:"numberOfReviews"`
	Customs           []string `json:"customs"`
	GoodsTypes        []string `json:"goodsTypes"`
	IsVerified        bool     `json:"isVerified"`
	Mobile            string   `json:"mobile"`
	PhoneNumbers      []string `json:"phoneNumbers"`
}

func (uc *AgentUseCase) ListAgents(ctx context.Context, input ListAgentsInput) ([]AgentSummary, int64, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = 10
	}

	filter := repository.AgentFilter{
		Query:   utils.CleanFilter(input.Query),
		City:    utils.CleanFilter(input.City),
		Port:    utils.CleanFilter(input.Port),
		Service: utils.CleanFilter(input.Service),
		Limit:   input.PageSize,
		Offset:  (input.Page - 1) * input.PageSize,
	}

	agents, total, err := uc.agentRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]AgentSummary, 0, len(agents))
	for _, a := range agents {
		summaries = append(summaries, AgentSummary{
			ID:                a.ID,
			FullName:          a.FullName,
			CompanyName:       a.CompanyName,
			City:              a.City,
			YearsOfExperience: a.YearsOfExperience,
			RatingAverage:     a.RatingAverage,
			NumberOfReviews:   a.NumberOfReviews,
			Customs:           truncateTags(a.Customs),
			GoodsTypes:        truncateTags(a.GoodsTypes),
			IsVerified:        a.IsVerified,
			Mobile:            a.Mobile,
			PhoneNumbers:      a.PhoneNumbers,
		})
	}

	return summaries, total, nil
}

func truncateTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	if len(tags) > summaryTagLimit {
		return tags[:summaryTagLimit]
	}
	return tags
}

// AgentDetail is the profile projection: public licenses only, one page of
// reviews newest-first, and a star breakdown over all reviews.
type AgentDetail struct {
	ID                string                 `json:"id"`
	FullName          string                 `json:"fullName"`
	CompanyName       string                 `json:"companyName"`
	City              string                 `json:"city"`
	YearsOfExperience int                    `json:"yearsOfExperience"`
	RatingAverage     float64                `json:"ratingAverage"`
	NumberOfReviews   int                    `json:"numberOfReviews"`
	Customs           []string               `json:"customs"`
	GoodsTypes        []string               `json:"goodsTypes"`
	IsVerified        bool                   `json:"isVerified"`
	Mobile            string                 `json:"mobile"`
	PhoneNumbers      []string               `json:"phoneNumbers"`
	Bio               string                 `json:"bio"`
	WorkingHours      string                 `json:"workingHours"`
	Licenses          []entity.License       `json:"licenses"`
	Reviews           []*entity.Review       `json:"reviews"`
	RatingBreakdown   entity.RatingBreakdown `json:"ratingBreakdown"`
}

func (uc *AgentUseCase) GetAgentByID(ctx context.Context, id string, reviewsPage, reviewsPageSize int) (*AgentDetail, error) {
	if reviewsPage <= 0 {
		reviewsPage = 1
	}
	if reviewsPageSize <= 0 {
		reviewsPageSize = 10
	}

	agent, err := uc.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, _, err := uc.reviewRepo.ListByAgent(ctx, id, reviewsPageSize, (reviewsPage-1)*reviewsPageSize)
	if err != nil {
		return nil, err
	}

	breakdown, err := uc.reviewRepo.BreakdownByAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	publicLicenses := []entity.License{}
	for _, l := range agent.Licenses {
		if l.IsPublic {
			publicLicenses = append(publicLicenses, l)
		}
	}

	// Best-effort view counting; a failed increment never fails the read.
	if err := uc.agentRepo.IncrementProfileViews(ctx, id); err != nil {
		logger.Warn("failed to record profile view for agent %s: %v", id, err)
	}

	return &AgentDetail{
		ID:                agent.ID,
		FullName:          agent.FullName,
		CompanyName:       agent.CompanyName,
		City:              agent.City,
		YearsOfExperience: agent.YearsOfExperience,
		RatingAverage:     agent.RatingAverage,
		NumberOfReviews:   agent.NumberOfReviews,
		Customs:           agent.Customs,
		GoodsTypes:        agent.GoodsTypes,
		IsVerified:        agent.IsVerified,
		Mobile:            agent.Mobile,
		PhoneNumbers:      agent.PhoneNumbers,
		Bio:               agent.Bio,
		WorkingHours:      agent.WorkingHours,
		Licenses:          publicLicenses,
		Reviews:           reviews,
		RatingBreakdown:   breakdown,
	}, nil
}

type AgentDashboard struct {
	ProfileCompletion int                    `json:"profileCompletion"`
	IsApproved        bool                   `json:"isApproved"`
	LicenseVerified   bool                   `json:"licenseVerified"`
	ProfileViews      int                    `json:"profileViews"`
	ReviewsSummary    entity.RatingBreakdown `json:"reviewsSummary"`
}

// GetAgentDashboard returns a zero-valued dashboard for a missing agent
// rather than an error; the frontend renders it as an empty state.
func (uc *AgentUseCase) GetAgentDashboard(ctx context.Context, agentID string) (*AgentDashboard, error) {
	agent, err := uc.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		if apperrors.Is(err, "NOT_FOUND") {
			return &AgentDashboard{}, nil
		}
		return nil, err
	}

	breakdown, err := uc.reviewRepo.BreakdownByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	licenseVerified := false
	for _, l := range agent.Licenses {
		if l.IsVerified {
			licenseVerified = true
			break
		}
	}

	views := 0
	if agent.Analytics != nil {
		views = agent.Analytics.ProfileViews
	}

	return &AgentDashboard{
		ProfileCompletion: calculateCompletion(agent),
		IsApproved:        agent.IsApproved,
		LicenseVerified:   licenseVerified,
		ProfileViews:      views,
		ReviewsSummary:    breakdown,
	}, nil
}

// calculateCompletion scores six equally weighted profile checks and rounds
// to the nearest whole percent.
func calculateCompletion(a *entity.Agent) int {
	const total = 6.0
	score := 0.0

	if a.FullName != "" {
		score++
	}
	if a.CompanyName != "" {
		score++
	}
	if a.Bio != "" {
		score++
	}
	if len(a.Licenses) > 0 {
		score++
	}
	if len(a.Customs) > 0 {
		score++
	}
	if len(a.GoodsTypes) > 0 {
		score++
	}

	return int(math.Round(score / total * 100))
}
