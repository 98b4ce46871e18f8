package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerdex/internal/domain/entity"
)

func TestListAgentsNormalizesPaging(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	uc := NewAgentUseCase(agentRepo, newFakeReviewRepo(agentRepo))

	_, _, err := uc.ListAgents(context.Background(), ListAgentsInput{Page: -3, PageSize: 0})
	require.NoError(t, err)

	assert.Equal(t, 10, agentRepo.lastFilter.Limit)
	assert.Equal(t, 0, agentRepo.lastFilter.Offset)
}

func TestListAgentsCleansLiteralNullFilters(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	uc := NewAgentUseCase(agentRepo, newFakeReviewRepo(agentRepo))

	_, _, err := uc.ListAgents(context.Background(), ListAgentsInput{
		Query:   "null",
		City:    "undefined",
		Port:    "Bandar Abbas",
		Service: "null",
	})
	require.NoError(t, err)

	assert.Empty(t, agentRepo.lastFilter.Query)
	assert.Empty(t, agentRepo.lastFilter.City)
	assert.Empty(t, agentRepo.lastFilter.Service)
	assert.Equal(t, "Bandar Abbas", agentRepo.lastFilter.Port)
}

func TestListAgentsTruncatesTags(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.agents["a1"] = &entity.Agent{
		ID:      "a1",
		Customs: []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"},
	}
	uc := NewAgentUseCase(agentRepo, newFakeReviewRepo(agentRepo))

	agents, total, err := uc.ListAgents(context.Background(), ListAgentsInput{})
	require.NoError(t, err)
	require.Len(t, agents, 1)

	assert.Equal(t, int64(1), total)
	assert.Len(t, agents[0].Customs, 5)
	assert.Equal(t, []string{}, agents[0].GoodsTypes)
}

func TestGetAgentByIDFiltersPrivateLicenses(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.agents["a1"] = &entity.Agent{
		ID: "a1",
		Licenses: []entity.License{
			{ID: "l1", Title: "Customs brokerage", IsPublic: true},
			{ID: "l2", Title: "Internal permit", IsPublic: false},
		},
	}
	reviewRepo := newFakeReviewRepo(agentRepo)
	uc := NewAgentUseCase(agentRepo, reviewRepo)

	detail, err := uc.GetAgentByID(context.Background(), "a1", 0, 0)
	require.NoError(t, err)

	require.Len(t, detail.Licenses, 1)
	assert.Equal(t, "l1", detail.Licenses[0].ID)
	assert.Equal(t, []string{"a1"}, agentRepo.viewCalls)
}

func TestGetAgentByIDBreakdownCoversAllReviews(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.agents["a1"] = &entity.Agent{ID: "a1"}
	reviewRepo := newFakeReviewRepo(agentRepo)
	uc := NewAgentUseCase(agentRepo, reviewRepo)

	for _, rating := range []int{5, 5, 4, 1} {
		require.NoError(t, reviewRepo.Create(context.Background(), &entity.Review{
			AgentID: "a1", ReviewerName: "r", Rating: rating,
		}))
	}

	detail, err := uc.GetAgentByID(context.Background(), "a1", 1, 2)
	require.NoError(t, err)

	assert.Len(t, detail.Reviews, 2)
	assert.Equal(t, 2, detail.RatingBreakdown.Stars5)
	assert.Equal(t, 1, detail.RatingBreakdown.Stars4)
	assert.Equal(t, 1, detail.RatingBreakdown.Stars1)
}

func TestGetAgentDashboardMissingAgentIsZeroValued(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	uc := NewAgentUseCase(agentRepo, newFakeReviewRepo(agentRepo))

	dashboard, err := uc.GetAgentDashboard(context.Background(), "nope")
	require.NoError(t, err)

	assert.Equal(t, &AgentDashboard{}, dashboard)
}

func TestGetAgentDashboardCompletion(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.agents["a1"] = &entity.Agent{
		ID:          "a1",
		FullName:    "Ali Rezaei",
		CompanyName: "Rezaei Trading",
		Bio:         "Twenty years at the border",
		Customs:     []string{"Bandar Abbas"},
		IsApproved:  true,
		Licenses:    []entity.License{{ID: "l1", IsVerified: true}},
		Analytics:   &entity.AgentAnalytics{ProfileViews: 42},
	}
	uc := NewAgentUseCase(agentRepo, newFakeReviewRepo(agentRepo))

	dashboard, err := uc.GetAgentDashboard(context.Background(), "a1")
	require.NoError(t, err)

	// 5 of 6 checks filled, rounded to the nearest percent.
	assert.Equal(t, 83, dashboard.ProfileCompletion)
	assert.True(t, dashboard.IsApproved)
	assert.True(t, dashboard.LicenseVerified)
	assert.Equal(t, 42, dashboard.ProfileViews)
}

func TestGetAgentDashboardNoLicenses(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.agents["a1"] = &entity.Agent{ID: "a1", FullName: "Ali"}
	uc := NewAgentUseCase(agentRepo, newFakeReviewRepo(agentRepo))

	dashboard, err := uc.GetAgentDashboard(context.Background(), "a1")
	require.NoError(t, err)

	assert.Equal(t, 17, dashboard.ProfileCompletion)
	assert.False(t, dashboard.LicenseVerified)
	assert.Zero(t, dashboard.ProfileViews)
}
