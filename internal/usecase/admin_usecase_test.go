package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerdex/internal/domain/entity"
	apperrors "brokerdex/pkg/errors"
)

func seedRequest(repo *fakeRegistrationRepo, req *entity.RegistrationRequest) *entity.RegistrationRequest {
	if req.Status == "" {
		req.Status = entity.RegistrationStatusPending
	}
	repo.requests[req.ID] = req
	return req
}

func TestAgentFromRegistrationFallsBackToCompanyName(t *testing.T) {
	agent := AgentFromRegistration(&entity.RegistrationRequest{
		FullName:    "   ",
		CompanyName: "Khalij Logistics",
		Phones: []entity.RegistrationPhone{
			{Type: "mobile", Number: "0912"},
			{Type: "fax", Number: ""},
		},
	})

	assert.Equal(t, "Khalij Logistics", agent.FullName)
	assert.Equal(t, []string{"0912"}, agent.PhoneNumbers)
	assert.True(t, agent.IsApproved)
	assert.False(t, agent.IsVerified)
	assert.Zero(t, agent.RatingAverage)
	assert.Zero(t, agent.NumberOfReviews)
}

func TestApproveRegistrationCreatesAgent(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	regRepo := newFakeRegistrationRepo(agentRepo)
	seedRequest(regRepo, &entity.RegistrationRequest{
		ID:       "req-1",
		FullName: "Ali Rezaei",
		Customs:  []string{"Bandar Abbas"},
	})
	uc := NewAdminUseCase(agentRepo, regRepo)

	agent, err := uc.ApproveRegistration(context.Background(), "req-1")
	require.NoError(t, err)

	assert.NotEmpty(t, agent.ID)
	assert.Equal(t, "Ali Rezaei", agent.FullName)

	request := regRepo.requests["req-1"]
	assert.Equal(t, entity.RegistrationStatusApproved, request.Status)
	require.NotNil(t, request.ApprovedAgentID)
	assert.Equal(t, agent.ID, *request.ApprovedAgentID)
}

func TestApproveRegistrationTwiceConflicts(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	regRepo := newFakeRegistrationRepo(agentRepo)
	seedRequest(regRepo, &entity.RegistrationRequest{ID: "req-1", FullName: "Ali"})
	uc := NewAdminUseCase(agentRepo, regRepo)

	_, err := uc.ApproveRegistration(context.Background(), "req-1")
	require.NoError(t, err)

	_, err = uc.ApproveRegistration(context.Background(), "req-1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "CONFLICT"))
	assert.Len(t, agentRepo.agents, 1, "a second decision must not spawn another agent")
}

func TestApproveRegistrationMissing(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	uc := NewAdminUseCase(agentRepo, newFakeRegistrationRepo(agentRepo))

	_, err := uc.ApproveRegistration(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))
}

func TestRejectRegistrationKeepsReason(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	regRepo := newFakeRegistrationRepo(agentRepo)
	seedRequest(regRepo, &entity.RegistrationRequest{ID: "req-1", FullName: "Ali"})
	uc := NewAdminUseCase(agentRepo, regRepo)

	err := uc.RejectRegistration(context.Background(), "req-1", "incomplete documents")
	require.NoError(t, err)

	request := regRepo.requests["req-1"]
	assert.Equal(t, entity.RegistrationStatusRejected, request.Status)
	assert.Equal(t, "incomplete documents", request.RejectReason)
}

func TestGetStats(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.agents["a1"] = &entity.Agent{ID: "a1", IsApproved: true, Licenses: []entity.License{{ID: "l1"}}}
	agentRepo.agents["a2"] = &entity.Agent{ID: "a2"}
	uc := NewAdminUseCase(agentRepo, newFakeRegistrationRepo(agentRepo))

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalAgents)
	assert.Equal(t, int64(1), stats.PendingApprovals)
	assert.Equal(t, int64(1), stats.PendingLicenses)
}

func TestListAgentsPendingFilter(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.agents["a1"] = &entity.Agent{ID: "a1", IsApproved: true}
	agentRepo.agents["a2"] = &entity.Agent{ID: "a2"}
	uc := NewAdminUseCase(agentRepo, newFakeRegistrationRepo(agentRepo))

	pending, _, err := uc.ListAgents(context.Background(), 1, 10, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "a2", pending[0].ID)

	all, _, err := uc.ListAgents(context.Background(), 1, 10, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
