package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/domain/repository"
)

// agentFilterPending is the status query value that narrows the admin agent
// list to unapproved agents. Distinct from the registration status enum.
const agentFilterPending = "pending"

type AdminUseCase struct {
	agentRepo        repository.AgentRepository
	registrationRepo repository.RegistrationRepository
}

func NewAdminUseCase(agentRepo repository.AgentRepository, registrationRepo repository.RegistrationRepository) *AdminUseCase {
	return &AdminUseCase{
		agentRepo:        agentRepo,
		registrationRepo: registrationRepo,
	}
}

// ListAgents returns all agents, or only unapproved ones when status is
// "pending". Tag lists are not truncated in the admin view.
func (uc *AdminUseCase) ListAgents(ctx context.Context, page, pageSize int, status string) ([]*entity.Agent, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	pendingOnly := status == agentFilterPending
	return uc.agentRepo.ListAdmin(ctx, pendingOnly, pageSize, (page-1)*pageSize)
}

// GetStats computes the three dashboard counters concurrently; they are
// independent queries.
func (uc *AdminUseCase) GetStats(ctx context.Context) (*repository.AgentStats, error) {
	var stats repository.AgentStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.agentRepo.CountAgents(gctx)
		stats.TotalAgents = n
		return err
	})
	g.Go(func() error {
		n, err := uc.agentRepo.CountPendingAgents(gctx)
		stats.PendingApprovals = n
		return err
	})
	g.Go(func() error {
		n, err := uc.agentRepo.CountUnverifiedLicenses(gctx)
		stats.PendingLicenses = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (uc *AdminUseCase) ListRegistrations(ctx context.Context, page, pageSize int, status string) ([]*entity.RegistrationRequest, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	return uc.registrationRepo.List(ctx, status, pageSize, (page-1)*pageSize)
}

func (uc *AdminUseCase) GetRegistrationByID(ctx context.Context, id string) (*entity.RegistrationRequest, error) {
	return uc.registrationRepo.GetByID(ctx, id)
}

// ApproveRegistration promotes a pending request into a new approved agent.
// The promoted agent's full name falls back to the company name when blank.
func (uc *AdminUseCase) ApproveRegistration(ctx context.Context, id string) (*entity.Agent, error) {
	request, err := uc.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	agent := AgentFromRegistration(request)
	if err := uc.registrationRepo.Approve(ctx, id, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

// AgentFromRegistration builds the agent record an approval spawns.
func AgentFromRegistration(request *entity.RegistrationRequest) *entity.Agent {
	fullName := request.FullName
	if strings.TrimSpace(fullName) == "" {
		fullName = request.CompanyName
	}

	phoneNumbers := []string{}
	for _, p := range request.Phones {
		if strings.TrimSpace(p.Number) == "" {
			continue
		}
		phoneNumbers = append(phoneNumbers, p.Number)
	}

	return &entity.Agent{
		FullName:          fullName,
		CompanyName:       request.CompanyName,
		YearsOfExperience: request.YearsOfExperience,
		RatingAverage:     0,
		NumberOfReviews:   0,
		Customs:           orEmpty(request.Customs),
		GoodsTypes:        orEmpty(request.GoodsTypes),
		Bio:               request.Description,
		IsVerified:        false,
		IsApproved:        true,
		Mobile:            request.Mobile,
		PhoneNumbers:      phoneNumbers,
	}
}

func (uc *AdminUseCase) RejectRegistration(ctx context.Context, id string, reason string) error {
	return uc.registrationRepo.Reject(ctx, id, reason)
}

func (uc *AdminUseCase) ApproveAgent(ctx context.Context, id string) error {
	return uc.agentRepo.SetApproval(ctx, id, true)
}

func (uc *AdminUseCase) RejectAgent(ctx context.Context, id string, reason string) error {
	// The rejection reason for direct agent decisions is not persisted; the
	// agent keeps no decision history, only the flag.
	return uc.agentRepo.SetApproval(ctx, id, false)
}
