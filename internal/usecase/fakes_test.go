package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/domain/repository"
	"brokerdex/internal/domain/service"
	apperrors "brokerdex/pkg/errors"
)

// In-memory fakes shared by the usecase tests. They implement the repository
// contracts closely enough to exercise the decision logic above them,
// including the not-found and conflict behaviors.

type fakeAgentRepo struct {
	agents     map[string]*entity.Agent
	lastFilter repository.AgentFilter
	viewCalls  []string
	listErr    error
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{agents: map[string]*entity.Agent{}}
}

func (r *fakeAgentRepo) Create(ctx context.Context, agent *entity.Agent) error {
	if agent.ID == "" {
		agent.ID = fmt.Sprintf("agent-%d", len(r.agents)+1)
	}
	r.agents[agent.ID] = agent
	return nil
}

func (r *fakeAgentRepo) GetByID(ctx context.Context, id string) (*entity.Agent, error) {
	agent, ok := r.agents[id]
	if !ok {
		return nil, apperrors.NotFound("Agent", nil)
	}
	return agent, nil
}

func (r *fakeAgentRepo) List(ctx context.Context, filter repository.AgentFilter) ([]*entity.Agent, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	r.lastFilter = filter

	var out []*entity.Agent
	for _, a := range r.agents {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAgentRepo) ListAdmin(ctx context.Context, pendingOnly bool, limit, offset int) ([]*entity.Agent, int64, error) {
	var out []*entity.Agent
	for _, a := range r.agents {
		if pendingOnly && a.IsApproved {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAgentRepo) SetApproval(ctx context.Context, id string, approved bool) error {
	agent, ok := r.agents[id]
	if !ok {
		return apperrors.NotFound("Agent", nil)
	}
	agent.IsApproved = approved
	return nil
}

func (r *fakeAgentRepo) IncrementProfileViews(ctx context.Context, agentID string) error {
	r.viewCalls = append(r.viewCalls, agentID)
	return nil
}

func (r *fakeAgentRepo) CountAgents(ctx context.Context) (int64, error) {
	return int64(len(r.agents)), nil
}

func (r *fakeAgentRepo) CountPendingAgents(ctx context.Context) (int64, error) {
	var n int64
	for _, a := range r.agents {
		if !a.IsApproved {
			n++
		}
	}
	return n, nil
}

func (r *fakeAgentRepo) CountUnverifiedLicenses(ctx context.Context) (int64, error) {
	var n int64
	for _, a := range r.agents {
		for _, l := range a.Licenses {
			if !l.IsVerified {
				n++
			}
		}
	}
	return n, nil
}

type fakeReviewRepo struct {
	reviews   map[string][]*entity.Review
	agentRepo *fakeAgentRepo
	createErr error
}

func newFakeReviewRepo(agentRepo *fakeAgentRepo) *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string][]*entity.Review{}, agentRepo: agentRepo}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if r.createErr != nil {
		return r.createErr
	}

	agent, ok := r.agentRepo.agents[review.AgentID]
	if !ok {
		return apperrors.NotFound("Agent", nil)
	}

	review.ID = fmt.Sprintf("review-%d", len(r.reviews[review.AgentID])+1)
	review.CreatedAt = time.Now()
	r.reviews[review.AgentID] = append(r.reviews[review.AgentID], review)

	sum := 0
	for _, rv := range r.reviews[review.AgentID] {
		sum += rv.Rating
	}
	agent.NumberOfReviews = len(r.reviews[review.AgentID])
	agent.RatingAverage = float64(sum) / float64(agent.NumberOfReviews)
	return nil
}

func (r *fakeReviewRepo) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*entity.Review, int64, error) {
	all := r.reviews[agentID]
	total := int64(len(all))

	if offset >= len(all) {
		return []*entity.Review{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeReviewRepo) BreakdownByAgent(ctx context.Context, agentID string) (entity.RatingBreakdown, error) {
	var breakdown entity.RatingBreakdown
	for _, rv := range r.reviews[agentID] {
		breakdown.Add(rv.Rating)
	}
	return breakdown, nil
}

type fakeRegistrationRepo struct {
	requests  map[string]*entity.RegistrationRequest
	agentRepo *fakeAgentRepo
	createErr error
}

func newFakeRegistrationRepo(agentRepo *fakeAgentRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{requests: map[string]*entity.RegistrationRequest{}, agentRepo: agentRepo}
}

func (r *fakeRegistrationRepo) Create(ctx context.Context, request *entity.RegistrationRequest) error {
	if r.createErr != nil {
		return r.createErr
	}
	if request.ID == "" {
		request.ID = fmt.Sprintf("req-%d", len(r.requests)+1)
	}
	request.CreatedAt = time.Now()
	r.requests[request.ID] = request
	return nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*entity.RegistrationRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.NotFound("Registration request", nil)
	}
	return request, nil
}

func (r *fakeRegistrationRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.RegistrationRequest, int64, error) {
	var out []*entity.RegistrationRequest
	for _, req := range r.requests {
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRegistrationRepo) Approve(ctx context.Context, id string, agent *entity.Agent) error {
	request, ok := r.requests[id]
	if !ok {
		return apperrors.NotFound("Registration request", nil)
	}
	if request.Status != entity.RegistrationStatusPending {
		return apperrors.Conflict("Registration request already " + request.Status)
	}

	if err := r.agentRepo.Create(ctx, agent); err != nil {
		return err
	}
	request.Status = entity.RegistrationStatusApproved
	request.ApprovedAgentID = &agent.ID
	return nil
}

func (r *fakeRegistrationRepo) Reject(ctx context.Context, id string, reason string) error {
	request, ok := r.requests[id]
	if !ok {
		return apperrors.NotFound("Registration request", nil)
	}
	if request.Status != entity.RegistrationStatusPending {
		return apperrors.Conflict("Registration request already " + request.Status)
	}
	request.Status = entity.RegistrationStatusRejected
	request.RejectReason = reason
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("User", nil)
}

// fakeStorage records uploads and deletions in memory.
type fakeStorage struct {
	uploads   map[string]string
	deleted   []string
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string]string{}}
}

func (s *fakeStorage) UploadFile(ctx context.Context, file io.Reader, originalName string) (*service.UploadResult, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("object-%d%s", len(s.uploads)+1, ext(originalName))
	s.uploads[objectName] = string(data)
	return &service.UploadResult{
		URL:        "http://files.test/uploads/" + objectName,
		ObjectName: objectName,
		Size:       int64(len(data)),
	}, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, objectName string) error {
	delete(s.uploads, objectName)
	s.deleted = append(s.deleted, objectName)
	return nil
}

func ext(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

type fakeTokenIssuer struct {
	issued []*entity.User
	err    error
}

func (f *fakeTokenIssuer) Issue(user *entity.User) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	f.issued = append(f.issued, user)
	return "token-for-" + user.Phone, time.Now().Add(12 * time.Hour), nil
}
