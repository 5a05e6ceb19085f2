package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/stats"
	"campushire/internal/domain/user"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, common.NewError(common.CodeConflict, "email already registered", nil)
		}
	}
	u.ID = common.NewUUID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	stored := u
	r.byID[u.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	clone := *account
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.byID {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[u.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	stored := u
	r.byID[u.ID] = &stored
	clone := stored
	return &clone, nil
}

type fakeOpportunityRepo struct {
	mu    sync.Mutex
	byID  map[common.UUID]*opportunity.Opportunity
	order []common.UUID
	users *fakeUserRepo
	apps  *fakeApplicationRepo
}

func newFakeOpportunityRepo(users *fakeUserRepo) *fakeOpportunityRepo {
	return &fakeOpportunityRepo{byID: make(map[common.UUID]*opportunity.Opportunity), users: users}
}

func (r *fakeOpportunityRepo) Create(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = common.NewUUID()
	now := time.Now().UTC()
	o.CreatedAt = now.Add(time.Duration(len(r.order)) * time.Millisecond)
	o.UpdatedAt = o.CreatedAt
	stored := o
	r.byID[o.ID] = &stored
	r.order = append(r.order, o.ID)
	return r.cloneLocked(o.ID), nil
}

func (r *fakeOpportunityRepo) GetByID(ctx context.Context, id common.UUID) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[id] == nil {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	return r.cloneLocked(id), nil
}

func (r *fakeOpportunityRepo) ListActive(ctx context.Context, now time.Time) ([]opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []opportunity.Opportunity
	for i := len(r.order) - 1; i >= 0; i-- {
		o := r.byID[r.order[i]]
		if o != nil && o.IsActive && !o.Deadline.Before(now) {
			items = append(items, *r.cloneLocked(o.ID))
		}
	}
	return items, nil
}

func (r *fakeOpportunityRepo) Update(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.byID[o.ID]
	if current == nil {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	o.CreatedAt = current.CreatedAt
	o.UpdatedAt = time.Now().UTC()
	stored := o
	stored.Creator = nil
	r.byID[o.ID] = &stored
	return r.cloneLocked(o.ID), nil
}

func (r *fakeOpportunityRepo) DeleteCascade(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	if r.byID[id] == nil {
		r.mu.Unlock()
		return common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()
	if r.apps != nil {
		r.apps.deleteByOpportunity(id)
	}
	return nil
}

func (r *fakeOpportunityRepo) cloneLocked(id common.UUID) *opportunity.Opportunity {
	clone := *r.byID[id]
	if clone.Eligibility.Branches != nil {
		clone.Eligibility.Branches = append([]string{}, clone.Eligibility.Branches...)
	}
	if clone.Eligibility.Batches != nil {
		clone.Eligibility.Batches = append([]string{}, clone.Eligibility.Batches...)
	}
	if r.users != nil {
		if creator := r.users.byID[clone.CreatedBy]; creator != nil {
			clone.Creator = &opportunity.Creator{ID: creator.ID, Name: creator.Name, Email: creator.Email}
		}
	}
	return &clone
}

type fakeApplicationRepo struct {
	mu    sync.Mutex
	byID  map[common.UUID]*application.Application
	users *fakeUserRepo
	opps  *fakeOpportunityRepo
}

func newFakeApplicationRepo(users *fakeUserRepo, opps *fakeOpportunityRepo) *fakeApplicationRepo {
	repo := &fakeApplicationRepo{byID: make(map[common.UUID]*application.Application), users: users, opps: opps}
	if opps != nil {
		opps.apps = repo
	}
	return repo
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.UserID == a.UserID && existing.OpportunityID == a.OpportunityID {
			return nil, common.NewError(common.CodeConflict, "You have already applied to this opportunity", nil)
		}
	}
	a.ID = common.NewUUID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	stored := a
	r.byID[a.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.byID[id]
	if a == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	clone := *a
	return &clone, nil
}

func (r *fakeApplicationRepo) FindByUserAndOpportunity(ctx context.Context, userID, opportunityID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.UserID == userID && a.OpportunityID == opportunityID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByUser(ctx context.Context, userID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, a := range r.byID {
		if a.UserID != userID {
			continue
		}
		clone := *a
		if r.opps != nil {
			if o := r.opps.byID[a.OpportunityID]; o != nil {
				clone.Opportunity = &application.OpportunitySummary{
					ID:          o.ID,
					CompanyName: o.CompanyName,
					Role:        o.Role,
					Description: o.Description,
					Deadline:    o.Deadline,
					IsActive:    o.IsActive,
				}
			}
		}
		items = append(items, clone)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AppliedAt.After(items[j].AppliedAt) })
	return items, nil
}

func (r *fakeApplicationRepo) ListByOpportunity(ctx context.Context, opportunityID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, a := range r.byID {
		if a.OpportunityID != opportunityID {
			continue
		}
		clone := *a
		if r.users != nil {
			if u := r.users.byID[a.UserID]; u != nil {
				clone.Applicant = &application.ApplicantSummary{
					ID:             u.ID,
					Name:           u.Name,
					Email:          u.Email,
					Branch:         u.Branch,
					Batch:          u.Batch,
					CGR:            u.CGR,
					ResumeLink:     u.ResumeLink,
					ProfilePicture: u.ProfilePicture,
				}
			}
		}
		items = append(items, clone)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AppliedAt.After(items[j].AppliedAt) })
	return items, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.byID[id]
	if a == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	clone := *a
	return &clone, nil
}

func (r *fakeApplicationRepo) deleteByOpportunity(opportunityID common.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.byID {
		if a.OpportunityID == opportunityID {
			delete(r.byID, id)
		}
	}
}

func (r *fakeApplicationRepo) countByOpportunity(opportunityID common.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.byID {
		if a.OpportunityID == opportunityID {
			n++
		}
	}
	return n
}

// fakeStatsRepo derives every aggregate from the other fakes, so tests can
// assert the same invariants the SQL queries guarantee.
type fakeStatsRepo struct {
	users *fakeUserRepo
	opps  *fakeOpportunityRepo
	apps  *fakeApplicationRepo
}

func (r *fakeStatsRepo) CountStudents(ctx context.Context) (int, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	n := 0
	for _, u := range r.users.byID {
		if u.Role == user.RoleStudent {
			n++
		}
	}
	return n, nil
}

func (r *fakeStatsRepo) CountOpportunities(ctx context.Context) (int, error) {
	r.opps.mu.Lock()
	defer r.opps.mu.Unlock()
	return len(r.opps.byID), nil
}

func (r *fakeStatsRepo) CountActiveOpportunities(ctx context.Context, now time.Time) (int, error) {
	r.opps.mu.Lock()
	defer r.opps.mu.Unlock()
	n := 0
	for _, o := range r.opps.byID {
		if o.IsActive && !o.Deadline.Before(now) {
			n++
		}
	}
	return n, nil
}

func (r *fakeStatsRepo) CountApplications(ctx context.Context) (int, error) {
	r.apps.mu.Lock()
	defer r.apps.mu.Unlock()
	return len(r.apps.byID), nil
}

func (r *fakeStatsRepo) CountApplicationsByStatus(ctx context.Context) (map[application.Status]int, error) {
	r.apps.mu.Lock()
	defer r.apps.mu.Unlock()
	counts := make(map[application.Status]int)
	for _, a := range r.apps.byID {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *fakeStatsRepo) TopCompanies(ctx context.Context, limit int) ([]stats.CompanyCount, error) {
	perCompany := make(map[string]int)
	r.apps.mu.Lock()
	for _, a := range r.apps.byID {
		if o := r.opps.byID[a.OpportunityID]; o != nil {
			perCompany[o.CompanyName]++
		}
	}
	r.apps.mu.Unlock()
	var items []stats.CompanyCount
	for name, n := range perCompany {
		items = append(items, stats.CompanyCount{CompanyName: name, ApplicationCount: n})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ApplicationCount > items[j].ApplicationCount })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *fakeStatsRepo) ApplicationsPerOpportunity(ctx context.Context) ([]stats.OpportunityCount, error) {
	perOpportunity := make(map[common.UUID]int)
	r.apps.mu.Lock()
	for _, a := range r.apps.byID {
		perOpportunity[a.OpportunityID]++
	}
	r.apps.mu.Unlock()
	var items []stats.OpportunityCount
	r.opps.mu.Lock()
	for id, n := range perOpportunity {
		o := r.opps.byID[id]
		if o == nil {
			continue
		}
		items = append(items, stats.OpportunityCount{
			OpportunityID:    id,
			CompanyName:      o.CompanyName,
			Role:             o.Role,
			ApplicationCount: n,
		})
	}
	r.opps.mu.Unlock()
	sort.Slice(items, func(i, j int) bool { return items[i].ApplicationCount > items[j].ApplicationCount })
	return items, nil
}

func (r *fakeStatsRepo) CountDistinctApplicants(ctx context.Context) (int, error) {
	r.apps.mu.Lock()
	defer r.apps.mu.Unlock()
	seen := make(map[common.UUID]bool)
	for _, a := range r.apps.byID {
		seen[a.UserID] = true
	}
	return len(seen), nil
}
