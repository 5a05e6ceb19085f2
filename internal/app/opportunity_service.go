package app

import (
	"context"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/opportunity"
)

type OpportunityService struct {
	repo         opportunity.Repository
	applications application.Repository
	clock        Clock
}

func NewOpportunityService(repo opportunity.Repository, applications application.Repository, clock Clock) *OpportunityService {
	if clock == nil {
		clock = SystemClock
	}
	return &OpportunityService{repo: repo, applications: applications, clock: clock}
}

type CreateOpportunityInput struct {
	CompanyName  string
	Role         string
	Description  string
	Requirements string
	Location     string
	Salary       string
	Deadline     time.Time
	Eligibility  *opportunity.Eligibility
}

func (s *OpportunityService) Create(ctx context.Context, input CreateOpportunityInput, creatorID common.UUID) (*opportunity.View, error) {
	fields := map[string]string{}
	if input.CompanyName == "" {
		fields["companyName"] = "companyName is required"
	}
	if input.Role == "" {
		fields["role"] = "role is required"
	}
	if input.Description == "" {
		fields["description"] = "description is required"
	}
	if input.Deadline.IsZero() {
		fields["deadline"] = "deadline is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("Please provide all required fields: companyName, role, description, deadline", fields)
	}

	eligibility := opportunity.Eligibility{Branches: []string{}, Batches: []string{}}
	if input.Eligibility != nil {
		eligibility = *input.Eligibility
		if eligibility.Branches == nil {
			eligibility.Branches = []string{}
		}
		if eligibility.Batches == nil {
			eligibility.Batches = []string{}
		}
	}

	created, err := s.repo.Create(ctx, opportunity.Opportunity{
		CompanyName:  input.CompanyName,
		Role:         input.Role,
		Description:  input.Description,
		Requirements: input.Requirements,
		Location:     input.Location,
		Salary:       input.Salary,
		Deadline:     endOfDay(input.Deadline),
		Eligibility:  eligibility,
		IsActive:     true,
		CreatedBy:    creatorID,
	})
	if err != nil {
		return nil, err
	}
	view := s.view(*created)
	return &view, nil
}

// List returns postings that are active and still accepting applications,
// newest first.
func (s *OpportunityService) List(ctx context.Context) ([]opportunity.View, error) {
	items, err := s.repo.ListActive(ctx, s.clock())
	if err != nil {
		return nil, err
	}
	views := make([]opportunity.View, 0, len(items))
	for _, item := range items {
		views = append(views, s.view(item))
	}
	return views, nil
}

// Get loads one posting and, when the viewer has already applied, annotates
// it with their application status. The annotation is view-time only.
func (s *OpportunityService) Get(ctx context.Context, id common.UUID, viewerID common.UUID) (*opportunity.View, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.view(*item)
	if existing, err := s.applications.FindByUserAndOpportunity(ctx, viewerID, id); err == nil {
		view.ApplicationStatus = string(existing.Status)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	return &view, nil
}

// Update overwrites only the fields supplied in the patch; everything else
// keeps its stored value. A supplied deadline is re-normalized to
// end-of-day.
func (s *OpportunityService) Update(ctx context.Context, id common.UUID, patch opportunity.Update) (*opportunity.View, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.CompanyName != nil {
		current.CompanyName = *patch.CompanyName
	}
	if patch.Role != nil {
		current.Role = *patch.Role
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.Requirements != nil {
		current.Requirements = *patch.Requirements
	}
	if patch.Location != nil {
		current.Location = *patch.Location
	}
	if patch.Salary != nil {
		current.Salary = *patch.Salary
	}
	if patch.Deadline != nil {
		current.Deadline = endOfDay(*patch.Deadline)
	}
	if patch.Eligibility != nil {
		current.Eligibility = *patch.Eligibility
		if current.Eligibility.Branches == nil {
			current.Eligibility.Branches = []string{}
		}
		if current.Eligibility.Batches == nil {
			current.Eligibility.Batches = []string{}
		}
	}
	if patch.IsActive != nil {
		current.IsActive = *patch.IsActive
	}
	updated, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	view := s.view(*updated)
	return &view, nil
}

// Delete removes the posting together with every application referencing
// it. The cascade is atomic; a posting that is already gone reports
// NotFound from the repository, which callers may treat as settled.
func (s *OpportunityService) Delete(ctx context.Context, id common.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteCascade(ctx, id)
}

// ListApplicants returns all applications for a posting with the full
// applicant profile joined, newest first.
func (s *OpportunityService) ListApplicants(ctx context.Context, opportunityID common.UUID) ([]application.Application, error) {
	if _, err := s.repo.GetByID(ctx, opportunityID); err != nil {
		return nil, err
	}
	return s.applications.ListByOpportunity(ctx, opportunityID)
}

func (s *OpportunityService) view(o opportunity.Opportunity) opportunity.View {
	now := s.clock()
	return opportunity.View{
		Opportunity: o,
		IsExpired:   o.ExpiredAt(now),
		Status:      o.StatusAt(now),
	}
}

// endOfDay pushes a deadline to 23:59:59.999 local time, so a posting
// accepts applications through the whole stated day.
func endOfDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999_000_000, local.Location())
}
