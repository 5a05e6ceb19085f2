package app

import (
	"context"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/user"
)

type ApplicationService struct {
	repo          application.Repository
	opportunities opportunity.Repository
	users         user.Repository
	clock         Clock
}

func NewApplicationService(repo application.Repository, opportunities opportunity.Repository, users user.Repository, clock Clock) *ApplicationService {
	if clock == nil {
		clock = SystemClock
	}
	return &ApplicationService{repo: repo, opportunities: opportunities, users: users, clock: clock}
}

// Apply submits a student's application. The posting must exist, be
// active and within deadline, the student must pass the eligibility rules,
// and the (student, opportunity) pair must be new. The unique index backs
// the duplicate check under concurrent submissions.
func (s *ApplicationService) Apply(ctx context.Context, studentID, opportunityID common.UUID) (*application.Application, error) {
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	if !opp.IsActive {
		return nil, common.NewError(common.CodeInvalidState, "This opportunity is no longer active", nil)
	}
	if opp.ExpiredAt(now) {
		return nil, common.NewError(common.CodeInvalidState, "Application deadline has passed", nil)
	}
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := CheckEligibility(*student, opp.Eligibility); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByUserAndOpportunity(ctx, studentID, opportunityID); err == nil {
		return nil, common.NewError(common.CodeConflict, "You have already applied to this opportunity", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.repo.Create(ctx, application.Application{
		UserID:        studentID,
		OpportunityID: opportunityID,
		Status:        application.StatusApplied,
		AppliedAt:     now,
	})
	if err != nil {
		return nil, err
	}
	created.Opportunity = &application.OpportunitySummary{
		ID:          opp.ID,
		CompanyName: opp.CompanyName,
		Role:        opp.Role,
		Description: opp.Description,
		Deadline:    opp.Deadline,
		IsActive:    opp.IsActive,
	}
	created.Applicant = &application.ApplicantSummary{
		ID:    student.ID,
		Name:  student.Name,
		Email: student.Email,
	}
	return created, nil
}

// ListMine returns the student's applications joined with the posting
// summary, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	return s.repo.ListByUser(ctx, studentID)
}

// UpdateStatus overwrites an application's status. Any status may move to
// any other, including itself; there is deliberately no transition graph.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID common.UUID, status application.Status) (*application.Application, error) {
	if !status.Known() {
		return nil, common.NewValidationError("Valid status is required (Applied, Shortlisted, or Rejected)",
			map[string]string{"status": "status must be Applied, Shortlisted, or Rejected"})
	}
	if _, err := s.repo.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, err
	}
	if student, err := s.users.GetByID(ctx, updated.UserID); err == nil {
		updated.Applicant = &application.ApplicantSummary{
			ID:     student.ID,
			Name:   student.Name,
			Email:  student.Email,
			Branch: student.Branch,
			Batch:  student.Batch,
			CGR:    student.CGR,
		}
	}
	if opp, err := s.opportunities.GetByID(ctx, updated.OpportunityID); err == nil {
		updated.Opportunity = &application.OpportunitySummary{
			ID:          opp.ID,
			CompanyName: opp.CompanyName,
			Role:        opp.Role,
			Deadline:    opp.Deadline,
			IsActive:    opp.IsActive,
		}
	}
	return updated, nil
}
