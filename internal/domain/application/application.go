package application

import (
	"context"
	"time"

	"campushire/internal/common"
)

type Status string

const (
	StatusApplied     Status = "Applied"
	StatusShortlisted Status = "Shortlisted"
	StatusRejected    Status = "Rejected"
)

// Known reports whether status is one of the three persisted values.
func (s Status) Known() bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusRejected:
		return true
	default:
		return false
	}
}

// OpportunitySummary is the posting join carried on application reads.
type OpportunitySummary struct {
	ID          common.UUID `json:"id"`
	CompanyName string      `json:"companyName"`
	Role        string      `json:"role"`
	Description string      `json:"description,omitempty"`
	Deadline    time.Time   `json:"deadline"`
	IsActive    bool        `json:"isActive"`
}

// ApplicantSummary is the student join carried on application reads.
type ApplicantSummary struct {
	ID             common.UUID `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Branch         string      `json:"branch,omitempty"`
	Batch          string      `json:"batch,omitempty"`
	CGR            float64     `json:"cgr"`
	ResumeLink     string      `json:"resumeLink,omitempty"`
	ProfilePicture string      `json:"profilePicture,omitempty"`
}

type Application struct {
	ID            common.UUID         `json:"id"`
	UserID        common.UUID         `json:"userId"`
	OpportunityID common.UUID         `json:"opportunityId"`
	Status        Status              `json:"status"`
	AppliedAt     time.Time           `json:"appliedAt"`
	Opportunity   *OpportunitySummary `json:"opportunity,omitempty"`
	Applicant     *ApplicantSummary   `json:"applicant,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type Repository interface {
	// Create persists the application. The unique (user_id, opportunity_id)
	// index makes a concurrent duplicate surface as CodeConflict.
	Create(ctx context.Context, a Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByUserAndOpportunity(ctx context.Context, userID, opportunityID common.UUID) (*Application, error)
	// ListByUser returns the student's applications with the opportunity
	// summary joined, newest first.
	ListByUser(ctx context.Context, userID common.UUID) ([]Application, error)
	// ListByOpportunity returns a posting's applications with the applicant
	// summary joined, newest first.
	ListByOpportunity(ctx context.Context, opportunityID common.UUID) ([]Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
