package opportunity

import (
	"context"
	"time"

	"campushire/internal/common"
)

const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// Eligibility is the set of constraints a posting imposes on applicants.
// Empty branch/batch lists admit everyone.
type Eligibility struct {
	MinCGR   float64  `json:"minCGR"`
	Branches []string `json:"branches"`
	Batches  []string `json:"batches"`
}

// Creator is the admin join attached to list/detail reads.
type Creator struct {
	ID    common.UUID `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
}

type Opportunity struct {
	ID           common.UUID `json:"id"`
	CompanyName  string      `json:"companyName"`
	Role         string      `json:"role"`
	Description  string      `json:"description"`
	Requirements string      `json:"requirements,omitempty"`
	Location     string      `json:"location,omitempty"`
	Salary       string      `json:"salary,omitempty"`
	Deadline     time.Time   `json:"deadline"`
	Eligibility  Eligibility `json:"eligibility"`
	IsActive     bool        `json:"isActive"`
	CreatedBy    common.UUID `json:"createdBy"`
	Creator      *Creator    `json:"creator,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// ExpiredAt reports whether the deadline has passed. Derived at read time,
// never persisted.
func (o Opportunity) ExpiredAt(now time.Time) bool {
	return now.After(o.Deadline)
}

// StatusAt derives the posting state from the activity flag and the clock.
func (o Opportunity) StatusAt(now time.Time) string {
	if o.IsActive && !o.ExpiredAt(now) {
		return StatusOpen
	}
	return StatusClosed
}

// View is an Opportunity annotated with its derived fields and, for a
// student viewer who already applied, their application status.
type View struct {
	Opportunity
	IsExpired         bool   `json:"isExpired"`
	Status            string `json:"status"`
	ApplicationStatus string `json:"applicationStatus,omitempty"`
}

// Update carries a partial mutation; nil pointers leave the stored value
// untouched.
type Update struct {
	CompanyName  *string
	Role         *string
	Description  *string
	Requirements *string
	Location     *string
	Salary       *string
	Deadline     *time.Time
	Eligibility  *Eligibility
	IsActive     *bool
}

type Repository interface {
	Create(ctx context.Context, o Opportunity) (*Opportunity, error)
	GetByID(ctx context.Context, id common.UUID) (*Opportunity, error)
	// ListActive returns active postings whose deadline has not passed,
	// creator joined, newest first.
	ListActive(ctx context.Context, now time.Time) ([]Opportunity, error)
	Update(ctx context.Context, o Opportunity) (*Opportunity, error)
	// DeleteCascade removes the posting and every application referencing
	// it in one transaction.
	DeleteCascade(ctx context.Context, id common.UUID) error
}
