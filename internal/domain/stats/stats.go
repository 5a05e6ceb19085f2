package stats

import (
	"context"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/application"
)

// Dashboard is the admin stats payload. ApplicationsByStatus always carries
// all three statuses, unseen ones at zero.
type Dashboard struct {
	TotalStudents        int                        `json:"totalStudents"`
	TotalOpportunities   int                        `json:"totalOpportunities"`
	ActiveOpportunities  int                        `json:"activeOpportunities"`
	TotalApplications    int                        `json:"totalApplications"`
	ApplicationsByStatus map[application.Status]int `json:"applicationsByStatus"`
}

type CompanyCount struct {
	CompanyName      string `json:"companyName"`
	ApplicationCount int    `json:"applicationCount"`
}

type OpportunityCount struct {
	OpportunityID    common.UUID `json:"opportunityId"`
	CompanyName      string      `json:"companyName"`
	Role             string      `json:"role"`
	ApplicationCount int         `json:"applicationCount"`
}

type Analytics struct {
	MostAppliedCompanies       []CompanyCount     `json:"mostAppliedCompanies"`
	ApplicationsPerOpportunity []OpportunityCount `json:"applicationsPerOpportunity"`
	ParticipationRate          float64            `json:"participationRate"`
	ActiveStudents             int                `json:"activeStudents"`
	TotalStudents              int                `json:"totalStudents"`
}

// Repository exposes the read-only aggregation queries behind the admin
// dashboard. No method mutates state.
type Repository interface {
	CountStudents(ctx context.Context) (int, error)
	CountOpportunities(ctx context.Context) (int, error)
	CountActiveOpportunities(ctx context.Context, now time.Time) (int, error)
	CountApplications(ctx context.Context) (int, error)
	CountApplicationsByStatus(ctx context.Context) (map[application.Status]int, error)
	TopCompanies(ctx context.Context, limit int) ([]CompanyCount, error)
	ApplicationsPerOpportunity(ctx context.Context) ([]OpportunityCount, error)
	CountDistinctApplicants(ctx context.Context) (int, error)
}
