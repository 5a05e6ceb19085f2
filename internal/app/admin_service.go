package app

import (
	"context"
	"math"

	"campushire/internal/domain/application"
	"campushire/internal/domain/stats"
)

const topCompaniesLimit = 10

// AdminService computes dashboard counts and cross-entity analytics.
// Read-only: it never mutates the store.
type AdminService struct {
	stats stats.Repository
	clock Clock
}

func NewAdminService(repo stats.Repository, clock Clock) *AdminService {
	if clock == nil {
		clock = SystemClock
	}
	return &AdminService{stats: repo, clock: clock}
}

func (s *AdminService) Stats(ctx context.Context) (*stats.Dashboard, error) {
	totalStudents, err := s.stats.CountStudents(ctx)
	if err != nil {
		return nil, err
	}
	totalOpportunities, err := s.stats.CountOpportunities(ctx)
	if err != nil {
		return nil, err
	}
	activeOpportunities, err := s.stats.CountActiveOpportunities(ctx, s.clock())
	if err != nil {
		return nil, err
	}
	totalApplications, err := s.stats.CountApplications(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.stats.CountApplicationsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[application.Status]int{
		application.StatusApplied:     0,
		application.StatusShortlisted: 0,
		application.StatusRejected:    0,
	}
	for status, n := range byStatus {
		counts[status] = n
	}
	return &stats.Dashboard{
		TotalStudents:        totalStudents,
		TotalOpportunities:   totalOpportunities,
		ActiveOpportunities:  activeOpportunities,
		TotalApplications:    totalApplications,
		ApplicationsByStatus: counts,
	}, nil
}

func (s *AdminService) Analytics(ctx context.Context) (*stats.Analytics, error) {
	companies, err := s.stats.TopCompanies(ctx, topCompaniesLimit)
	if err != nil {
		return nil, err
	}
	perOpportunity, err := s.stats.ApplicationsPerOpportunity(ctx)
	if err != nil {
		return nil, err
	}
	activeStudents, err := s.stats.CountDistinctApplicants(ctx)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.stats.CountStudents(ctx)
	if err != nil {
		return nil, err
	}
	rate := 0.0
	if totalStudents > 0 {
		rate = roundTo2(float64(activeStudents) / float64(totalStudents) * 100)
	}
	if companies == nil {
		companies = []stats.CompanyCount{}
	}
	if perOpportunity == nil {
		perOpportunity = []stats.OpportunityCount{}
	}
	return &stats.Analytics{
		MostAppliedCompanies:       companies,
		ApplicationsPerOpportunity: perOpportunity,
		ParticipationRate:          rate,
		ActiveStudents:             activeStudents,
		TotalStudents:              totalStudents,
	}, nil
}

func roundTo2(value float64) float64 {
	return math.Round(value*100) / 100
}
