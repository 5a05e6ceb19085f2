package app

import (
	"context"
	"testing"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/user"
)

type adminFixture struct {
	users        *fakeUserRepo
	opps         *fakeOpportunityRepo
	apps         *fakeApplicationRepo
	admin        *AdminService
	applications *ApplicationService
	now          time.Time
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	users := newFakeUserRepo()
	opps := newFakeOpportunityRepo(users)
	apps := newFakeApplicationRepo(users, opps)
	fixture := &adminFixture{users: users, opps: opps, apps: apps}
	fixture.now = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixture.now }
	fixture.admin = NewAdminService(&fakeStatsRepo{users: users, opps: opps, apps: apps}, clock)
	fixture.applications = NewApplicationService(apps, opps, users, clock)
	return fixture
}

func (f *adminFixture) addStudent(t *testing.T, name string) common.UUID {
	t.Helper()
	created, err := f.users.Create(context.Background(), user.User{
		Name: name, Email: name + "@campus.edu", Role: user.RoleStudent, CGR: 8,
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	return created.ID
}

func (f *adminFixture) addOpportunity(t *testing.T, company string, active bool, deadline time.Time) common.UUID {
	t.Helper()
	created, err := f.opps.Create(context.Background(), opportunity.Opportunity{
		CompanyName: company, Role: "SDE", Description: "work", IsActive: active, Deadline: deadline,
	})
	if err != nil {
		t.Fatalf("create opportunity: %v", err)
	}
	return created.ID
}

func TestStats_CountsAndStatusBreakdown(t *testing.T) {
	f := newAdminFixture(t)
	future := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	alice := f.addStudent(t, "alice")
	bob := f.addStudent(t, "bob")
	f.addStudent(t, "carol")
	if _, err := f.users.Create(context.Background(), user.User{Name: "dean", Email: "dean@campus.edu", Role: user.RoleAdmin}); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	open := f.addOpportunity(t, "Acme", true, future)
	f.addOpportunity(t, "Late", true, past)
	f.addOpportunity(t, "Off", false, future)

	first, err := f.applications.Apply(context.Background(), alice, open)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.applications.Apply(context.Background(), bob, open); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.applications.UpdateStatus(context.Background(), first.ID, application.StatusShortlisted); err != nil {
		t.Fatalf("shortlist: %v", err)
	}

	dashboard, err := f.admin.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if dashboard.TotalStudents != 3 {
		t.Fatalf("expected 3 students (admin excluded), got %d", dashboard.TotalStudents)
	}
	if dashboard.TotalOpportunities != 3 {
		t.Fatalf("expected 3 opportunities, got %d", dashboard.TotalOpportunities)
	}
	if dashboard.ActiveOpportunities != 1 {
		t.Fatalf("expected 1 active opportunity, got %d", dashboard.ActiveOpportunities)
	}
	if dashboard.TotalApplications != 2 {
		t.Fatalf("expected 2 applications, got %d", dashboard.TotalApplications)
	}

	// Every status appears, unseen ones at zero, and the sum matches.
	sum := 0
	for _, status := range []application.Status{application.StatusApplied, application.StatusShortlisted, application.StatusRejected} {
		n, ok := dashboard.ApplicationsByStatus[status]
		if !ok {
			t.Fatalf("expected status %s present in breakdown", status)
		}
		sum += n
	}
	if sum != dashboard.TotalApplications {
		t.Fatalf("expected status counts to sum to %d, got %d", dashboard.TotalApplications, sum)
	}
	if dashboard.ApplicationsByStatus[application.StatusRejected] != 0 {
		t.Fatal("expected zero rejected applications")
	}
}

func TestAnalytics_TopCompaniesAndPerOpportunityOrdering(t *testing.T) {
	f := newAdminFixture(t)
	future := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	popular := f.addOpportunity(t, "Popular", true, future)
	niche := f.addOpportunity(t, "Niche", true, future)

	for _, name := range []string{"s1", "s2", "s3"} {
		id := f.addStudent(t, name)
		if _, err := f.applications.Apply(context.Background(), id, popular); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	solo := f.addStudent(t, "s4")
	if _, err := f.applications.Apply(context.Background(), solo, niche); err != nil {
		t.Fatalf("apply: %v", err)
	}

	analytics, err := f.admin.Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(analytics.MostAppliedCompanies) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(analytics.MostAppliedCompanies))
	}
	if analytics.MostAppliedCompanies[0].CompanyName != "Popular" || analytics.MostAppliedCompanies[0].ApplicationCount != 3 {
		t.Fatalf("expected Popular first with 3, got %+v", analytics.MostAppliedCompanies[0])
	}
	if analytics.ApplicationsPerOpportunity[0].OpportunityID != popular {
		t.Fatal("expected most-applied opportunity first")
	}
	if analytics.ActiveStudents != 4 {
		t.Fatalf("expected 4 active students, got %d", analytics.ActiveStudents)
	}
	if analytics.ParticipationRate != 100 {
		t.Fatalf("expected 100%% participation, got %v", analytics.ParticipationRate)
	}
}

func TestAnalytics_ParticipationRateRoundsToTwoDecimals(t *testing.T) {
	f := newAdminFixture(t)
	future := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	opp := f.addOpportunity(t, "Acme", true, future)

	var first common.UUID
	for i, name := range []string{"s1", "s2", "s3"} {
		id := f.addStudent(t, name)
		if i == 0 {
			first = id
		}
	}
	if _, err := f.applications.Apply(context.Background(), first, opp); err != nil {
		t.Fatalf("apply: %v", err)
	}

	analytics, err := f.admin.Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	// 1 of 3 students → 33.33 after rounding.
	if analytics.ParticipationRate != 33.33 {
		t.Fatalf("expected 33.33, got %v", analytics.ParticipationRate)
	}
}

func TestAnalytics_ParticipationRateStrictlyIncreasesWithNewApplicant(t *testing.T) {
	f := newAdminFixture(t)
	future := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	first := f.addOpportunity(t, "Acme", true, future)
	second := f.addOpportunity(t, "Umbrella", true, future)

	alice := f.addStudent(t, "alice")
	bob := f.addStudent(t, "bob")
	if _, err := f.applications.Apply(context.Background(), alice, first); err != nil {
		t.Fatalf("apply: %v", err)
	}
	before, err := f.admin.Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	// The same student applying elsewhere must not move the rate.
	if _, err := f.applications.Apply(context.Background(), alice, second); err != nil {
		t.Fatalf("apply: %v", err)
	}
	same, err := f.admin.Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if same.ParticipationRate != before.ParticipationRate {
		t.Fatalf("expected unchanged rate, got %v then %v", before.ParticipationRate, same.ParticipationRate)
	}

	// A new distinct applicant strictly increases it.
	if _, err := f.applications.Apply(context.Background(), bob, first); err != nil {
		t.Fatalf("apply: %v", err)
	}
	after, err := f.admin.Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if after.ParticipationRate <= before.ParticipationRate {
		t.Fatalf("expected rate to increase, got %v then %v", before.ParticipationRate, after.ParticipationRate)
	}
}

func TestAnalytics_ZeroStudents(t *testing.T) {
	f := newAdminFixture(t)
	analytics, err := f.admin.Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if analytics.ParticipationRate != 0 {
		t.Fatalf("expected zero rate with no students, got %v", analytics.ParticipationRate)
	}
	if analytics.MostAppliedCompanies == nil || analytics.ApplicationsPerOpportunity == nil {
		t.Fatal("expected empty slices, not nil")
	}
}

func TestAnalytics_TopCompaniesLimitedToTen(t *testing.T) {
	f := newAdminFixture(t)
	future := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		opp := f.addOpportunity(t, "Company"+string(rune('A'+i)), true, future)
		id := f.addStudent(t, "student"+string(rune('a'+i)))
		if _, err := f.applications.Apply(context.Background(), id, opp); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}

	analytics, err := f.admin.Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(analytics.MostAppliedCompanies) != 10 {
		t.Fatalf("expected top companies capped at 10, got %d", len(analytics.MostAppliedCompanies))
	}
	if len(analytics.ApplicationsPerOpportunity) != 12 {
		t.Fatalf("expected per-opportunity list uncapped, got %d", len(analytics.ApplicationsPerOpportunity))
	}
}
