package postgres

import (
	"context"
	"database/sql"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/stats"
	"campushire/internal/domain/user"
)

// StatsRepository answers the read-only aggregation queries behind the
// admin dashboard. Everything is computed on demand; nothing is cached.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountStudents(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM users WHERE role = $1`, user.RoleStudent)
}

func (r *StatsRepository) CountOpportunities(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM opportunities`)
}

func (r *StatsRepository) CountActiveOpportunities(ctx context.Context, now time.Time) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM opportunities WHERE is_active AND deadline >= $1`, now)
}

func (r *StatsRepository) CountApplications(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM applications`)
}

func (r *StatsRepository) CountApplicationsByStatus(ctx context.Context) (map[application.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by status", err)
	}
	defer rows.Close()
	counts := make(map[application.Status]int)
	for rows.Next() {
		var (
			status application.Status
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan status count", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by status", err)
	}
	return counts, nil
}

func (r *StatsRepository) TopCompanies(ctx context.Context, limit int) ([]stats.CompanyCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT o.company_name, count(*) AS application_count
		FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id
		GROUP BY o.company_name
		ORDER BY application_count DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate companies", err)
	}
	defer rows.Close()
	var items []stats.CompanyCount
	for rows.Next() {
		var item stats.CompanyCount
		if err := rows.Scan(&item.CompanyName, &item.ApplicationCount); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan company count", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate companies", err)
	}
	return items, nil
}

func (r *StatsRepository) ApplicationsPerOpportunity(ctx context.Context) ([]stats.OpportunityCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT o.id, o.company_name, o.role, count(*) AS application_count
		FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id
		GROUP BY o.id, o.company_name, o.role
		ORDER BY application_count DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate opportunities", err)
	}
	defer rows.Close()
	var items []stats.OpportunityCount
	for rows.Next() {
		var item stats.OpportunityCount
		if err := rows.Scan(&item.OpportunityID, &item.CompanyName, &item.Role, &item.ApplicationCount); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan opportunity count", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate opportunities", err)
	}
	return items, nil
}

func (r *StatsRepository) CountDistinctApplicants(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT count(DISTINCT user_id) FROM applications`)
}

func (r *StatsRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count", err)
	}
	return n, nil
}
