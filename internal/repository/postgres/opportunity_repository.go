package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"campushire/internal/common"
	"campushire/internal/domain/opportunity"
)

type OpportunityRepository struct {
	db *sql.DB
}

func NewOpportunityRepository(db *sql.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	o.ID = common.NewUUID()
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO opportunities (id, company_name, role, description, requirements, location, salary, deadline, min_cgr, branches, batches, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.CompanyName, o.Role, o.Description, o.Requirements, o.Location, o.Salary, o.Deadline,
		o.Eligibility.MinCGR, pq.Array(o.Eligibility.Branches), pq.Array(o.Eligibility.Batches),
		o.IsActive, o.CreatedBy, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create opportunity", err)
	}
	return r.GetByID(ctx, o.ID)
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id common.UUID) (*opportunity.Opportunity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT o.id, o.company_name, o.role, o.description, o.requirements, o.location, o.salary, o.deadline, o.min_cgr, o.branches, o.batches, o.is_active, o.created_by, o.created_at, o.updated_at, u.id, u.name, u.email
		FROM opportunities o
		JOIN users u ON u.id = o.created_by
		WHERE o.id = $1`, id)
	o, err := scanOpportunity(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "opportunity not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load opportunity", err)
	}
	return o, nil
}

func (r *OpportunityRepository) ListActive(ctx context.Context, now time.Time) ([]opportunity.Opportunity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT o.id, o.company_name, o.role, o.description, o.requirements, o.location, o.salary, o.deadline, o.min_cgr, o.branches, o.batches, o.is_active, o.created_by, o.created_at, o.updated_at, u.id, u.name, u.email
		FROM opportunities o
		JOIN users u ON u.id = o.created_by
		WHERE o.is_active AND o.deadline >= $1
		ORDER BY o.created_at DESC`, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list opportunities", err)
	}
	defer rows.Close()
	var items []opportunity.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows.Scan)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan opportunity", err)
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list opportunities", err)
	}
	return items, nil
}

func (r *OpportunityRepository) Update(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	o.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE opportunities SET company_name = $1, role = $2, description = $3, requirements = $4, location = $5, salary = $6, deadline = $7, min_cgr = $8, branches = $9, batches = $10, is_active = $11, updated_at = $12
		WHERE id = $13`,
		o.CompanyName, o.Role, o.Description, o.Requirements, o.Location, o.Salary, o.Deadline,
		o.Eligibility.MinCGR, pq.Array(o.Eligibility.Branches), pq.Array(o.Eligibility.Batches),
		o.IsActive, o.UpdatedAt, o.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update opportunity", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, o.ID)
}

// DeleteCascade removes the posting's applications and the posting itself
// in one transaction, so callers never observe orphans.
func (r *OpportunityRepository) DeleteCascade(ctx context.Context, id common.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE opportunity_id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete applications", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete opportunity", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "opportunity not found", sql.ErrNoRows)
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit delete", err)
	}
	return nil
}

func scanOpportunity(scan func(dest ...any) error) (*opportunity.Opportunity, error) {
	var (
		o       opportunity.Opportunity
		creator opportunity.Creator
	)
	if err := scan(&o.ID, &o.CompanyName, &o.Role, &o.Description, &o.Requirements, &o.Location, &o.Salary, &o.Deadline,
		&o.Eligibility.MinCGR, pq.Array(&o.Eligibility.Branches), pq.Array(&o.Eligibility.Batches),
		&o.IsActive, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
		&creator.ID, &creator.Name, &creator.Email); err != nil {
		return nil, err
	}
	if o.Eligibility.Branches == nil {
		o.Eligibility.Branches = []string{}
	}
	if o.Eligibility.Batches == nil {
		o.Eligibility.Batches = []string{}
	}
	o.Creator = &creator
	return &o, nil
}
