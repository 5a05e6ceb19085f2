package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts the application. A concurrent duplicate for the same
// (user, opportunity) pair trips the unique index and surfaces as
// CodeConflict, leaving exactly one row.
func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) (*application.Application, error) {
	a.ID = common.NewUUID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, user_id, opportunity_id, status, applied_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.OpportunityID, a.Status, a.AppliedAt, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "You have already applied to this opportunity", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, opportunity_id, status, applied_at, created_at, updated_at FROM applications WHERE id = $1`, id)
	var a application.Application
	if err := row.Scan(&a.ID, &a.UserID, &a.OpportunityID, &a.Status, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) FindByUserAndOpportunity(ctx context.Context, userID, opportunityID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, opportunity_id, status, applied_at, created_at, updated_at FROM applications WHERE user_id = $1 AND opportunity_id = $2`, userID, opportunityID)
	var a application.Application
	if err := row.Scan(&a.ID, &a.UserID, &a.OpportunityID, &a.Status, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.user_id, a.opportunity_id, a.status, a.applied_at, a.created_at, a.updated_at,
			o.company_name, o.role, o.description, o.deadline, o.is_active
		FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC`, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var (
			a application.Application
			o application.OpportunitySummary
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.OpportunityID, &a.Status, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt,
			&o.CompanyName, &o.Role, &o.Description, &o.Deadline, &o.IsActive); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		o.ID = a.OpportunityID
		a.Opportunity = &o
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return items, nil
}

func (r *ApplicationRepository) ListByOpportunity(ctx context.Context, opportunityID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.user_id, a.opportunity_id, a.status, a.applied_at, a.created_at, a.updated_at,
			u.name, u.email, u.branch, u.batch, u.cgr, u.resume_link, u.profile_picture
		FROM applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.opportunity_id = $1
		ORDER BY a.applied_at DESC`, opportunityID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applicants", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var (
			a application.Application
			u application.ApplicantSummary
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.OpportunityID, &a.Status, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt,
			&u.Name, &u.Email, &u.Branch, &u.Batch, &u.CGR, &u.ResumeLink, &u.ProfilePicture); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan applicant", err)
		}
		u.ID = a.UserID
		a.Applicant = &u
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applicants", err)
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	updatedAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, status, updatedAt, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}
