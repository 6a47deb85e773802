package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/pkg/apperror"
)

type postgresExperienceRepo struct {
	db *pgxpool.Pool
}

func NewPostgresExperienceRepo(db *pgxpool.Pool) cv.ExperienceRepository {
	return &postgresExperienceRepo{db: db}
}

var experienceColumns = []string{
	"id", "owner_id", "job_title", "company", "location", "start_date", "end_date", "is_current",
	"overview", "role_categories", "description", "sort_order", "created_at", "updated_at",
}

func scanExperience(row pgx.Row) (*cv.Experience, error) {
	e := &cv.Experience{}
	var categoriesBytes []byte
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.JobTitle, &e.Company, &e.Location, &e.StartDate, &e.EndDate, &e.IsCurrent,
		&e.Overview, &categoriesBytes, &e.Description, &e.Order, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(categoriesBytes, &e.RoleCategories); err != nil {
		e.RoleCategories = cv.RoleCategoryList{}
	}
	return e, nil
}

func (r *postgresExperienceRepo) Save(ctx context.Context, e *cv.Experience) error {
	categoriesBytes, err := mustJSON(e.RoleCategories)
	if err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	query := `
		INSERT INTO cv_experiences (id, owner_id, job_title, company, location, start_date, end_date,
			is_current, overview, role_categories, description, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		e.ID, e.OwnerID, e.JobTitle, e.Company, e.Location, e.StartDate, e.EndDate,
		e.IsCurrent, e.Overview, categoriesBytes, e.Description, e.Order,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return writeError("experience", "save", err)
	}
	return nil
}

func (r *postgresExperienceRepo) Update(ctx context.Context, e *cv.Experience) error {
	categoriesBytes, err := mustJSON(e.RoleCategories)
	if err != nil {
		return err
	}
	query := `
		UPDATE cv_experiences SET
			job_title = $3, company = $4, location = $5, start_date = $6, end_date = $7,
			is_current = $8, overview = $9, role_categories = $10, description = $11,
			sort_order = $12, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING updated_at
	`
	err = r.db.QueryRow(ctx, query,
		e.ID, e.OwnerID, e.JobTitle, e.Company, e.Location, e.StartDate, e.EndDate,
		e.IsCurrent, e.Overview, categoriesBytes, e.Description, e.Order,
	).Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound("experience", e.ID.String())
	}
	if err != nil {
		return writeError("experience", "update", err)
	}
	return nil
}

func (r *postgresExperienceRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cv_experiences WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete experience", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("experience", id.String())
	}
	return nil
}

func (r *postgresExperienceRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*cv.Experience, error) {
	query, args, err := psql.Select(experienceColumns...).
		From("cv_experiences").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build experience query", err)
	}
	e, err := scanExperience(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("experience", id.String())
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to query experience", err)
	}
	return e, nil
}

func (r *postgresExperienceRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*cv.Experience, error) {
	query, args, err := psql.Select(experienceColumns...).
		From("cv_experiences").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("sort_order ASC", "start_date DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build experience query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list experiences", err)
	}
	defer rows.Close()

	items := make([]*cv.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experience row: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating experience rows: %w", err)
	}
	return items, nil
}
