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

type postgresEducationRepo struct {
	db *pgxpool.Pool
}

func NewPostgresEducationRepo(db *pgxpool.Pool) cv.EducationRepository {
	return &postgresEducationRepo{db: db}
}

var educationColumns = []string{
	"id", "owner_id", "school", "degree", "field", "location", "start_date", "end_date", "is_ongoing",
	"overview", "education_sections", "website", "eqf_level", "description", "sort_order",
	"created_at", "updated_at",
}

func scanEducation(row pgx.Row) (*cv.Education, error) {
	e := &cv.Education{}
	var sectionsBytes []byte
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.School, &e.Degree, &e.Field, &e.Location, &e.StartDate, &e.EndDate, &e.IsOngoing,
		&e.Overview, &sectionsBytes, &e.Website, &e.EQFLevel, &e.Description, &e.Order,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sectionsBytes, &e.EducationSections); err != nil {
		e.EducationSections = cv.EducationSectionList{}
	}
	return e, nil
}

func (r *postgresEducationRepo) Save(ctx context.Context, e *cv.Education) error {
	sectionsBytes, err := mustJSON(e.EducationSections)
	if err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	query := `
		INSERT INTO cv_education (id, owner_id, school, degree, field, location, start_date, end_date,
			is_ongoing, overview, education_sections, website, eqf_level, description, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		e.ID, e.OwnerID, e.School, e.Degree, e.Field, e.Location, e.StartDate, e.EndDate,
		e.IsOngoing, e.Overview, sectionsBytes, e.Website, e.EQFLevel, e.Description, e.Order,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return writeError("education", "save", err)
	}
	return nil
}

func (r *postgresEducationRepo) Update(ctx context.Context, e *cv.Education) error {
	sectionsBytes, err := mustJSON(e.EducationSections)
	if err != nil {
		return err
	}
	query := `
		UPDATE cv_education SET
			school = $3, degree = $4, field = $5, location = $6, start_date = $7, end_date = $8,
			is_ongoing = $9, overview = $10, education_sections = $11, website = $12,
			eqf_level = $13, description = $14, sort_order = $15, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING updated_at
	`
	err = r.db.QueryRow(ctx, query,
		e.ID, e.OwnerID, e.School, e.Degree, e.Field, e.Location, e.StartDate, e.EndDate,
		e.IsOngoing, e.Overview, sectionsBytes, e.Website, e.EQFLevel, e.Description, e.Order,
	).Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound("education", e.ID.String())
	}
	if err != nil {
		return writeError("education", "update", err)
	}
	return nil
}

func (r *postgresEducationRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cv_education WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete education", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("education", id.String())
	}
	return nil
}

func (r *postgresEducationRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*cv.Education, error) {
	query, args, err := psql.Select(educationColumns...).
		From("cv_education").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build education query", err)
	}
	e, err := scanEducation(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("education", id.String())
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to query education", err)
	}
	return e, nil
}

func (r *postgresEducationRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*cv.Education, error) {
	query, args, err := psql.Select(educationColumns...).
		From("cv_education").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("sort_order ASC", "start_date DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build education query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list education", err)
	}
	defer rows.Close()

	items := make([]*cv.Education, 0)
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan education row: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating education rows: %w", err)
	}
	return items, nil
}
