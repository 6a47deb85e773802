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

	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/pkg/apperror"
)

type postgresTemplateRepo struct {
	db *pgxpool.Pool
}

func NewPostgresTemplateRepo(db *pgxpool.Pool) template.Repository {
	return &postgresTemplateRepo{db: db}
}

var templateColumns = []string{
	"id", "owner_id", "name", "description", "include_profile", "include_languages", "is_default",
	"selected_experience_ids", "selected_education_ids", "selected_skill_ids", "created_at", "updated_at",
}

// decodeIDs reads a JSONB id array, dropping entries that are not UUIDs.
func decodeIDs(data []byte) []uuid.UUID {
	var raw []string
	_ = json.Unmarshal(data, &raw)
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return template.Dedupe(ids)
}

func scanTemplate(row pgx.Row) (*template.Template, error) {
	t := &template.Template{}
	var expBytes, eduBytes, skillBytes []byte
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.Description, &t.IncludeProfile, &t.IncludeLanguages, &t.IsDefault,
		&expBytes, &eduBytes, &skillBytes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.SelectedExperienceIDs = decodeIDs(expBytes)
	t.SelectedEducationIDs = decodeIDs(eduBytes)
	t.SelectedSkillIDs = decodeIDs(skillBytes)
	return t, nil
}

type selectionColumns struct {
	experiences, education, skills []byte
}

func encodeSelections(in template.Input) (selectionColumns, error) {
	var cols selectionColumns
	var err error
	if cols.experiences, err = mustJSON(template.Dedupe(in.SelectedExperienceIDs)); err != nil {
		return cols, err
	}
	if cols.education, err = mustJSON(template.Dedupe(in.SelectedEducationIDs)); err != nil {
		return cols, err
	}
	cols.skills, err = mustJSON(template.Dedupe(in.SelectedSkillIDs))
	return cols, err
}

func (r *postgresTemplateRepo) Save(ctx context.Context, t *template.Template) error {
	sel, err := encodeSelections(t.Input)
	if err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	query, args, err := psql.Insert("cv_templates").
		Columns("id", "owner_id", "name", "description", "include_profile", "include_languages", "is_default",
			"selected_experience_ids", "selected_education_ids", "selected_skill_ids").
		Values(t.ID, t.OwnerID, t.Name, t.Description, t.IncludeProfile, t.IncludeLanguages, t.IsDefault,
			sel.experiences, sel.education, sel.skills).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build template insert", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return writeError("template", "save", err)
	}
	return nil
}

func (r *postgresTemplateRepo) Update(ctx context.Context, t *template.Template) error {
	sel, err := encodeSelections(t.Input)
	if err != nil {
		return err
	}
	query, args, err := psql.Update("cv_templates").
		Set("name", t.Name).
		Set("description", t.Description).
		Set("include_profile", t.IncludeProfile).
		Set("include_languages", t.IncludeLanguages).
		Set("is_default", t.IsDefault).
		Set("selected_experience_ids", sel.experiences).
		Set("selected_education_ids", sel.education).
		Set("selected_skill_ids", sel.skills).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": t.ID, "owner_id": t.OwnerID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build template update", err)
	}
	err = r.db.QueryRow(ctx, query, args...).Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound("template", t.ID.String())
	}
	if err != nil {
		return writeError("template", "update", err)
	}
	return nil
}

func (r *postgresTemplateRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cv_templates WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete template", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("template", id.String())
	}
	return nil
}

func (r *postgresTemplateRepo) findOne(ctx context.Context, builder sq.SelectBuilder, key string) (*template.Template, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build template query", err)
	}
	t, err := scanTemplate(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("template", key)
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to query template", err)
	}
	return t, nil
}

func (r *postgresTemplateRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*template.Template, error) {
	return r.findOne(ctx, psql.Select(templateColumns...).
		From("cv_templates").
		Where(sq.Eq{"id": id, "owner_id": ownerID}), id.String())
}

// FindDefault returns the most recently updated template flagged default.
func (r *postgresTemplateRepo) FindDefault(ctx context.Context, ownerID uuid.UUID) (*template.Template, error) {
	return r.findOne(ctx, psql.Select(templateColumns...).
		From("cv_templates").
		Where(sq.Eq{"owner_id": ownerID, "is_default": true}).
		OrderBy("updated_at DESC").
		Limit(1), "default")
}

func (r *postgresTemplateRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*template.Template, error) {
	query, args, err := psql.Select(templateColumns...).
		From("cv_templates").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build template query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list templates", err)
	}
	defer rows.Close()

	items := make([]*template.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}
	return items, nil
}
