package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/pkg/apperror"
)

type postgresSkillRepo struct {
	db *pgxpool.Pool
}

func NewPostgresSkillRepo(db *pgxpool.Pool) cv.SkillRepository {
	return &postgresSkillRepo{db: db}
}

var skillColumns = []string{"id", "owner_id", "skill_name", "category", "proficiency", "sort_order", "created_at", "updated_at"}

func scanSkill(row pgx.Row) (*cv.Skill, error) {
	s := &cv.Skill{}
	err := row.Scan(&s.ID, &s.OwnerID, &s.SkillName, &s.Category, &s.Proficiency, &s.Order, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *postgresSkillRepo) Save(ctx context.Context, s *cv.Skill) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query, args, err := psql.Insert("cv_skills").
		Columns("id", "owner_id", "skill_name", "category", "proficiency", "sort_order").
		Values(s.ID, s.OwnerID, s.SkillName, s.Category, s.Proficiency, s.Order).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build skill insert", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return writeError("skill", "save", err)
	}
	return nil
}

func (r *postgresSkillRepo) Update(ctx context.Context, s *cv.Skill) error {
	query, args, err := psql.Update("cv_skills").
		Set("skill_name", s.SkillName).
		Set("category", s.Category).
		Set("proficiency", s.Proficiency).
		Set("sort_order", s.Order).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": s.ID, "owner_id": s.OwnerID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build skill update", err)
	}
	err = r.db.QueryRow(ctx, query, args...).Scan(&s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound("skill", s.ID.String())
	}
	if err != nil {
		return writeError("skill", "update", err)
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cv_skills WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", id.String())
	}
	return nil
}

func (r *postgresSkillRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*cv.Skill, error) {
	query, args, err := psql.Select(skillColumns...).
		From("cv_skills").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skill query", err)
	}
	s, err := scanSkill(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("skill", id.String())
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to query skill", err)
	}
	return s, nil
}

func (r *postgresSkillRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*cv.Skill, error) {
	query, args, err := psql.Select(skillColumns...).
		From("cv_skills").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("sort_order ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skill query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list skills", err)
	}
	defer rows.Close()

	items := make([]*cv.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill rows: %w", err)
	}
	return items, nil
}
