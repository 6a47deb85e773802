package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) cv.ProfileRepository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*cv.Profile, error) {
	query := `
		SELECT id, owner_id, full_name, title, email, phone, location, date_of_birth,
			nationality, profile_photo, profile_summary, core_strengths, languages,
			created_at, updated_at
		FROM cv_profiles
		WHERE owner_id = $1
	`
	p := &cv.Profile{}
	var strengthsBytes, languagesBytes []byte

	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&p.ID, &p.OwnerID, &p.FullName, &p.Title, &p.Email, &p.Phone, &p.Location, &p.DateOfBirth,
		&p.Nationality, &p.ProfilePhoto, &p.ProfileSummary, &strengthsBytes, &languagesBytes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	// List columns tolerate legacy string-encoded values.
	if err := json.Unmarshal(strengthsBytes, &p.CoreStrengths); err != nil {
		r.logger.Warn("Failed to unmarshal core_strengths", zap.String("owner_id", ownerID.String()), zap.Error(err))
		p.CoreStrengths = cv.StringList{}
	}
	if err := json.Unmarshal(languagesBytes, &p.Languages); err != nil {
		r.logger.Warn("Failed to unmarshal languages", zap.String("owner_id", ownerID.String()), zap.Error(err))
		p.Languages = cv.LanguageList{}
	}
	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *cv.Profile) error {
	strengthsBytes, err := mustJSON(p.CoreStrengths)
	if err != nil {
		return err
	}
	languagesBytes, err := mustJSON(p.Languages)
	if err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query := `
		INSERT INTO cv_profiles (id, owner_id, full_name, title, email, phone, location, date_of_birth,
			nationality, profile_photo, profile_summary, core_strengths, languages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT (owner_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			title = EXCLUDED.title,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			date_of_birth = EXCLUDED.date_of_birth,
			nationality = EXCLUDED.nationality,
			profile_photo = EXCLUDED.profile_photo,
			profile_summary = EXCLUDED.profile_summary,
			core_strengths = EXCLUDED.core_strengths,
			languages = EXCLUDED.languages,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		p.ID, p.OwnerID, p.FullName, p.Title, p.Email, p.Phone, p.Location, p.DateOfBirth,
		p.Nationality, p.ProfilePhoto, p.ProfileSummary, strengthsBytes, languagesBytes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return writeError("profile", "upsert", err)
	}
	return nil
}
