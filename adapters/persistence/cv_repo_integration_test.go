package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/internal/domain/user"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

type CVRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profiles    cv.ProfileRepository
	experiences cv.ExperienceRepository
	education   cv.EducationRepository
	skills      cv.SkillRepository
	templates   template.Repository
	users       user.Repository
	owner       *user.User
}

func (s *CVRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.profiles = NewPostgresProfileRepo(pool, logger.NewNop())
	s.experiences = NewPostgresExperienceRepo(pool)
	s.education = NewPostgresEducationRepo(pool)
	s.skills = NewPostgresSkillRepo(pool)
	s.templates = NewPostgresTemplateRepo(pool)
	s.users = NewPostgresUserRepo(pool)

	s.owner = &user.User{Email: "testowner@example.com", PasswordHash: "hashedpassword"}
	if err := s.users.Upsert(ctx, s.owner); err != nil {
		s.T().Fatalf("Failed to seed owner: %s", err)
	}
}

func (s *CVRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestCVRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(CVRepoIntegrationTestSuite))
}

func (s *CVRepoIntegrationTestSuite) Test_User_FindOwner_And_Upsert() {
	ctx := context.Background()

	found, err := s.users.FindOwner(ctx)
	s.Require().NoError(err)
	s.Equal(s.owner.ID, found.ID)

	again := &user.User{Email: s.owner.Email, PasswordHash: "rotated"}
	s.Require().NoError(s.users.Upsert(ctx, again))
	s.Equal(s.owner.ID, again.ID)

	byEmail, err := s.users.FindByEmail(ctx, s.owner.Email)
	s.Require().NoError(err)
	s.Equal("rotated", byEmail.PasswordHash)

	_, err = s.users.FindByEmail(ctx, "missing@example.com")
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *CVRepoIntegrationTestSuite) Test_Profile_Upsert_And_Get() {
	ctx := context.Background()

	p := &cv.Profile{
		OwnerID:       s.owner.ID,
		FullName:      "Jane Doe",
		CoreStrengths: cv.StringList{"Leadership"},
		Languages:     cv.LanguageList{{Language: "English", Proficiency: "Native"}},
	}
	s.Require().NoError(s.profiles.Upsert(ctx, p))
	firstID := p.ID

	p.Title = "Engineer"
	s.Require().NoError(s.profiles.Upsert(ctx, p))

	got, err := s.profiles.GetByOwner(ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(firstID, got.ID)
	s.Equal("Engineer", got.Title)
	s.Equal(cv.StringList{"Leadership"}, got.CoreStrengths)
	s.Len(got.Languages, 1)
}

func (s *CVRepoIntegrationTestSuite) Test_Profile_LegacyStringColumns() {
	ctx := context.Background()
	other := &user.User{Email: "legacy@example.com", PasswordHash: "x"}
	s.Require().NoError(s.users.Upsert(ctx, other))

	_, err := s.dbPool.Exec(ctx,
		`INSERT INTO cv_profiles (owner_id, full_name, core_strengths, languages) VALUES ($1, 'Old', $2, $3)`,
		other.ID, `"[\"Focus\"]"`, `"not json"`)
	s.Require().NoError(err)

	got, err := s.profiles.GetByOwner(ctx, other.ID)
	s.Require().NoError(err)
	s.Equal(cv.StringList{"Focus"}, got.CoreStrengths)
	s.Empty(got.Languages)
}

func (s *CVRepoIntegrationTestSuite) Test_Experience_CRUD_And_Order() {
	ctx := context.Background()
	end := "2019-12"

	older := &cv.Experience{OwnerID: s.owner.ID, JobTitle: "Dev", Company: "Init", StartDate: "2018-01", EndDate: &end,
		RoleCategories: cv.RoleCategoryList{{Category: "Delivery", Items: cv.StringList{"Shipped"}}}}
	newer := &cv.Experience{OwnerID: s.owner.ID, JobTitle: "PM", Company: "Acme", StartDate: "2020-01", IsCurrent: true}
	s.Require().NoError(s.experiences.Save(ctx, older))
	s.Require().NoError(s.experiences.Save(ctx, newer))

	list, err := s.experiences.ListByOwner(ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(newer.ID, list[0].ID)
	s.Nil(list[0].EndDate)
	s.Equal("2019-12", *list[1].EndDate)
	s.Equal("Delivery", list[1].RoleCategories[0].Category)

	older.Order = -1
	s.Require().NoError(s.experiences.Update(ctx, older))
	list, err = s.experiences.ListByOwner(ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(older.ID, list[0].ID)

	s.Require().NoError(s.experiences.Delete(ctx, older.ID, s.owner.ID))
	_, err = s.experiences.FindByID(ctx, older.ID, s.owner.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
	s.ErrorIs(s.experiences.Delete(ctx, older.ID, s.owner.ID), apperror.ErrNotFound)
}

func (s *CVRepoIntegrationTestSuite) Test_Education_And_Skills() {
	ctx := context.Background()

	edu := &cv.Education{OwnerID: s.owner.ID, School: "MIT", Degree: "BSc", StartDate: "2014-09", IsOngoing: true,
		EducationSections: cv.EducationSectionList{{Title: "Courses", Items: cv.StringList{"Algorithms"}}}}
	s.Require().NoError(s.education.Save(ctx, edu))
	got, err := s.education.FindByID(ctx, edu.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal("Courses", got.EducationSections[0].Title)

	_, err = s.education.FindByID(ctx, edu.ID, uuid.New())
	s.ErrorIs(err, apperror.ErrNotFound)

	sk := &cv.Skill{OwnerID: s.owner.ID, SkillName: "Go", Category: "Backend", Order: 2}
	s.Require().NoError(s.skills.Save(ctx, sk))
	sk.Proficiency = "Expert"
	s.Require().NoError(s.skills.Update(ctx, sk))
	skills, err := s.skills.ListByOwner(ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(skills, 1)
	s.Equal("Expert", skills[0].Proficiency)

	missing := &cv.Skill{ID: uuid.New(), OwnerID: s.owner.ID, SkillName: "x"}
	s.ErrorIs(s.skills.Update(ctx, missing), apperror.ErrNotFound)
}

func (s *CVRepoIntegrationTestSuite) Test_Template_Selections_And_Default() {
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	t := &template.Template{OwnerID: s.owner.ID, Input: template.NewInput("Backend")}
	t.SelectedSkillIDs = []uuid.UUID{a, b, a}
	s.Require().NoError(s.templates.Save(ctx, t))

	got, err := s.templates.FindByID(ctx, t.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{a, b}, got.SelectedSkillIDs)
	s.Empty(got.SelectedExperienceIDs)
	s.True(got.IncludeProfile)

	_, err = s.templates.FindDefault(ctx, s.owner.ID)
	s.ErrorIs(err, apperror.ErrNotFound)

	got.IsDefault = true
	s.Require().NoError(s.templates.Update(ctx, got))
	def, err := s.templates.FindDefault(ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(t.ID, def.ID)

	list, err := s.templates.ListByOwner(ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Len(list, 1)
}
