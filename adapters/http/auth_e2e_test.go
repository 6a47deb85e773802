package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/cv-studio/adapters/persistence"
	authUC "github.com/khoahotran/cv-studio/internal/application/usecase/auth"
	"github.com/khoahotran/cv-studio/internal/application/usecase/cvdata"
	exportUC "github.com/khoahotran/cv-studio/internal/application/usecase/export"
	profileUC "github.com/khoahotran/cv-studio/internal/application/usecase/profile"
	"github.com/khoahotran/cv-studio/internal/application/usecase/record"
	templateUC "github.com/khoahotran/cv-studio/internal/application/usecase/template"
	"github.com/khoahotran/cv-studio/internal/config"
	"github.com/khoahotran/cv-studio/pkg/auth"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

// CVE2ETestSuite runs against the database and Redis named in config.yaml.
type CVE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	dbPool   *pgxpool.Pool
	email    string
	password string
}

func (s *CVE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.dbPool = dbPool
	appLogger := logger.NewZapLogger("development")

	rdb, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect redis: %v", err)
	}

	userRepo := persistence.NewPostgresUserRepo(dbPool)
	s.email = "e2e_test@example.com"
	s.password = "e2e_test_password_123"
	if _, err := authUC.NewSeedOwnerUseCase(userRepo, appLogger).Execute(context.Background(), authUC.SeedOwnerInput{
		Email: s.email, Password: s.password,
	}); err != nil {
		s.T().Fatalf("E2E test failed to seed user: %v", err)
	}

	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	experienceRepo := persistence.NewPostgresExperienceRepo(dbPool)
	educationRepo := persistence.NewPostgresEducationRepo(dbPool)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool)
	templateRepo := persistence.NewPostgresTemplateRepo(dbPool)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	loader := cvdata.NewLoader(profileRepo, experienceRepo, educationRepo, skillRepo, templateRepo)
	templateUseCase := templateUC.NewTemplateUseCase(templateRepo, appLogger)
	preview := exportUC.NewPreviewUseCase(loader)

	gin.SetMode(gin.TestMode)
	s.Router = NewRouter(Handlers{
		Auth:        NewAuthHandler(authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger), appLogger),
		Profile:     NewProfileHandler(profileUC.NewProfileUseCase(profileRepo, nil, appLogger), appLogger),
		Experiences: NewCRUDHandler("experience", record.NewExperienceUseCase(experienceRepo, appLogger)),
		Education:   NewCRUDHandler("education", record.NewEducationUseCase(educationRepo, appLogger)),
		Skills:      NewCRUDHandler("skill", record.NewSkillUseCase(skillRepo, appLogger)),
		Templates:   NewCRUDHandler("template", templateUseCase),
		Template:    NewTemplateHandler(templateUC.NewImportTemplateUseCase(loader, templateUseCase, appLogger), preview, appLogger),
		Export: NewExportHandler(
			exportUC.NewExportUseCase(loader, nil, persistence.NewRedisExportStore(rdb, cfg.Redis.ExportTTL), nil, appLogger),
			exportUC.NewAIUseCase(loader, nil, appLogger),
			appLogger,
		),
		Public: NewPublicHandler(userRepo, preview),
	}, jwtSvc, appLogger)
}

func (s *CVE2ETestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}

func TestCVE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(CVE2ETestSuite))
}

func (s *CVE2ETestSuite) call(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *CVE2ETestSuite) Test_Login_Template_Export_Flow() {
	rr := s.call(http.MethodPost, "/api/admin/auth/login", "", gin.H{"email": s.email, "password": "wrongpassword"})
	s.Equal(http.StatusUnauthorized, rr.Code)

	rr = s.call(http.MethodPost, "/api/admin/auth/login", "", gin.H{"email": s.email, "password": s.password})
	s.Require().Equal(http.StatusOK, rr.Code)
	var login map[string]string
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &login))
	token := login["access_token"]
	s.NotEmpty(token)

	rr = s.call(http.MethodPost, "/api/admin/cv/experiences", token, gin.H{
		"jobTitle": "PM", "company": "Acme", "startDate": "2020-01", "isCurrent": true,
	})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var exp map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &exp))

	rr = s.call(http.MethodPost, "/api/admin/cv/templates/import", token, gin.H{
		"template": gin.H{"name": "E2E", "selectedExperienceIds": []string{exp["id"].(string), "gone"}},
	})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var imported ImportTemplateResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &imported))
	s.Len(imported.Warnings, 1)

	rr = s.call(http.MethodPost, "/api/admin/cv/exports", token, gin.H{"format": "json", "templateId": imported.Template.ID})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var created ExportResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &created))

	rr = s.call(http.MethodGet, "/api/admin/cv/exports/"+created.DownloadID, token, nil)
	s.Equal(http.StatusOK, rr.Code)

	rr = s.call(http.MethodGet, "/api/admin/cv/experiences", "", nil)
	s.Equal(http.StatusUnauthorized, rr.Code)
}
