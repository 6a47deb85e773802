package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-studio/adapters/event"
	httpAdapter "github.com/khoahotran/cv-studio/adapters/http"
	"github.com/khoahotran/cv-studio/adapters/llm"
	"github.com/khoahotran/cv-studio/adapters/media_storage"
	"github.com/khoahotran/cv-studio/adapters/pdf"
	"github.com/khoahotran/cv-studio/adapters/persistence"
	"github.com/khoahotran/cv-studio/internal/application/service"
	authUC "github.com/khoahotran/cv-studio/internal/application/usecase/auth"
	"github.com/khoahotran/cv-studio/internal/application/usecase/cvdata"
	exportUC "github.com/khoahotran/cv-studio/internal/application/usecase/export"
	profileUC "github.com/khoahotran/cv-studio/internal/application/usecase/profile"
	"github.com/khoahotran/cv-studio/internal/application/usecase/record"
	templateUC "github.com/khoahotran/cv-studio/internal/application/usecase/template"
	"github.com/khoahotran/cv-studio/internal/config"
	"github.com/khoahotran/cv-studio/pkg/auth"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"github.com/khoahotran/cv-studio/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start CV Studio API Server...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg.Jaeger.Endpoint, "cv-studio-api", appLogger)
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Infrastructure
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	var publisher service.ExportEventPublisher
	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Kafka disabled, exports will not be archived", zap.Error(err))
	} else {
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Cloudinary disabled, photo upload unavailable", zap.Error(err))
	}

	aiEditor, err := llm.NewOpenAIEditor(cfg, appLogger)
	if err != nil {
		appLogger.Warn("LLM editor disabled", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	experienceRepo := persistence.NewPostgresExperienceRepo(dbPool)
	educationRepo := persistence.NewPostgresEducationRepo(dbPool)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool)
	templateRepo := persistence.NewPostgresTemplateRepo(dbPool)
	exportStore := persistence.NewRedisExportStore(redisClient, cfg.Redis.ExportTTL)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	renderer := pdf.NewChromedpRenderer(cfg, appLogger)

	// Use Cases
	loader := cvdata.NewLoader(profileRepo, experienceRepo, educationRepo, skillRepo, templateRepo)
	templateUseCase := templateUC.NewTemplateUseCase(templateRepo, appLogger)
	previewUseCase := exportUC.NewPreviewUseCase(loader)

	// HTTP
	handlers := httpAdapter.Handlers{
		Auth:        httpAdapter.NewAuthHandler(authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger), appLogger),
		Profile:     httpAdapter.NewProfileHandler(profileUC.NewProfileUseCase(profileRepo, uploader, appLogger), appLogger),
		Experiences: httpAdapter.NewCRUDHandler("experience", record.NewExperienceUseCase(experienceRepo, appLogger)),
		Education:   httpAdapter.NewCRUDHandler("education", record.NewEducationUseCase(educationRepo, appLogger)),
		Skills:      httpAdapter.NewCRUDHandler("skill", record.NewSkillUseCase(skillRepo, appLogger)),
		Templates:   httpAdapter.NewCRUDHandler("template", templateUseCase),
		Template: httpAdapter.NewTemplateHandler(
			templateUC.NewImportTemplateUseCase(loader, templateUseCase, appLogger),
			previewUseCase,
			appLogger,
		),
		Export: httpAdapter.NewExportHandler(
			exportUC.NewExportUseCase(loader, renderer, exportStore, publisher, appLogger),
			exportUC.NewAIUseCase(loader, aiEditor, appLogger),
			appLogger,
		),
		Public: httpAdapter.NewPublicHandler(userRepo, previewUseCase),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           httpAdapter.NewRouter(handlers, jwtSvc, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
