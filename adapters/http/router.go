package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/pkg/auth"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

type Handlers struct {
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Experiences *CRUDHandler[cv.Experience, cv.Experience]
	Education   *CRUDHandler[cv.Education, cv.Education]
	Skills      *CRUDHandler[cv.Skill, cv.Skill]
	Templates   *CRUDHandler[template.Input, template.Template]
	Template    *TemplateHandler
	Export      *ExportHandler
	Public      *PublicHandler
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		if h.Public != nil {
			api.GET("/cv/public", h.Public.GetCV)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", h.Auth.Login)

			private := admin.Group("/cv")
			private.Use(AuthMiddleware(jwtSvc, log))
			{
				private.GET("/profile", h.Profile.GetProfile)
				private.PUT("/profile", h.Profile.UpdateProfile)
				private.POST("/profile/photo", h.Profile.UploadPhoto)

				h.Experiences.Register(private.Group("/experiences"))
				h.Education.Register(private.Group("/education"))
				h.Skills.Register(private.Group("/skills"))

				templates := private.Group("/templates")
				templates.POST("/import", h.Template.Import)
				h.Templates.Register(templates)

				private.GET("/preview", h.Template.Preview)

				private.POST("/exports", h.Export.CreateExport)
				private.GET("/exports/:downloadId", h.Export.Download)

				private.POST("/ai/validate", h.Export.ValidateAI)
				private.POST("/ai/rewrite", h.Export.RewriteAI)
			}
		}
	}
	return router
}
