package v1

import (
	"net/http"

	"go-interview-portal/config"
	"go-interview-portal/internal/delivery/http/middleware"
	"go-interview-portal/internal/delivery/http/response"
	"go-interview-portal/internal/domain"
	"go-interview-portal/internal/flow"
	"go-interview-portal/internal/usecase"
	"go-interview-portal/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	CandidateUC  domain.CandidateUsecase
	InvitationUC domain.InvitationUsecase
	RosterUC     domain.RosterUsecase
	RatingUC     usecase.RatingUsecase
	ExportUC     domain.ExportUsecase
	Resolver     domain.IdentityResolver
	Sessions     *flow.Manager
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Interview routes: authenticated candidates use their session, invited
	// candidates arrive with a token in the URL. Auth is optional here and
	// the identity resolver picks exactly one identifier downstream.
	interview := v1.Group("")
	interview.Use(middleware.OptionalAuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		NewInterviewHandler(interview, deps.Sessions, deps.Resolver)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewCandidateHandler(protected, deps.CandidateUC)

		admin := protected.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			NewInvitationHandler(v1, admin, deps.InvitationUC)
			NewAdminHandler(admin, deps.RosterUC, deps.RatingUC, deps.ExportUC)
		}
	}

	return r
}
