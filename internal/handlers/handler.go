package handlers

import (
	"feature_voting/internal/logger"
	"feature_voting/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		h.registerAuthRoutes(api)
		h.registerUserRoutes(api)
		h.registerFeatureRoutes(api)
		h.registerVoteRoutes(api)
	}

	// Live vote counts over WebSocket, same port
	router.GET("/ws/features", h.wsFeatureCounts)

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)

		auth.GET("/profile", h.userIdentity, h.getProfile)
		auth.PUT("/profile", h.userIdentity, h.updateProfile)
		auth.PUT("/change-password", h.userIdentity, h.changePassword)
	}
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

func (h *Handler) registerFeatureRoutes(api *gin.RouterGroup) {
	features := api.Group("/features")
	{
		features.GET("", h.listFeatures)
		features.GET("/:id", h.getFeature)
		features.POST("", h.optionalIdentity, h.createFeature)
		features.PUT("/:id", h.updateFeature)
		features.DELETE("/:id", h.deleteFeature)
		// Body example: {"voterId":"..."} (ignored when a valid token is sent)
		features.POST("/:id/toggle-vote", h.optionalIdentity, h.toggleVote)
	}
}

func (h *Handler) registerVoteRoutes(api *gin.RouterGroup) {
	votes := api.Group("/votes")
	{
		votes.GET("", h.listVotes)
		votes.GET("/:id", h.getVote)
		votes.POST("", h.createVote)
		votes.DELETE("/:id", h.deleteVote)
	}
}
