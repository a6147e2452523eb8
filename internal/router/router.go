// Package router assembles the HTTP surface: middleware, handlers and routes.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "assetledger/internal/docs" // Import swagger docs
	"assetledger/internal/handlers"
	"assetledger/internal/middleware"
	"assetledger/internal/services"
	"assetledger/internal/session"
	"assetledger/internal/storage"
)

// Deps is everything the router needs to build its services and handlers.
type Deps struct {
	DB              *gorm.DB
	Store           storage.Storage
	Revoker         session.Revoker
	JWTSecret       string
	SessionTTL      time.Duration
	SecureCookie    bool
	MaxUploadBytes  int64
	DisplayCurrency string
	// TrustedProxies are the only peers whose X-Forwarded-For is honoured
	// when recording client addresses. Nil trusts no proxy.
	TrustedProxies []string
}

// New builds the gin engine with every route. It fails when a trusted proxy
// entry is not a valid IP or CIDR.
func New(deps Deps) (*gin.Engine, error) {
	// Services
	userService := services.NewUserService(deps.DB)
	activity := services.NewActivityService(deps.DB)
	documents := services.NewDocumentService(deps.DB, deps.Store, activity)
	assets := services.NewAssetService(deps.DB, deps.Store, documents, activity)
	aggregation := services.NewAggregationService(deps.DB, activity, deps.DisplayCurrency)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, deps.Revoker, handlers.SessionConfig{
		Secret:       deps.JWTSecret,
		TTL:          deps.SessionTTL,
		SecureCookie: deps.SecureCookie,
	})
	assetHandler := handlers.NewAssetHandler(assets)
	documentHandler := handlers.NewDocumentHandler(documents)
	activityHandler := handlers.NewActivityHandler(activity)
	dashboardHandler := handlers.NewDashboardHandler(aggregation)

	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.BodyLimit(deps.MaxUploadBytes))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	router.POST("/signup/", authHandler.Signup)
	router.POST("/login/", authHandler.Login)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.Revoker))

	protected.GET("/", dashboardHandler.GetDashboard)
	protected.GET("/api/chart-data/", dashboardHandler.GetChartData)
	protected.POST("/logout/", authHandler.Logout)
	protected.GET("/activity/", activityHandler.ListActivity)

	assetRoutes := protected.Group("/assets")
	assetRoutes.GET("/", assetHandler.ListAssets)
	assetRoutes.POST("/create/", assetHandler.CreateAsset)
	assetRoutes.GET("/:id/", assetHandler.GetAsset)
	assetRoutes.POST("/:id/edit/", assetHandler.UpdateAsset)
	assetRoutes.POST("/:id/delete/", assetHandler.DeleteAsset)
	assetRoutes.POST("/:id/documents/", documentHandler.AttachDocuments)

	documentRoutes := protected.Group("/documents")
	documentRoutes.GET("/:id/download/", documentHandler.DownloadDocument)
	documentRoutes.POST("/:id/delete/", documentHandler.DeleteDocument)

	return router, nil
}
