package controller

import (
	"creator-engagement-system/chain"
	"creator-engagement-system/conf"
	"creator-engagement-system/controller/handler"
	"creator-engagement-system/controller/respond"
	"creator-engagement-system/docs"
	"creator-engagement-system/service/directory_service"
	"creator-engagement-system/service/ledger_service"
	"creator-engagement-system/service/registry_service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupEngagementRouter setup engagement service router
func SetupEngagementRouter(chainClient *chain.Client, registryService *registry_service.RegistryService) *gin.Engine {
	// Set Swagger host from config
	docs.SwaggerInfo.Host = conf.Cfg.SwaggerBaseUrl

	// Create Gin engine
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Allow all origins, can be configured to specific domains
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "Accept", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * 3600, // 12 hours
	}))

	// Add timing middleware
	r.Use(respond.TimingMiddleware())

	// Create service instances
	ledgerService := ledger_service.NewLedgerService()
	directoryService := directory_service.NewDirectoryService()

	// Create handlers
	engagementHandler := handler.NewEngagementHandler(ledgerService)
	directoryQueryHandler := handler.NewDirectoryQueryHandler(directoryService)
	if registryService != nil {
		directoryQueryHandler.SetRegistryService(registryService)
	}
	if chainClient != nil {
		directoryQueryHandler.SetChainClient(chainClient)
	}

	// Legacy engagement routes (original platform API shape)
	api := r.Group("/api")
	{
		// Register a creator account
		api.POST("/users", engagementHandler.RegisterUser)

		// Register a content record
		api.POST("/posts", engagementHandler.RegisterPost)

		// Engagement actions
		api.POST("/like", engagementHandler.Like)
		api.POST("/unlike", engagementHandler.Unlike)
		api.POST("/comment", engagementHandler.Comment)
		api.POST("/follow", engagementHandler.Follow)

		// Aggregated engagement totals
		api.GET("/total_user_engagement/:wallet_address", engagementHandler.TotalUserEngagement)
		api.GET("/total_post_engagement/:content_id", engagementHandler.TotalPostEngagement)
	}

	// API v1 route group (enveloped responses)
	v1 := r.Group("/api/v1")
	{
		// Creator directory routes
		creators := v1.Group("/creators")
		{
			// Batch resolve creator identifiers
			creators.POST("/resolve", directoryQueryHandler.ResolveCreators)

			// Get creator by address
			creators.GET("/:address", directoryQueryHandler.GetCreatorByAddress)

			// Get contents owned by a creator
			creators.GET("/:address/contents", directoryQueryHandler.ListContentsByCreator)
		}

		// Content directory routes
		contents := v1.Group("/contents")
		{
			// Batch resolve content identifiers
			contents.POST("/resolve", directoryQueryHandler.ResolveContents)

			// Get content by blob id
			contents.GET("/:blobId", directoryQueryHandler.GetContentByBlobID)

			// Get comments on a content item
			contents.GET("/:blobId/comments", directoryQueryHandler.GetContentComments)
		}

		// Live on-chain registry routes
		registry := v1.Group("/registry")
		{
			registry.GET("/creators", directoryQueryHandler.GetRegistryCreators)
			registry.GET("/contents", directoryQueryHandler.GetRegistryContents)
		}

		// Sync status route
		v1.GET("/status", directoryQueryHandler.GetSyncStatus)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "engagement",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
