// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/config"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/handlers"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/middleware"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

const version = "1.0.0"

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	authService := services.NewAuthService(db, cfg, nil)
	userService := services.NewUserService(db)
	catalogService := services.NewCatalogService(db)
	playlistService := services.NewPlaylistService(db)
	favoriteService := services.NewFavoriteService(db)
	contractService := services.NewContractService(db, notificationService, nil)
	beatService := services.NewBeatService(db)
	collaborationService := services.NewCollaborationService(db, notificationService, nil)
	dashboardService := services.NewDashboardService(db, nil)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, storageService, favoriteService, playlistService)
	playlistHandler := handlers.NewPlaylistHandler(playlistService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	contractHandler := handlers.NewContractHandler(contractService)
	beatHandler := handlers.NewBeatHandler(beatService, storageService)
	collaborationHandler := handlers.NewCollaborationHandler(collaborationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, notificationService)
	adminHandler := handlers.NewAdminHandler(auditService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	limiters := middleware.NewLimiters(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limiters.General.Middleware())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	})

	manageAlbums := middleware.RequireCapability(domain.CapManageAlbums)
	managePlaylists := middleware.RequireCapability(domain.CapManagePlaylists)
	manageContracts := middleware.RequireCapability(domain.CapManageContracts)
	manageBeats := middleware.RequireCapability(domain.CapManageBeats)
	manageCollaborations := middleware.RequireCapability(domain.CapManageCollaborations)
	uploads := limiters.Upload.Middleware()

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(limiters.Auth.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Public routes
		v1.GET("/stats/landing", dashboardHandler.LandingStats)
		v1.GET("/genres", catalogHandler.ListGenres)
		v1.GET("/search", middleware.OptionalAuth(), catalogHandler.Search)
		v1.GET("/users/:id/public", userHandler.GetPublicProfile)

		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/dashboard", dashboardHandler.Dashboard)
			protected.GET("/notifications", dashboardHandler.Notifications)
			protected.POST("/notifications/:id/read", dashboardHandler.MarkNotificationRead)

			protected.GET("/users/profile", userHandler.GetProfile)
			protected.PUT("/users/profile", userHandler.UpdateProfile)
			protected.DELETE("/users/account", userHandler.DeleteAccount)

			protected.GET("/artists", middleware.RequireAnyCapability(domain.CapManageContracts, domain.CapManageCollaborations), userHandler.ListArtists)
			protected.GET("/artists/search", manageContracts, contractHandler.ArtistSearch)
		}

		// Album and track routes
		albums := v1.Group("/albums")
		{
			albums.GET("", catalogHandler.ListAlbums)
			albums.GET("/:id", catalogHandler.GetAlbum)

			owner := albums.Group("")
			owner.Use(middleware.AuthRequired(), manageAlbums)
			{
				owner.POST("", catalogHandler.CreateAlbum)
				owner.PUT("/:id", catalogHandler.UpdateAlbum)
				owner.DELETE("/:id", catalogHandler.DeleteAlbum)
				owner.POST("/:id/cover", uploads, catalogHandler.UploadCover)
				owner.POST("/:id/tracks", catalogHandler.CreateTrack)
				owner.GET("/:id/tracks/next-number", catalogHandler.NextTrackNumber)
			}
		}

		tracks := v1.Group("/tracks")
		tracks.Use(middleware.AuthRequired())
		{
			tracks.PUT("/:id", manageAlbums, catalogHandler.UpdateTrack)
			tracks.DELETE("/:id", manageAlbums, catalogHandler.DeleteTrack)
			tracks.POST("/:id/favorite", managePlaylists, favoriteHandler.Toggle)
			tracks.POST("/:id/quick-add", managePlaylists, playlistHandler.QuickAdd)
		}

		// Listener routes
		v1.GET("/favorites", middleware.AuthRequired(), managePlaylists, favoriteHandler.List)

		playlists := v1.Group("/playlists")
		playlists.Use(middleware.AuthRequired(), managePlaylists)
		{
			playlists.GET("", playlistHandler.List)
			playlists.POST("", playlistHandler.Create)
			playlists.GET("/:id", playlistHandler.Get)
			playlists.PUT("/:id", playlistHandler.Update)
			playlists.DELETE("/:id", playlistHandler.Delete)
			playlists.POST("/:id/tracks/:track_id", playlistHandler.AddTrack)
			playlists.DELETE("/:id/tracks/:track_id", playlistHandler.RemoveTrack)
		}

		// Label manager routes
		contracts := v1.Group("/contracts")
		contracts.Use(middleware.AuthRequired(), manageContracts)
		{
			contracts.GET("", contractHandler.List)
			contracts.POST("", contractHandler.Create)
			contracts.GET("/:id", contractHandler.Get)
			contracts.PUT("/:id", contractHandler.Update)
			contracts.DELETE("/:id", contractHandler.Delete)
		}

		// Producer routes
		beats := v1.Group("/beats")
		{
			beats.GET("", middleware.OptionalAuth(), beatHandler.List)
			beats.GET("/:id", beatHandler.Get)

			owner := beats.Group("")
			owner.Use(middleware.AuthRequired(), manageBeats)
			{
				owner.POST("", beatHandler.Create)
				owner.PUT("/:id", beatHandler.Update)
				owner.DELETE("/:id", beatHandler.Delete)
				owner.POST("/:id/artwork", uploads, beatHandler.UploadArtwork)
			}
		}

		collaborations := v1.Group("/collaborations")
		collaborations.Use(middleware.AuthRequired())
		{
			view := middleware.RequireCapability(domain.CapViewCollaborations)
			collaborations.GET("", view, collaborationHandler.List)
			collaborations.GET("/:id", view, collaborationHandler.Get)
			collaborations.POST("", manageCollaborations, collaborationHandler.Create)
			collaborations.PUT("/:id", manageCollaborations, collaborationHandler.Update)
			collaborations.DELETE("/:id", manageCollaborations, collaborationHandler.Delete)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/audit-logs", adminHandler.AuditLogs)
		}
	}

	// Local uploads are served by the API itself
	if !cfg.AWS.S3Enabled() {
		r.Static("/uploads", cfg.Storage.LocalPath)
	}

	return r, nil
}
