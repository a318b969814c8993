package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/NH-Portal/portal-service/internal/identity"
	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/repositories"
	"github.com/NH-Portal/portal-service/internal/services"
	"github.com/NH-Portal/portal-service/internal/session"
	"github.com/NH-Portal/portal-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	accountHandler     *AccountHandler
	materialsHandler   *ContentHandler
	assessmentsHandler *ContentHandler
	importHandler      *ImportHandler
	authMiddleware     *SessionAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *session.Store,
	identityClient identity.Client,
	accounts repositories.AccountRepository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Auth(), logger),
		accountHandler:     NewAccountHandler(serviceManager.Account(), logger),
		materialsHandler:   NewContentHandler(serviceManager.Content(), serviceManager.Catalog(), models.CollectionMaterials, logger),
		assessmentsHandler: NewContentHandler(serviceManager.Content(), serviceManager.Catalog(), models.CollectionAssessments, logger),
		importHandler:      NewImportHandler(serviceManager.Import(), logger),
		authMiddleware:     NewSessionAuthMiddleware(sessions, identityClient, accounts),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
	}

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.POST("/auth/logout", hm.authHandler.Logout)
		authed.GET("/auth/me", hm.authHandler.Me)

		// Account management - Admins only
		accounts := authed.Group("/accounts")
		accounts.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			accounts.POST("", hm.accountHandler.CreateAccount)
			accounts.GET("", hm.accountHandler.ListAccounts)
			accounts.GET("/:id", hm.accountHandler.GetAccount)
			accounts.PUT("/:id", hm.accountHandler.UpdateAccount)
			accounts.DELETE("/:id", hm.accountHandler.DeleteAccount)

			accounts.POST("/import", hm.importHandler.ImportAccounts)
			accounts.POST("/import/xlsx", hm.importHandler.ImportAccountsXLSX)
		}

		// Content collections - browsing open to all authenticated
		// accounts, mutation restricted to admins
		for _, group := range []struct {
			path    string
			handler *ContentHandler
		}{
			{"/materials", hm.materialsHandler},
			{"/assessments", hm.assessmentsHandler},
		} {
			content := authed.Group(group.path)
			{
				content.GET("", group.handler.List)
				content.GET("/:id", group.handler.Get)
				content.GET("/:id/download", group.handler.DownloadFile)

				content.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), group.handler.Upload)
				content.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), group.handler.Delete)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "portal-service",
		})
	})
}
