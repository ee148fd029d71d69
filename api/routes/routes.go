package routes

import (
	"github.com/clubpuntos/loyalty-backend/internal/config"
	"github.com/clubpuntos/loyalty-backend/internal/handlers"
	"github.com/clubpuntos/loyalty-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies groups the handlers wired into the router.
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	PrizeHandler       *handlers.PrizeHandler
	TransactionHandler *handlers.TransactionHandler
	RedemptionHandler  *handlers.RedemptionHandler
}

// SetupRouter sets up the router: public auth routes, JWT-protected
// client routes, and admin-gated staff routes.
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())

	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		users := protected.Group("/users")
		{
			users.GET("/me", deps.UserHandler.GetMe)
			users.PATCH("/me", deps.UserHandler.UpdateMe)
		}

		prizes := protected.Group("/prizes")
		{
			prizes.GET("/available", deps.PrizeHandler.GetAvailablePrizes)
			prizes.GET("/:id", deps.PrizeHandler.GetPrizeByID)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.POST("/redeem", deps.RedemptionHandler.Redeem)
			transactions.GET("/my", deps.TransactionHandler.GetMyTransactions)
			transactions.GET("/my/redemptions", deps.TransactionHandler.GetMyPrizeRedemptions)
			transactions.GET("/my/pending-count", deps.TransactionHandler.GetMyPendingCount)
		}
	}

	admin := router.Group("/api/v1")
	admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.AdminRequired())
	{
		users := admin.Group("/users")
		{
			users.GET("", deps.UserHandler.GetAllUsers)
			users.GET("/count", deps.UserHandler.GetUserCount)
			users.GET("/:id", deps.UserHandler.GetUserByID)
		}

		prizes := admin.Group("/prizes")
		{
			prizes.GET("", deps.PrizeHandler.GetAllPrizes)
			prizes.POST("", deps.PrizeHandler.CreatePrize)
			prizes.PUT("/:id", deps.PrizeHandler.UpdatePrize)
			prizes.DELETE("/:id", deps.PrizeHandler.DeletePrize)
		}

		transactions := admin.Group("/transactions")
		{
			transactions.GET("", deps.TransactionHandler.GetAllTransactions)
			transactions.GET("/pending", deps.TransactionHandler.GetPendingTransactions)
			transactions.GET("/redemptions", deps.TransactionHandler.GetPrizeRedemptions)
			transactions.GET("/user/:id", deps.TransactionHandler.GetTransactionsByUser)
			transactions.POST("/add-points", deps.RedemptionHandler.AddPoints)
			transactions.POST("/apply-discount", deps.RedemptionHandler.ApplyDiscount)
			transactions.PUT("/:id/complete", deps.RedemptionHandler.CompleteRedemption)
			transactions.PUT("/:id/cancel", deps.RedemptionHandler.CancelRedemption)
		}
	}

	return router
}
