package server

import (
	"github.com/gin-gonic/gin"

	auctionhandler "snapbid/services/auction/handler"
	ledgerhandler "snapbid/services/ledger/handler"
	notificationhandler "snapbid/services/notification/handler"
	socialhandler "snapbid/services/social/handler"
)

// Handlers groups the request handlers the router mounts
type Handlers struct {
	Auction      *auctionhandler.AuctionHandler
	Ledger       *ledgerhandler.LedgerHandler
	Image        *socialhandler.ImageHandler
	Comment      *socialhandler.CommentHandler
	Follow       *socialhandler.FollowHandler
	Board        *socialhandler.BoardHandler
	User         *socialhandler.UserHandler
	Notification *notificationhandler.NotificationHandler
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(h Handlers, jwtSecret string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(AuthMiddleware(jwtSecret))

	bids := router.Group("/bids")
	{
		bids.POST("", h.Auction.PlaceBidHandler)
		bids.GET("/mine", h.Auction.GetMyBidsHandler)
		bids.GET("/uploads", h.Auction.GetUploadBidsHandler)
	}

	images := router.Group("/images")
	{
		images.POST("", h.Image.CreateImageHandler)
		images.GET("", h.Image.ListImagesHandler)
		images.GET("/liked", h.Image.ListLikedImagesHandler)
		images.GET("/:image_id", h.Image.GetImageHandler)
		images.DELETE("/:image_id", h.Image.DeleteImageHandler)
		images.POST("/:image_id/like", h.Image.ToggleLikeHandler)
		images.GET("/:image_id/bids", h.Auction.GetBidsByImageHandler)
		images.GET("/:image_id/winning", h.Auction.GetWinningBidHandler)
		images.GET("/:image_id/comments", h.Comment.GetCommentsByImageHandler)
	}

	balance := router.Group("/balance")
	{
		balance.GET("", h.Ledger.GetBalanceHandler)
		balance.GET("/all", h.Ledger.ListBalancesHandler)
		balance.POST("/deposit", h.Ledger.DepositHandler)
		balance.POST("/withdraw", h.Ledger.WithdrawHandler)
	}

	payments := router.Group("/payments")
	{
		payments.POST("/initiate", h.Ledger.InitiatePaymentHandler)
		payments.POST("/complete", h.Ledger.CompletePaymentHandler)
	}

	notifications := router.Group("/notifications")
	{
		notifications.GET("", h.Notification.ListNotificationsHandler)
		notifications.PATCH("/read-all", h.Notification.MarkAllReadHandler)
		notifications.PATCH("/:id/read", h.Notification.MarkReadHandler)
		notifications.DELETE("/:id", h.Notification.DeleteNotificationHandler)
	}

	comments := router.Group("/comments")
	{
		comments.POST("", h.Comment.AddCommentHandler)
		comments.DELETE("/:id", h.Comment.DeleteCommentHandler)
	}

	follows := router.Group("/follows")
	{
		follows.GET("/followers", h.Follow.ListFollowersHandler)
		follows.GET("/following", h.Follow.ListFollowingHandler)
		follows.POST("/:user_id", h.Follow.FollowUserHandler)
		follows.DELETE("/:user_id", h.Follow.UnfollowUserHandler)
	}

	boards := router.Group("/boards")
	{
		boards.POST("", h.Board.CreateBoardHandler)
		boards.GET("", h.Board.ListBoardsHandler)
		boards.POST("/:id/images", h.Board.AddBoardImageHandler)
		boards.DELETE("/:id/images/:image_id", h.Board.RemoveBoardImageHandler)
		boards.DELETE("/:id", h.Board.DeleteBoardHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/me", h.User.GetProfileHandler)
		users.PATCH("/me", h.User.UpdateProfileHandler)
	}

	return router
}
