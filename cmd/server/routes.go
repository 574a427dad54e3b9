package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"plateshare.backend/internal/interfaces/http/handlers"
	"plateshare.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	postHandler    *handlers.PostHandler
	ratingHandler  *handlers.RatingHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/verify-registration", d.authHandler.VerifyRegistration)
			auth.POST("/request-login", d.authHandler.RequestLogin)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/request-verification", d.authHandler.RequestVerification)
			auth.POST("/check-verification", d.authHandler.CheckVerification)
			auth.POST("/register-verified", d.authHandler.RegisterVerified)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Post routes (reads public, mutations protected)
		posts := v1.Group("/posts")
		{
			posts.GET("", d.postHandler.ListPosts)
			posts.GET("/:id", d.postHandler.GetPost)
			posts.POST("", d.authMiddleware, d.postHandler.CreatePost)
			posts.DELETE("/:id", d.authMiddleware, d.postHandler.DeletePost)
			posts.POST("/:id/claim", d.authMiddleware, d.postHandler.ClaimPost)
			posts.POST("/:id/fulfill", d.authMiddleware, d.postHandler.FulfillPost)
			posts.POST("/:id/pickup", d.authMiddleware, d.postHandler.MarkPickedUp)
			posts.POST("/:id/complete", d.authMiddleware, d.postHandler.MarkCompleted)
		}

		// Rating routes
		v1.POST("/ratings", d.authMiddleware, d.ratingHandler.CreateRating)
		v1.GET("/users/:id/ratings", d.ratingHandler.ListUserRatings)
	}
}
