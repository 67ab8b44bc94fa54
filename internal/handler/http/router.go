package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	tollbooth_gin "github.com/didip/tollbooth_gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomokihara/snapfeed/internal/handler/http/middleware"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

type Router struct {
	userHandler        *UserHandler
	postHandler        *PostHandler
	interactionHandler *InteractionHandler
	userUsecase        usecasecontract.IUserUseCase
}

func NewRouter(userUsecase usecasecontract.IUserUseCase, postUsecase usecasecontract.IPostUseCase, interactionUsecase usecasecontract.IInteractionUseCase) *Router {
	return &Router{
		userHandler:        NewUserHandler(userUsecase),
		postHandler:        NewPostHandler(postUsecase),
		interactionHandler: NewInteractionHandler(interactionUsecase),
		userUsecase:        userUsecase,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(tollbooth_gin.LimitHandler(lmt))
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.userHandler.CreateUser)
		auth.POST("/login", r.userHandler.Login)
		auth.POST("/refresh", r.userHandler.RefreshToken)
		auth.POST("/logout", r.userHandler.Logout)
	}

	// Public reads; a bearer token, when present, personalizes liked_by_me.
	public := v1.Group("/")
	public.Use(middleware.OptionalAuth(r.userUsecase))
	{
		public.GET("/posts", r.postHandler.GetTimeline)
		public.GET("/posts/:postID", r.postHandler.GetPost)
		public.GET("/posts/:postID/likes", r.interactionHandler.GetLikes)
		public.GET("/posts/:postID/comments", r.interactionHandler.GetComments)
		public.GET("/users/:id", r.userHandler.GetUser)
		public.GET("/users/:id/posts", r.postHandler.GetUserPosts)
	}

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(r.userUsecase))
	{
		protected.POST("/auth/logout-all", r.userHandler.LogoutAll)

		protected.GET("/me", r.userHandler.GetCurrentUser)
		protected.PUT("/users/:id", r.userHandler.UpdateProfile)

		protected.POST("/images/upload-url", r.postHandler.PresignUpload)

		protected.POST("/posts", r.postHandler.CreatePost)
		protected.DELETE("/posts/:postID", r.postHandler.DeletePost)

		protected.POST("/posts/:postID/like", r.interactionHandler.ToggleLike)
		protected.GET("/posts/:postID/like-status", r.interactionHandler.GetLikeStatus)
		protected.POST("/posts/:postID/comments", r.interactionHandler.AddComment)
		protected.DELETE("/posts/:postID/comments/:commentID", r.interactionHandler.DeleteComment)
	}
}
