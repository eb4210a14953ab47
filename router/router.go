package router

import (
	"fmt"
	"time"

	"portfolio-api/handlers"
	"portfolio-api/helper"
	"portfolio-api/middleware"
	"portfolio-api/models"
	"portfolio-api/proxy"
	"portfolio-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the services and settings the HTTP layer is built from.
type Deps struct {
	Blogs         services.BlogService
	Revisions     services.RevisionService
	Categories    services.CategoryService
	Interactions  services.InteractionService
	Users         services.UserService
	Notifications services.NotificationService
	Reports       services.ReportService

	DB           handlers.Pinger
	JWTKey       []byte
	AllowOrigins []string
	// Proxy is optional; /api/proxy is only mounted when set.
	Proxy *proxy.Balancer
}

func Setup(deps Deps) *gin.Engine {
	h := helper.NewHTTPHelper()
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, rec interface{}) {
		h.SendError(c, models.ErrorInternalServer{Message: fmt.Sprintf("panic: %v", rec)}, "Internal server error")
	}), middleware.RequestLogger())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if allowsAll(deps.AllowOrigins) {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = deps.AllowOrigins
	}
	router.Use(cors.New(corsConfig))

	blogHandler := handlers.NewBlogHandler(deps.Blogs, h)
	revisionHandler := handlers.NewRevisionHandler(deps.Revisions, h)
	categoryHandler := handlers.NewCategoryHandler(deps.Categories, h)
	interactionHandler := handlers.NewInteractionHandler(deps.Interactions, h)
	userHandler := handlers.NewUserHandler(deps.Users, h)
	notificationHandler := handlers.NewNotificationHandler(deps.Notifications, h)
	reportHandler := handlers.NewReportHandler(deps.Reports, h)
	healthHandler := handlers.NewHealthHandler(deps.DB, h)

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api")
	api.Use(middleware.Authenticate(h, deps.JWTKey))
	admin := middleware.RequireRole(h, models.RoleAdmin)
	{
		blogs := api.Group("/blogs")
		{
			blogs.GET("", blogHandler.GetBlogs)
			blogs.POST("", blogHandler.CreateBlog)
			blogs.GET("/stats", blogHandler.GetStats)
			blogs.GET("/:id", blogHandler.GetBlog)
			blogs.PATCH("/:id", blogHandler.UpdateBlog)
			blogs.DELETE("/:id", blogHandler.DeleteBlog)

			blogs.GET("/:id/categories", categoryHandler.GetBlogCategories)
			blogs.POST("/:id/categories", categoryHandler.AssignCategory)
			blogs.DELETE("/:id/categories/:categoryId", categoryHandler.UnassignCategory)

			blogs.GET("/:id/revisions", revisionHandler.GetRevisions)
			blogs.POST("/:id/revisions", revisionHandler.CreateRevision)
			blogs.GET("/:id/revisions/:version", revisionHandler.GetRevision)

			blogs.GET("/:id/comments", interactionHandler.GetComments)
			blogs.POST("/:id/comments", interactionHandler.AddComment)
			blogs.GET("/:id/likes", interactionHandler.GetLikes)
			blogs.POST("/:id/like", interactionHandler.Like)
			blogs.POST("/:id/unlike", interactionHandler.Unlike)
			blogs.DELETE("/:id/unlike", interactionHandler.Unlike)
			blogs.POST("/:id/bookmark", interactionHandler.Bookmark)
			blogs.POST("/:id/unbookmark", interactionHandler.Unbookmark)
			blogs.DELETE("/:id/unbookmark", interactionHandler.Unbookmark)
			blogs.GET("/:id/views", interactionHandler.GetViews)
			blogs.POST("/:id/views", interactionHandler.RecordView)
			blogs.POST("/:id/history", interactionHandler.AddBlogHistory)
		}

		comments := api.Group("/comments")
		{
			comments.PATCH("/:id", interactionHandler.UpdateComment)
			comments.DELETE("/:id", interactionHandler.DeleteComment)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.PATCH("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		history := api.Group("/history")
		{
			history.GET("", interactionHandler.GetHistory)
			history.POST("", interactionHandler.AddHistory)
			history.DELETE("", interactionHandler.DeleteHistory)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateProfile)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/blogs", userHandler.GetUserBlogs)
			users.GET("/:id/bookmarks", userHandler.GetBookmarks)
			users.GET("/:id/history", userHandler.GetHistory)
			users.POST("/:id/follow", userHandler.Follow)
			users.DELETE("/:id/follow", userHandler.Unfollow)
			users.POST("/:id/unfollow", userHandler.Unfollow)
			users.DELETE("/:id/unfollow", userHandler.Unfollow)
			users.GET("/:id/following", userHandler.GetFollowing)
			users.GET("/:id/followers", userHandler.GetFollowers)
			users.GET("/:id/notifications", userHandler.GetNotifications)
		}

		notifications := api.Group("/notifications")
		{
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
		}

		reports := api.Group("/reports")
		{
			reports.POST("", reportHandler.CreateReport)
			reports.GET("", admin, reportHandler.GetReports)
			reports.GET("/:id", admin, reportHandler.GetReport)
			reports.PATCH("/:id/status", admin, reportHandler.UpdateStatus)
		}

		if deps.Proxy != nil {
			api.Any("/proxy/*path", deps.Proxy.Handler("path"))
		}
	}

	return router
}

func allowsAll(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
