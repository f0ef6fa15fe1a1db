package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskdeck-dev/taskdeck/internal/handlers"
	"github.com/taskdeck-dev/taskdeck/internal/middleware"
	"github.com/taskdeck-dev/taskdeck/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTracker())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.ProjectFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.POST("/refresh-token", middleware.RefreshMiddleware(), handlers.RefreshToken)
		}

		user := api.Group("/user", middleware.AuthMiddleware())
		{
			user.GET("/profile", handlers.GetProfile)
			user.PATCH("/profile", handlers.UpdateProfile)

			user.POST("/add-member", middleware.AdminMiddleware(), handlers.AddMember)
			user.POST("/add-member-bulk", middleware.AdminMiddleware(), handlers.AddBulkMembers)
			user.GET("/members", middleware.AdminMiddleware(), handlers.MemberList)
			user.DELETE("/members", middleware.AdminMiddleware(), handlers.RemoveMembers)
			user.PATCH("/members/:id", middleware.AdminMiddleware(), handlers.UpdateMember)
			user.GET("/show-password/:id", middleware.AdminMiddleware(), handlers.ShowPassword)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", middleware.AdminMiddleware(), handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:id", handlers.GetProject)
			projects.PUT("/:id", middleware.AdminMiddleware(), handlers.UpdateProject)
			projects.DELETE("/:id", middleware.AdminMiddleware(), handlers.DeleteProject)

			projects.POST("/members", middleware.AdminMiddleware(), handlers.AddProjectMembers)
			projects.GET("/members/list", handlers.ProjectMemberList)

			projects.POST("/tasks", handlers.AddTask)
			projects.GET("/:id/tasks", handlers.ListTasks)
			projects.PUT("/:id/tasks", handlers.UpdateTask)

			projects.GET("/tasks/:id", handlers.TaskDetails)
			projects.GET("/labels/list", handlers.LabelList)
			projects.GET("/activity/:id", handlers.ActivityList)

			projects.POST("/comments/add", handlers.AddComment)
			projects.GET("/comments/:id", handlers.CommentList)
			projects.PUT("/comments/:id", handlers.UpdateComment)
			projects.DELETE("/comments/:id", handlers.DeleteComment)
			projects.POST("/comments/reaction", handlers.ReactionToggle)
			projects.GET("/comments/reaction/:id", handlers.ReactionList)
		}

		dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
		{
			dashboard.GET("/overview", handlers.DashboardOverview)
			dashboard.GET("/overview/project", handlers.DashboardProjects)
			dashboard.GET("/overview/task", handlers.DashboardTasks)
			dashboard.GET("/overview/member", handlers.DashboardMembers)
			dashboard.GET("/overview/activity", handlers.DashboardActivity)
			dashboard.GET("/overview/chart", handlers.DashboardChart)
		}
	}

	return r
}
