package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg, repos)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config, repos *repositories) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// catalogue browsing works for guests; logged-in users see more
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.List)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.Get)
		public.GET("/modules", middleware.TryAuthMiddleware(cfg), c.module.List)
		public.GET("/modules/:id", middleware.TryAuthMiddleware(cfg), c.module.Get)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.GET("/users/profile", c.user.GetProfile)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.GET("/users/dashboard", c.user.Dashboard)

	rg.GET("/courses/my", c.course.MyCourses)
	rg.POST("/courses/:id/enroll", c.course.Enroll)
	rg.DELETE("/courses/:id/enroll", c.course.Drop)

	// the live module viewer
	session := rg.Group("/modules/:id/session")
	{
		session.POST("", c.viewer.Open)
		session.GET("", c.viewer.State)
		session.DELETE("", c.viewer.Close)

		session.POST("/advance", c.viewer.Advance)
		session.POST("/retreat", c.viewer.Retreat)
		session.POST("/jump", c.viewer.Jump)
		session.POST("/bookmark", c.viewer.ToggleBookmark)
		session.POST("/objective", c.viewer.ToggleObjective)
		session.POST("/play", c.viewer.Play)
		session.POST("/pause", c.viewer.Pause)
		session.GET("/summary", c.viewer.Summary)

		session.GET("/notes", c.viewer.SearchNotes)
		session.POST("/notes", c.viewer.AddNote)
		session.PUT("/notes/:noteId", c.viewer.EditNote)
		session.DELETE("/notes/:noteId", c.viewer.DeleteNote)

		session.GET("/resources", c.viewer.Resources)

		session.POST("/quiz", c.viewer.StartQuiz)
		session.GET("/quiz", c.viewer.QuizStatus)
		session.POST("/quiz/answer", c.viewer.AnswerQuiz)
		session.POST("/quiz/next", c.viewer.NextQuestion)
		session.POST("/quiz/previous", c.viewer.PreviousQuestion)
		session.POST("/quiz/submit", c.viewer.SubmitQuiz)
		session.POST("/quiz/retry", c.viewer.RetryQuiz)
		session.GET("/quiz/history", c.viewer.QuizHistory)
	}
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.Create)
		instructor.PUT("/courses/:id", c.course.Update)
		instructor.DELETE("/courses/:id", c.course.Delete)
		instructor.GET("/courses/teaching", c.course.TaughtCourses)

		instructor.POST("/modules", c.module.Create)
		instructor.PUT("/modules/:id", c.module.Update)
		instructor.DELETE("/modules/:id", c.module.Delete)
		instructor.PUT("/modules/:id/publish", c.module.Publish)
		instructor.POST("/modules/:id/thumbnail", c.module.UploadThumbnail)
		instructor.POST("/modules/:id/resources", c.module.UploadResource)
	}
}
