package app

import (
	"beyondextra_backend/docs"
	"beyondextra_backend/internal/config"
	"beyondextra_backend/internal/middleware"
	"beyondextra_backend/internal/model"
	"beyondextra_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// These endpoints live outside /api; clients call them by function name.
	router.POST("/functions/submit-quiz", middleware.AuthMiddleware(cfg), c.quiz.SubmitQuiz)
	router.POST("/functions/generate-video-quiz", middleware.AuthMiddleware(cfg), c.videoQuiz.Generate)

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// Course catalog is browseable without an account.
		public.GET("/courses", c.course.List)
		public.GET("/courses/:courseID", c.course.Detail)

		// The quiz view is already redacted, so anonymous reads are fine;
		// a valid token adds the caller's prior attempt.
		public.GET("/lessons/:lessonID/quiz", middleware.TryAuthMiddleware(cfg), c.quiz.GetLessonQuiz)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)

	rg.GET("/lessons/:lessonID", c.course.GetLesson)
	rg.GET("/quizzes/:quizID/attempt", c.quiz.GetAttempt)

	rg.POST("/courses/:courseID/enroll", c.enrollment.Enroll)
	rg.GET("/enrollments", c.enrollment.ListMine)
	rg.POST("/progress", c.enrollment.UpdateProgress)

	rg.POST("/chat/messages", c.chat.SendMessage)
	rg.GET("/chat/conversations", c.chat.ListConversations)
	rg.GET("/chat/conversations/:conversationID/messages", c.chat.ListMessages)
	rg.DELETE("/chat/conversations/:conversationID", c.chat.DeleteConversation)

	rg.POST("/voice/tts", c.voice.Synthesize)
	rg.POST("/voice/stt", c.voice.Transcribe)

	rg.GET("/youtube/playlists", c.youtube.SearchPlaylists)

	rg.GET("/gamification/stats", c.gamification.Stats)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.Create)
		instructor.PUT("/courses/:courseID", c.course.Update)
		instructor.DELETE("/courses/:courseID", c.course.Delete)
		instructor.POST("/courses/:courseID/modules", c.course.CreateModule)
		instructor.POST("/modules/:moduleID/lessons", c.course.CreateLesson)
		instructor.POST("/lessons/:lessonID/video", c.course.UploadLessonVideo)

		instructor.POST("/quizzes", c.quiz.CreateQuiz)
		instructor.DELETE("/quizzes/:quizID", c.quiz.DeleteQuiz)
	}
}
