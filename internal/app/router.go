package app

import (
	"qr_quiz_backend/docs"
	"qr_quiz_backend/internal/config"
	"qr_quiz_backend/internal/middleware"
	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c, cfg)
	a.registerCreatorRoutes(router, c, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

// registerPublicRoutes is the participant surface reached by scanning a
// printed code. Auth is optional: a token credits the attempt to the user.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.POST("/participants", c.scan.Join)
		public.GET("/participants/:id", c.scan.GetParticipant)
		public.GET("/participants/:id/attempts", c.scan.ParticipantAttempts)
		public.GET("/leaderboard", c.leaderboard.Top)

		scan := public.Group("/scan")
		scan.Use(middleware.TryAuthMiddleware(cfg))
		{
			scan.GET("/:id", c.scan.Resolve)
			scan.POST("/:id/submit", c.scan.Submit)
		}
	}
}

func (a *App) registerCreatorRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/users/me", c.user.GetProfile)
		authGroup.PUT("/users/me", c.user.UpdateProfile)
		authGroup.POST("/users/me/avatar", c.user.UploadAvatar)
		authGroup.GET("/users/me/attempts", c.user.ListAttempts)

		creator := authGroup.Group("")
		creator.Use(middleware.RoleMiddleware(model.Creator, model.Admin))
		{
			creator.POST("/quizzes", c.quiz.CreateQuiz)
			creator.GET("/quizzes", c.quiz.ListQuizzes)
			creator.GET("/quizzes/:id", c.quiz.GetQuiz)
			creator.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
			creator.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
			creator.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
			creator.GET("/quizzes/:id/qr-sheet", c.qrCode.ExportQuizSheet)
			creator.PUT("/questions/:id", c.quiz.UpdateQuestion)
			creator.DELETE("/questions/:id", c.quiz.DeleteQuestion)

			creator.POST("/qrcodes", c.qrCode.CreateQrCode)
			creator.GET("/qrcodes", c.qrCode.ListQrCodes)
			creator.GET("/qrcodes/:id", c.qrCode.GetQrCode)
			creator.PUT("/qrcodes/:id", c.qrCode.UpdateQrCode)
			creator.DELETE("/qrcodes/:id", c.qrCode.DeleteQrCode)
			creator.POST("/qrcodes/:id/assign", c.qrCode.Assign)
			creator.POST("/qrcodes/:id/schedule", c.qrCode.Schedule)
			creator.GET("/qrcodes/:id/image", c.qrCode.ExportImage)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/role", c.user.ChangeRole)
		admin.DELETE("/users/:id", c.user.DeleteUser)
	}
}
