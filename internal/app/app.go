package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qr_quiz_backend/internal/config"
	"qr_quiz_backend/internal/controller"
	"qr_quiz_backend/internal/repository"
	"qr_quiz_backend/internal/service"
	"qr_quiz_backend/pkg/database"
	"qr_quiz_backend/pkg/logger"
	"qr_quiz_backend/pkg/monitoring"
	"qr_quiz_backend/pkg/security"
	"qr_quiz_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user      *repository.UserRepository
	anonymous *repository.AnonymousStudentRepository
	quiz      *repository.QuizRepository
	question  *repository.QuestionRepository
	qrCode    *repository.QrCodeRepository
	attempt   *repository.AttemptRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	user        *service.UserService
	quiz        *service.QuizService
	qrCode      *service.QrCodeService
	scan        *service.ScanService
	participant *service.ParticipantService
	leaderboard *service.LeaderboardService
	export      *service.ExportService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	quiz        *controller.QuizController
	qrCode      *controller.QrCodeController
	scan        *controller.ScanController
	leaderboard *controller.LeaderboardController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		anonymous: repository.NewAnonymousStudentRepository(db),
		quiz:      repository.NewQuizRepository(db),
		question:  repository.NewQuestionRepository(db),
		qrCode:    repository.NewQrCodeRepository(db),
		attempt:   repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.attempt, s.storage)
	s.quiz = service.NewQuizService(repos.quiz, repos.question)
	s.qrCode = service.NewQrCodeService(repos.qrCode, repos.quiz, repos.question, repos.attempt)
	s.scan = service.NewScanService(repos.qrCode, repos.quiz, repos.question, repos.attempt, repos.anonymous)
	s.participant = service.NewParticipantService(repos.anonymous, repos.attempt)
	s.leaderboard = service.NewLeaderboardService(repos.anonymous, repos.user, repos.attempt, rdb, cfg)
	s.export = service.NewExportService(repos.qrCode, repos.quiz, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		quiz:        controller.NewQuizController(s.quiz),
		qrCode:      controller.NewQrCodeController(s.qrCode, s.export),
		scan:        controller.NewScanController(s.scan, s.participant, s.leaderboard),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("qr-quiz-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
