package app

import (
	"beyondextra_backend/internal/config"
	"beyondextra_backend/internal/controller"
	"beyondextra_backend/internal/repository"
	"beyondextra_backend/internal/service"
	"beyondextra_backend/pkg/database"
	"beyondextra_backend/pkg/logger"
	"beyondextra_backend/pkg/monitoring"
	"beyondextra_backend/pkg/security"
	"beyondextra_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	user       *repository.UserRepository
	quiz       *repository.QuizRepository
	course     *repository.CourseRepository
	enrollment *repository.EnrollmentRepository
	chat       *repository.ChatRepository
}

type services struct {
	auth          *service.AuthService
	storage       *service.StorageService
	quiz          *service.QuizService
	quizAuthoring *service.QuizAuthoringService
	course        *service.CourseService
	enrollment    *service.EnrollmentService
	chat          *service.ChatService
	voice         *service.VoiceService
	youtube       *service.YouTubeService
	videoQuiz     *service.VideoQuizService
	gamification  *service.GamificationService
}

type controllers struct {
	auth         *controller.AuthController
	quiz         *controller.QuizController
	course       *controller.CourseController
	enrollment   *controller.EnrollmentController
	chat         *controller.ChatController
	voice        *controller.VoiceController
	youtube      *controller.YouTubeController
	videoQuiz    *controller.VideoQuizController
	gamification *controller.GamificationController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		quiz:       repository.NewQuizRepository(db),
		course:     repository.NewCourseRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		chat:       repository.NewChatRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.quiz = service.NewQuizService(repos.quiz)
	s.quizAuthoring = service.NewQuizAuthoringService(repos.quiz)
	s.course = service.NewCourseService(repos.course, s.storage)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course)
	s.chat = service.NewChatService(repos.chat, cfg.AI)
	s.voice = service.NewVoiceService(cfg.Voice)
	s.youtube = service.NewYouTubeService(cfg.YouTube, rdb)
	s.videoQuiz = service.NewVideoQuizService(cfg.AI)
	s.gamification = service.NewGamificationService(repos.quiz, repos.enrollment)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		quiz:         controller.NewQuizController(s.quiz, s.quizAuthoring),
		course:       controller.NewCourseController(s.course),
		enrollment:   controller.NewEnrollmentController(s.enrollment),
		chat:         controller.NewChatController(s.chat),
		voice:        controller.NewVoiceController(s.voice),
		youtube:      controller.NewYouTubeController(s.youtube),
		videoQuiz:    controller.NewVideoQuizController(s.videoQuiz),
		gamification: controller.NewGamificationController(s.gamification),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, playlist caching disabled", zap.Error(err))
		rdb = nil
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
		tp, err := tracing.InitTracer("beyondextra", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
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

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
