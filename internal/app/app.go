package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edu_assessment_backend/internal/config"
	"edu_assessment_backend/internal/controller"
	"edu_assessment_backend/internal/grading"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/service"
	"edu_assessment_backend/pkg/configwatcher"
	"edu_assessment_backend/pkg/database"
	"edu_assessment_backend/pkg/logger"
	"edu_assessment_backend/pkg/monitoring"
	"edu_assessment_backend/pkg/security"
	"edu_assessment_backend/pkg/tracing"

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
	user       *repository.UserRepository
	lookup     *repository.LookupRepository
	assessment *repository.AssessmentRepository
	set        *repository.QuestionSetRepository
	question   *repository.QuestionRepository
	access     *repository.AccessRepository
	session    *repository.SessionRepository
	attempt    *repository.AttemptRepository
	answer     *repository.AnswerRepository
	attachment *repository.AttachmentRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	assessment *service.AssessmentService
	set        *service.QuestionSetService
	question   *service.QuestionService
	access     *service.AccessService
	attempt    *service.AttemptService
	answer     *service.AnswerService
	analytics  *service.AnalyticsService
	storage    *service.StorageService
	attachment *service.AttachmentService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	assessment *controller.AssessmentController
	set        *controller.QuestionSetController
	question   *controller.QuestionController
	access     *controller.AccessController
	attempt    *controller.AttemptController
	answer     *controller.AnswerController
	analytics  *controller.AnalyticsController
	attachment *controller.AttachmentController
	lookup     *controller.LookupController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		lookup:     repository.NewLookupRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		set:        repository.NewQuestionSetRepository(db),
		question:   repository.NewQuestionRepository(db),
		access:     repository.NewAccessRepository(db),
		session:    repository.NewSessionRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		answer:     repository.NewAnswerRepository(db),
		attachment: repository.NewAttachmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.set)
	s.set = service.NewQuestionSetService(repos.assessment, repos.set, repos.question)
	s.question = service.NewQuestionService(repos.assessment, repos.set, repos.question, db)
	s.access = service.NewAccessService(repos.user, repos.assessment, repos.set, repos.access)
	vizCache := service.NewVizCache(rdb)
	s.attempt = service.NewAttemptService(repos.session, repos.access, repos.attempt, repos.set, vizCache)
	s.answer = service.NewAnswerService(repos.attempt, repos.question, repos.answer, repos.set, grading.NewEngine(), vizCache)
	s.analytics = service.NewAnalyticsService(
		repos.user, repos.assessment, repos.set, repos.question,
		repos.access, repos.attempt, repos.answer, vizCache,
	)
	s.attachment = service.NewAttachmentService(repos.attachment, repos.question, repos.set, repos.assessment, s.storage)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		assessment: controller.NewAssessmentController(s.assessment),
		set:        controller.NewQuestionSetController(s.set),
		question:   controller.NewQuestionController(s.question),
		access:     controller.NewAccessController(s.access),
		attempt:    controller.NewAttemptController(s.attempt),
		answer:     controller.NewAnswerController(s.answer),
		analytics:  controller.NewAnalyticsController(s.analytics),
		attachment: controller.NewAttachmentController(s.attachment),
		lookup:     controller.NewLookupController(repos.lookup),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window == 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

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
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("assessment-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// Hot-reload the mutable parts of the config; connection settings need a
	// restart.
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		cfg.JWT = newCfg.JWT
		cfg.CORS = newCfg.CORS
		cfg.RateLimit = newCfg.RateLimit
		logger.Log.Info("configuration reloaded")
	})

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
