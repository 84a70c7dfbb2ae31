package bootstrap

import (
	"context"
	"log"

	"ai-resume-be/internal/config"
	"ai-resume-be/internal/controller"
	"ai-resume-be/internal/handler"
	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/internal/pkg/mailer"
	"ai-resume-be/internal/repository/implementation"
	"ai-resume-be/internal/repository/unitofwork"
	"ai-resume-be/internal/service"
	"ai-resume-be/internal/websocket"
	"ai-resume-be/pkg/ai/factory"

	pktNats "ai-resume-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	UserController     controller.IUserController
	ResumeController   controller.IResumeController
	TemplateController controller.ITemplateController
	PaymentController  controller.IPaymentController
	PlanController     controller.PlanController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared logger, also installed as the fiber error handler sink
	Logger logger.ILogger

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. AI Enhancer (primary + optional fallback provider)
	primary := factory.ProviderConfig{
		Type:          cfg.Ai.Provider,
		Model:         cfg.Ai.Model,
		APIKey:        cfg.Ai.GroqAPIKey,
		BaseURL:       cfg.Ai.OllamaBaseURL,
		RetryAttempts: cfg.Ai.RetryAttempts,
	}
	var fallback *factory.ProviderConfig
	if cfg.Ai.FallbackProvider != "" {
		fallback = &factory.ProviderConfig{
			Type:          cfg.Ai.FallbackProvider,
			Model:         cfg.Ai.FallbackModel,
			APIKey:        cfg.Ai.GroqAPIKey,
			BaseURL:       cfg.Ai.OllamaBaseURL,
			RetryAttempts: cfg.Ai.RetryAttempts,
		}
	}
	enhancer, err := factory.NewEnhancer(primary, fallback)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize AI enhancer: %v", err)
	}
	log.Printf("[INFO] Using AI Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 4. Services
	quotaService := service.NewQuotaService(uowFactory, sysLogger)
	planService := service.NewPlanService(uowFactory, quotaService)
	templateService := service.NewTemplateService(uowFactory, planService)

	resumeChatService := service.NewResumeChatService(
		uowFactory,
		enhancer,
		quotaService,
		pubSub,
		cfg.Topics.EnhancementCompleted,
		sysLogger,
	)
	masterResumeService := service.NewMasterResumeService(uowFactory, enhancer, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.EnhancementCompleted,
		uowFactory,
		natsPub,
	)

	userService := service.NewUserService(uowFactory, natsPub)
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)
	paymentService := service.NewPaymentService(uowFactory, emailService, natsPub)

	// 5. Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		AuthController:      controller.NewAuthController(authService),
		OAuthController:     controller.NewOAuthController(oauthService),
		UserController:      controller.NewUserController(userService),
		ResumeController:    controller.NewResumeController(resumeChatService, masterResumeService),
		TemplateController:  controller.NewTemplateController(templateService),
		PaymentController:   controller.NewPaymentController(paymentService),
		PlanController:      controller.NewPlanController(planService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
