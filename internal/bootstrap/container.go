package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"creative-eval-be/internal/config"
	"creative-eval-be/internal/controller"
	"creative-eval-be/internal/pkg/logger"
	"creative-eval-be/internal/service"
	"creative-eval-be/internal/websocket"
	"creative-eval-be/pkg/chat"
	"creative-eval-be/pkg/eval"
	"creative-eval-be/pkg/events"
	"creative-eval-be/pkg/llm"
	"creative-eval-be/pkg/llm/factory"
	pkgNats "creative-eval-be/pkg/nats"
)

type Container struct {
	// Controllers
	EvaluationController controller.IEvaluationController
	ChatController       controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	chatLogger := logger.NewIsolatedLogger(cfg.App.ChatLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var eventPublisher events.Publisher
	var natsSubscriber *pkgNats.Subscriber
	if cfg.Events.Transport == "nats" {
		natsPublisher, err := pkgNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] NATS unavailable, falling back to in-process bus: %v", err)
			eventPublisher = events.NewGoChannelPublisher(pubSub, cfg.Events.Topic)
		} else {
			log.Printf("[INFO] Using Events Transport: NATS (%s)", cfg.Events.NatsURL)
			eventPublisher = natsPublisher
			if natsSubscriber, err = pkgNats.NewSubscriber(cfg.Events.NatsURL); err != nil {
				log.Printf("[WARN] NATS subscriber unavailable: %v", err)
			}
		}
	} else {
		eventPublisher = events.NewGoChannelPublisher(pubSub, cfg.Events.Topic)
	}

	// 3. Generation stack: backend factory -> handle cache -> pipeline
	builder := factory.NewBuilder(factory.Config{
		BaseURL:       cfg.Ai.OllamaBaseURL,
		GPUBaseURL:    cfg.Ai.GPUBaseURL,
		AdapterModel:  cfg.Ai.AdapterModel,
		OpenDemoModel: cfg.Ai.OpenDemoModel,
	})
	handleCache := llm.NewHandleCache(builder)
	pipeline := chat.NewPipeline(handleCache)
	sessionStore := chat.NewSessionStore()

	defaultBackend, err := llm.ParseBackend(cfg.Ai.DefaultBackend)
	if err != nil {
		log.Printf("[WARN] Invalid DEFAULT_BACKEND %q, using open_demo", cfg.Ai.DefaultBackend)
		defaultBackend = llm.BackendOpenDemo
	}
	chatDefaults := chat.Settings{
		Backend:           defaultBackend,
		BaseModel:         cfg.Ai.DefaultBaseModel,
		Temperature:       cfg.Ai.DefaultTemperature,
		TopP:              cfg.Ai.DefaultTopP,
		RepetitionPenalty: cfg.Ai.DefaultRepetitionPenalty,
		MaxNewTokens:      cfg.Ai.DefaultMaxNewTokens,
	}

	// 4. Services
	evaluationService := service.NewEvaluationService(eval.NewRouter(), eventPublisher, sysLogger)
	chatService := service.NewChatService(sessionStore, pipeline, chatDefaults, eventPublisher, chatLogger)
	var consumerService service.IConsumerService
	if natsSubscriber != nil {
		consumerService = service.NewNatsConsumerService(natsSubscriber, sysLogger)
	} else {
		consumerService = service.NewConsumerService(pubSub, cfg.Events.Topic, sysLogger)
	}

	// 5. Controllers
	wsHandler := websocket.NewChatHandler(chatService, chatLogger)
	evaluationController := controller.NewEvaluationController(evaluationService)
	chatController := controller.NewChatController(chatService, wsHandler)

	return &Container{
		EvaluationController: evaluationController,
		ChatController:       chatController,
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
