package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"lead-engagement-be/internal/config"
	"lead-engagement-be/internal/controller"
	"lead-engagement-be/internal/handler"
	"lead-engagement-be/internal/pkg/logger"
	"lead-engagement-be/internal/pkg/mailer"
	"lead-engagement-be/internal/repository/implementation"
	"lead-engagement-be/internal/repository/memory"
	"lead-engagement-be/internal/service"
	"lead-engagement-be/internal/websocket"
	pktKafka "lead-engagement-be/pkg/kafka"
	pktNats "lead-engagement-be/pkg/nats"
	"lead-engagement-be/pkg/session"
	"lead-engagement-be/pkg/widget"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WidgetController controller.IWidgetController
	AdminController  controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	AlertService    service.IAlertService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)

	settings, err := widgetSettings(cfg.Widget)
	if err != nil {
		return nil, err
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	var (
		eventPublisher  service.EventPublisher
		eventSubscriber service.EventSubscriber
	)
	if cfg.Messaging.NatsURL == "" {
		log.Println("[INFO] NATS_URL not set, lead events stay local")
	} else if nc, err := pktNats.Connect(cfg.Messaging.NatsURL); err != nil {
		log.Printf("[WARN] NATS unavailable, lead events stay local: %v", err)
	} else {
		c.closers = append(c.closers, nc.Close)
		eventPublisher, eventSubscriber = c.natsClients(nc)
	}

	var exporter service.LeadExporter
	if len(cfg.Messaging.KafkaBrokers) > 0 {
		producer := pktKafka.NewProducer(cfg.Messaging.KafkaBrokers, cfg.Messaging.KafkaTopic)
		c.closers = append(c.closers, func() { producer.Close() })
		exporter = producer
		log.Printf("[INFO] Exporting lead signals to Kafka topic %s", cfg.Messaging.KafkaTopic)
	}

	rdb := newRedisClient(cfg.Messaging.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// 4. Sessions & WebSocket Hub
	sessionRepo := memory.NewSessionRepository(cfg.Widget.SessionTTL)
	sessionManager := session.NewManager(sessionRepo)

	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)
	sessionRepo.OnEvicted(c.WebSocketHub.Disconnect)

	// 5. Services
	leadRepo := implementation.NewLeadSignalRepository(db)

	publisherService := service.NewPublisherService(pubSub)
	widgetService := service.NewWidgetService(settings, sessionManager, c.WebSocketHub, publisherService, sysLogger)
	c.WebSocketHub.SetCommandHandler(widgetService)

	c.ConsumerService = service.NewConsumerService(pubSub, service.LeadSignalTopic, leadRepo, eventPublisher, exporter, sysLogger)
	if eventSubscriber != nil {
		c.AlertService = service.NewAlertService(eventSubscriber, emailService, cfg.SMTP.AlertEmail, sysLogger)
	}
	adminService := service.NewAdminService(cfg.Keys.AdminPasswordHash, cfg.Keys.JWTSecret, leadRepo, sysLogger)

	// 6. Handlers & Controllers
	wsHandler := handler.NewWidgetSocketHandler(widgetService, c.WebSocketHub, wsLogger)
	c.WidgetController = controller.NewWidgetController(widgetService, wsHandler.ServeWs)
	c.AdminController = controller.NewAdminController(adminService, cfg.Keys.JWTSecret)

	return c, nil
}

// Start runs the hub and the background consumers until ctx ends.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start lead signal consumer: %w", err)
	}
	if c.AlertService != nil {
		if err := c.AlertService.Start(ctx); err != nil {
			c.Logger.Error("Bootstrap", "Hot lead alerts disabled", map[string]interface{}{"error": err})
		}
	}
	return nil
}

// Close releases broker connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func (c *Container) natsClients(nc *nats.Conn) (service.EventPublisher, service.EventSubscriber) {
	var (
		pub service.EventPublisher
		sub service.EventSubscriber
	)
	if p, err := pktNats.NewPublisher(nc); err != nil {
		log.Printf("[WARN] Failed to create NATS publisher: %v", err)
	} else {
		pub = p
	}
	if s, err := pktNats.NewSubscriber(nc); err != nil {
		log.Printf("[WARN] Failed to create NATS subscriber: %v", err)
	} else {
		c.closers = append(c.closers, s.Stop)
		sub = s
	}
	return pub, sub
}

// newRedisClient returns nil when Redis is not configured or not reachable.
func newRedisClient(url string) *redis.Client {
	if url == "" {
		log.Println("[INFO] REDIS_URL not set, WebSocket fan-out is local only")
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Redis unavailable, WebSocket fan-out is local only: %v", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func widgetSettings(cfg config.WidgetConfig) (service.WidgetSettings, error) {
	mode, err := widget.ParseScoringMode(cfg.ScoringMode)
	if err != nil {
		return service.WidgetSettings{}, err
	}

	catalog := widget.DefaultCatalog()
	if cfg.ContentFile != "" {
		if catalog, err = widget.LoadCatalog(cfg.ContentFile); err != nil {
			return service.WidgetSettings{}, err
		}
		log.Printf("[INFO] Widget content loaded from %s", cfg.ContentFile)
	}

	return service.WidgetSettings{
		Catalog:     catalog,
		ScoringMode: mode,
		Delay:       widget.RandomDelay(cfg.HotDelay, cfg.MinDelay, cfg.MaxDelay),
	}, nil
}
