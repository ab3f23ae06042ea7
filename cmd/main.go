package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trungnb/gigfeed/internal/api"
	"github.com/trungnb/gigfeed/internal/archive"
	"github.com/trungnb/gigfeed/internal/bot"
	"github.com/trungnb/gigfeed/internal/classify"
	"github.com/trungnb/gigfeed/internal/config"
	"github.com/trungnb/gigfeed/internal/dedup"
	"github.com/trungnb/gigfeed/internal/filter"
	"github.com/trungnb/gigfeed/internal/logger"
	"github.com/trungnb/gigfeed/internal/middleware"
	"github.com/trungnb/gigfeed/internal/moderation"
	"github.com/trungnb/gigfeed/internal/models"
	"github.com/trungnb/gigfeed/internal/pipeline"
	"github.com/trungnb/gigfeed/internal/queue"
	"github.com/trungnb/gigfeed/internal/scheduler"
	"github.com/trungnb/gigfeed/internal/source"
	"github.com/trungnb/gigfeed/internal/translate"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	})

	log := logger.Get()
	log.Info().Msg("Starting application...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seen store: Redis when configured, in-memory otherwise.
	var seen dedup.SeenStore
	if cfg.RedisURL != "" {
		redisStore, err := dedup.NewRedisStore(cfg.RedisURL, cfg.SeenTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis seen store")
		}
		seen = redisStore
		log.Info().Msg("Using Redis seen store")
	} else {
		seen = dedup.NewMemoryStore(cfg.SeenTTL)
		log.Info().Msg("Using in-memory seen store")
	}
	defer func() {
		if err := seen.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing seen store")
		}
	}()

	// Fit the classifier once at startup.
	classifier, err := classify.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fit classifier")
	}
	log.Info().Strs("labels", classifier.Labels()).Msg("Classifier fitted")

	translator := translate.NewAdapter(
		translate.NewClient(cfg.TranslateURL, cfg.TranslateTimeout),
		cfg.SourceLang, cfg.DestLang,
	)

	pendingQueue := queue.New()

	tgBot, err := bot.New(cfg.TelegramToken, cfg.AdminUserID, cfg.ChannelID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	var publisher moderation.Publisher = tgBot
	if cfg.R2Endpoint != "" && cfg.R2AccessKey != "" {
		archiver, err := archive.New(ctx, archive.Config{
			Endpoint:  cfg.R2Endpoint,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 archive")
		}
		publisher = archivingPublisher{channel: tgBot, archiver: archiver}
		log.Info().Str("bucket", cfg.R2Bucket).Msg("Archiving published posts to R2")
	}

	commands := moderation.NewHandler(pendingQueue, publisher, cfg.AdminUserID)
	tgBot.AttachCommander(commands)

	ingestor := pipeline.NewIngestor(pipeline.Deps{
		Source:       source.NewClient(cfg.SourceBaseURL, cfg.FetchTimeout),
		Seen:         seen,
		Keywords:     filter.New(cfg.Keywords),
		Classifier:   classifier,
		Translator:   translator,
		Queue:        pendingQueue,
		Notifier:     tgBot,
		Sources:      cfg.Sources,
		FetchLimit:   cfg.FetchLimit,
		BodyMaxChars: cfg.BodyMaxChars,
	})

	// Admin API
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})
	api.SetupRoutes(app, commands, cfg.AdminUserID, cfg.AdminAPIKey)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting admin API")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Admin API error")
		}
	}()

	// Inbound Telegram commands
	go tgBot.Run(ctx)

	// Ingestion schedule
	sched := scheduler.New()
	if err := sched.Every(cfg.PollInterval, func() { ingestor.Run(ctx) }); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule ingestion")
	}
	sched.Start()
	log.Info().Dur("interval", cfg.PollInterval).Msg("Ingestion scheduled")

	if cfg.RunOnStart {
		go ingestor.Run(ctx)
	}

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Scheduler forced to stop")
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Admin API forced to shutdown")
	}

	log.Info().Msg("Exited properly")
}

// archivingPublisher publishes to the channel and then archives a snapshot.
// Archive failures are logged only; the publish already succeeded.
type archivingPublisher struct {
	channel  moderation.Publisher
	archiver *archive.Archiver
}

func (p archivingPublisher) Publish(ctx context.Context, post models.PendingPost) error {
	if err := p.channel.Publish(ctx, post); err != nil {
		return err
	}
	if err := p.archiver.Store(ctx, post); err != nil {
		logger.Get().Warn().Err(err).Str("post_id", post.ID).Msg("Failed to archive published post")
	}
	return nil
}
