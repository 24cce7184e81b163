package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/louisuxu-sys/BC-LINE/bot"
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/database"
	"github.com/louisuxu-sys/BC-LINE/discord"
	"github.com/louisuxu-sys/BC-LINE/events"
	"github.com/louisuxu-sys/BC-LINE/infrastructure"
	"github.com/louisuxu-sys/BC-LINE/line"
	"github.com/louisuxu-sys/BC-LINE/repository"
	"github.com/louisuxu-sys/BC-LINE/service"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SessionCleanupInterval is how often idle conversations are swept
const SessionCleanupInterval = 5 * time.Minute

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.ConfigureLogging()

	log.WithField("environment", cfg.Environment).Info("Starting BC-LINE bot")

	catalog, err := config.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	eventBus := events.NewBus()

	if cfg.NATSEnabled() {
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsClient.Close()
		infrastructure.NewNATSEventPublisher(natsClient).Attach(eventBus)
		log.WithField("servers", cfg.NATSServers).Info("NATS event bridge attached")
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	historyRepo := repository.NewRoomHistoryRepository()

	bankrollService := service.NewBankrollService(eventBus)
	predictionService := service.NewPredictionService(historyRepo, bankrollService, eventBus, cfg.HistoryLimit)
	accessService := service.NewAccessService(uowFactory, cfg.AdminUserIDs)
	slotService := service.NewSlotService()

	chatBot := bot.New(catalog, bot.NewSessionStore(cfg.SessionTTL), predictionService, accessService, slotService)

	g, gctx := errgroup.WithContext(ctx)

	stopCleanup := chatBot.StartSessionCleanupWorker(gctx, SessionCleanupInterval)
	defer stopCleanup()

	if cfg.LineEnabled() {
		server := line.NewServer(
			cfg.LineChannelSecret,
			chatBot,
			line.NewRenderer(catalog),
			line.NewReplyClient(cfg.LineAccessToken),
		)
		g.Go(func() error {
			return server.ListenAndServe(gctx, cfg.HTTPAddr)
		})
	}

	if cfg.DiscordEnabled() {
		frontend, err := discord.New(cfg.DiscordToken, chatBot, discord.NewRenderer(catalog, discord.NewRoadImageGenerator()))
		if err != nil {
			return fmt.Errorf("failed to initialize Discord frontend: %w", err)
		}
		g.Go(func() error {
			return frontend.Run(gctx)
		})
	}

	log.WithFields(log.Fields{
		"line":    cfg.LineEnabled(),
		"discord": cfg.DiscordEnabled(),
		"nats":    cfg.NATSEnabled(),
	}).Info("Bot is running")

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Shutdown completed")
	return nil
}
