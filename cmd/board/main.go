package main

import (
	"context"
	"errors"

	"roomgrid/internal/board/handler"
	"roomgrid/internal/board/service"
	bookingrepo "roomgrid/internal/bookings/repository"
	bookingservice "roomgrid/internal/bookings/service"
	"roomgrid/internal/bookings/validator"
	"roomgrid/internal/realtime"
	roomrepo "roomgrid/internal/rooms/repository"
	roomservice "roomgrid/internal/rooms/service"
	"roomgrid/internal/snapshot"
	"roomgrid/pkg/app"
	"roomgrid/pkg/config"
	kafka_config "roomgrid/pkg/kafka/config"
)

const ServiceName = "board"

const pruneSchedule = "@every 10m"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Board service")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := initStore(cfg)
	if err := store.RefreshFrom(ctx, snapshot.SourceStartup); err != nil {
		cfg.Log.Error("Initial snapshot refresh failed, serving empty board until the next refresh", "error", err)
	}

	board, err := service.NewBoardService(store, cfg)
	if err != nil {
		cfg.Log.Fatal("Invalid calendar configuration", "error", err)
	}
	serverApp := app.NewApplication(cfg)

	hub := realtime.NewHub(cfg.Log)
	go hub.Run(ctx)
	unsubscribe := store.Subscribe(hub.PublishEvent)
	serverApp.OnShutdown("realtime-hub", func() {
		unsubscribe()
		cancel()
	})

	poller := snapshot.NewPoller(cfg.RefreshSchedule, cfg.RequestTimeout, store, cfg.Log)
	if err := poller.AddJob(pruneSchedule, "prune-sessions", func(context.Context) { board.PruneSessions() }); err != nil {
		cfg.Log.Fatal("Failed to schedule session pruning", "error", err)
	}
	if err := poller.Start(ctx); err != nil {
		cfg.Log.Fatal("Failed to start snapshot poller", "error", err)
	}
	serverApp.OnShutdown("poller", poller.Stop)

	startRedisListener(ctx, cfg, store)

	opts := []handler.Option{handler.WithRealtimeClients(hub.ClientCount)}
	if listener := startKafkaListener(ctx, cfg, store, serverApp); listener != nil {
		opts = append(opts, handler.WithKafkaMetrics(listener.Metrics))
	}

	wsHandler := realtime.Handler(hub, cfg.CORSAllowedOrigins, cfg.Log)
	serverApp.SetApp(
		handler.NewHealthHandler(cfg.Client.Mongo, store.Ready, cfg.Log),
		handler.NewBoardHandler(board, wsHandler, cfg.Log, opts...),
	)
	serverApp.Run()
}

func initStore(cfg *config.Config) *snapshot.Store {
	rooms := roomservice.NewRoomService(roomrepo.NewMongoRoomRepository(cfg), cfg)
	bookings := bookingservice.NewBookingService(
		bookingrepo.NewMongoBookingRepository(cfg),
		validator.NewBookingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Snapshot sources initialized", "database", cfg.MongoDatabaseName)
	return snapshot.NewStore(rooms, bookings, cfg.Log)
}

func startRedisListener(ctx context.Context, cfg *config.Config, store *snapshot.Store) {
	if cfg.Client.Redis == nil {
		cfg.Log.Info("Redis not configured, change notifications rely on the poller")
		return
	}

	listener := snapshot.NewRedisListener(cfg.Client.Redis, cfg.RedisChangesChannel, store, cfg.Log)
	go func() {
		if err := listener.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Redis change listener stopped", "error", err)
		}
	}()
}

func startKafkaListener(ctx context.Context, cfg *config.Config, store *snapshot.Store, serverApp *app.Application) *snapshot.KafkaListener {
	if !cfg.KafkaEnabled {
		return nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	listener, err := snapshot.NewKafkaListener(kafkaCfg, cfg.KafkaChangesTopic, cfg.KafkaConsumerGroup, store, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create kafka change listener", "error", err)
	}

	go func() {
		if err := listener.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Kafka change listener stopped", "error", err)
		}
	}()
	serverApp.OnShutdown("kafka-listener", func() {
		if err := listener.Close(); err != nil {
			cfg.Log.Warn("Failed to close kafka change listener", "error", err)
		}
	})
	return listener
}
