package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	bookingrepo "roomgrid/internal/bookings/repository"
	"roomgrid/internal/bookings/validator"
	roomrepo "roomgrid/internal/rooms/repository"
	"roomgrid/pkg/config"
	"roomgrid/pkg/kafka"
	kafka_config "roomgrid/pkg/kafka/config"
	"roomgrid/pkg/model"
)

const JobName = "seed"

const (
	seedTimeout = 60 * time.Second
	seedKey     = "seed"
)

func main() {
	file := flag.String("file", "fixtures.json", "path to a {rooms, bookings} JSON fixture")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	cfg := config.Load(JobName)
	fixture, err := loadFixture(*file)
	if err != nil {
		cfg.Log.Fatal("Invalid fixture", "file", *file, "error", err)
	}
	if invalid := validator.NewBookingValidator(cfg.Log).Report(fixture.bookings()); invalid > 0 {
		cfg.Log.Warn("Fixture contains bookings the calendar will skip", "invalid", invalid)
	}

	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	if err := replaceAll(ctx, cfg, fixture); err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Seeding failed", "error", err)
	}
	if err := verifyCounts(ctx, cfg, fixture); err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Seed verification failed", "error", err)
	}
	cfg.Log.Info("Seed applied", "rooms", len(fixture.Rooms), "bookings", len(fixture.Bookings))

	event := fixture.event(time.Now())
	if err := publishKafka(ctx, cfg, event); err != nil {
		cfg.Log.Error("Failed to publish change event to kafka", "error", err)
	}
	if err := publishRedis(ctx, cfg, event); err != nil {
		cfg.Log.Error("Failed to publish change event to redis", "error", err)
	}
}

// replaceAll swaps both collections in one transaction so the board never
// reads new rooms with old bookings.
func replaceAll(ctx context.Context, cfg *config.Config, f *Fixture) error {
	rooms := roomrepo.NewMongoRoomRepository(cfg)
	bookings := bookingrepo.NewMongoBookingRepository(cfg)

	return rooms.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := rooms.ReplaceAll(sessCtx, f.Rooms); err != nil {
			return fmt.Errorf("replace rooms: %w", err)
		}
		if err := bookings.ReplaceAll(sessCtx, f.Bookings); err != nil {
			return fmt.Errorf("replace bookings: %w", err)
		}
		return nil
	})
}

// verifyCounts reads both collections back after the commit.
func verifyCounts(ctx context.Context, cfg *config.Config, f *Fixture) error {
	rooms, err := roomrepo.NewMongoRoomRepository(cfg).Count(ctx)
	if err != nil {
		return err
	}
	bookings, err := bookingrepo.NewMongoBookingRepository(cfg).Count(ctx)
	if err != nil {
		return err
	}
	if rooms != int64(len(f.Rooms)) || bookings != int64(len(f.Bookings)) {
		return fmt.Errorf("stored %d rooms and %d bookings, fixture has %d and %d",
			rooms, bookings, len(f.Rooms), len(f.Bookings))
	}
	return nil
}

func publishKafka(ctx context.Context, cfg *config.Config, event model.ChangeEvent) error {
	if !cfg.KafkaEnabled {
		return nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return err
	}
	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaChangesTopic, kafkaCfg.DLQTopic, cfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Warn("Failed to close kafka producer", "error", err)
		}
	}()

	msg, err := kafka.NewMessage().
		WithKey(seedKey).
		WithValue(event).
		WithEventType(event.Type).
		WithEventID(uuid.NewString()).
		WithSource(JobName).
		BuildE()
	if err != nil {
		return err
	}
	if err := producer.Publish(ctx, msg); err != nil {
		return err
	}
	cfg.Log.Info("Published change event", "transport", "kafka", "topic", cfg.KafkaChangesTopic, "type", event.Type)
	return nil
}

func publishRedis(ctx context.Context, cfg *config.Config, event model.ChangeEvent) error {
	if cfg.Client.Redis == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := cfg.Client.Redis.Publish(ctx, cfg.RedisChangesChannel, payload).Err(); err != nil {
		return err
	}
	cfg.Log.Info("Published change event", "transport", "redis", "channel", cfg.RedisChangesChannel, "type", event.Type)
	return nil
}
