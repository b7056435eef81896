package repository

import (
	"context"
	"fmt"

	"roomgrid/pkg/config"
	mongotx "roomgrid/pkg/db/mongo"
	"roomgrid/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = mongotx.BookingsCollection
)

type BookingRepository interface {
	FindAll(ctx context.Context) ([]*model.Booking, error)
	Count(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, bookings []*model.Booking) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// bookingDocument keeps timestamps raw. Older records carry BSON dates, newer
// ones ISO strings; both end up as strings for the calendar to parse.
type bookingDocument struct {
	ID        bson.RawValue `bson:"_id"`
	RoomID    bson.RawValue `bson:"room_id"`
	StartTime bson.RawValue `bson:"start_time"`
	EndTime   bson.RawValue `bson:"end_time"`
	Status    string        `bson:"status"`
	CreatedAt bson.RawValue `bson:"created_at"`
	UserEmail string        `bson:"user_email"`
	UserPhone string        `bson:"user_phone"`
}

func (d bookingDocument) toModel() *model.Booking {
	return &model.Booking{
		ID:        mongotx.RawString(d.ID),
		RoomID:    mongotx.RawString(d.RoomID),
		StartTime: mongotx.RawString(d.StartTime),
		EndTime:   mongotx.RawString(d.EndTime),
		Status:    model.BookingStatus(d.Status),
		CreatedAt: mongotx.RawString(d.CreatedAt),
		UserEmail: d.UserEmail,
		UserPhone: d.UserPhone,
	}
}

func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	bookings := make([]*model.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.toModel())
	}
	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// ReplaceAll drops every booking and inserts bookings. Run it inside
// ExecuteTransaction together with the room replacement.
func (r *mongoBookingRepository) ReplaceAll(ctx context.Context, bookings []*model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil
	}

	docs := make([]any, len(bookings))
	for i, b := range bookings {
		docs[i] = b
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert bookings: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
