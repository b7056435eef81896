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
	CollectionName = mongotx.RoomsCollection
)

type RoomRepository interface {
	FindAll(ctx context.Context) ([]*model.Room, error)
	Count(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, rooms []*model.Room) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoRoomRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoRoomRepository(cfg *config.Config) RoomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// roomDocument tolerates ids and timestamps written with mixed BSON types.
type roomDocument struct {
	ID          bson.RawValue `bson:"_id"`
	Name        string        `bson:"name"`
	Code        string        `bson:"code"`
	Description string        `bson:"description"`
	CreatedAt   bson.RawValue `bson:"created_at"`
	ImageURL    string        `bson:"image_url"`
}

func (d roomDocument) toModel() *model.Room {
	return &model.Room{
		ID:          mongotx.RawString(d.ID),
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		CreatedAt:   mongotx.RawString(d.CreatedAt),
		ImageURL:    d.ImageURL,
	}
}

func (r *mongoRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []roomDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	rooms := make([]*model.Room, 0, len(docs))
	for _, d := range docs {
		rooms = append(rooms, d.toModel())
	}
	return rooms, nil
}

func (r *mongoRoomRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

// ReplaceAll drops every room and inserts rooms. Run it inside
// ExecuteTransaction so readers never see the collection half empty.
func (r *mongoRoomRepository) ReplaceAll(ctx context.Context, rooms []*model.Room) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil
	}

	docs := make([]any, len(rooms))
	for i, room := range rooms {
		docs[i] = room
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert rooms: %w", err)
	}
	return nil
}

func (r *mongoRoomRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
