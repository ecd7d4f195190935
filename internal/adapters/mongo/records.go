package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/larriantoniy/tg_intake_bot/internal/domain"
)

const recordsCollection = "users"

// RecordRepo хранит анкеты в MongoDB, коллекция "users".
type RecordRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewRecordRepo(ctx context.Context, uri, dbName string) (*RecordRepo, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &RecordRepo{
		client: cli,
		coll:   cli.Database(dbName).Collection(recordsCollection),
	}, nil
}

func (r *RecordRepo) Insert(ctx context.Context, rec domain.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepo) ListAll(ctx context.Context) ([]domain.Record, error) {
	// наружу отдаём только публичные поля, без внутренних идентификаторов
	projection := bson.D{
		{Key: "_id", Value: 0},
		{Key: "full_name", Value: 1},
		{Key: "phone_number", Value: 1},
	}

	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return out, nil
}

func (r *RecordRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
