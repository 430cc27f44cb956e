// Package notification persists provider notifications in MongoDB.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"appointment-booking-api/internal/model"
)

const collection = "notifications"

type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens the client and ensures the recipient index exists.
func Connect(ctx context.Context, uri, db string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(db).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}

	log.Infof("Successfully connected to database: %s", db)
	return &Mongo{client: client, coll: coll}, nil
}

func (m *Mongo) Close(ctx context.Context) error { return m.client.Disconnect(ctx) }

func (m *Mongo) Create(ctx context.Context, recipientID, content string) (*model.Notification, error) {
	n := &model.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := m.coll.InsertOne(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (m *Mongo) FindByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.coll.Find(ctx, bson.D{{Key: "recipient_id", Value: recipientID}}, opts)
	if err != nil {
		return nil, err
	}
	out := []model.Notification{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
