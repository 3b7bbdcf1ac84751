package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/airhost/ops/internal/core/domain"
)

const collectionMessages = "messages"

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type mongoMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OrderID     string             `bson:"order_id"`
	SenderID    string             `bson:"sender_id"`
	RecipientID string             `bson:"recipient_id"`
	Text        string             `bson:"text"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoMessage{
		OrderID:     m.OrderID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Text:        m.Text,
		CreatedAt:   m.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	created := *m
	created.ID = insertedID(res)
	return &created, nil
}

func (r *MessageRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"order_id": orderID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	var docs []mongoMessage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	out := make([]*domain.Message, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.Message{
			ID:          d.ID.Hex(),
			OrderID:     d.OrderID,
			SenderID:    d.SenderID,
			RecipientID: d.RecipientID,
			Text:        d.Text,
			CreatedAt:   d.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *MessageRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("delete order messages: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the messages collection.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
