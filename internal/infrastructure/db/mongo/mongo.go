package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// objectID parses a hex id. Malformed ids cannot exist in the store, so they
// are reported as notFound.
func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

// Repositories bundles every collection adapter over one database.
type Repositories struct {
	Users         *UserRepository
	Orders        *OrderRepository
	Images        *ImageRepository
	Comments      *CommentRepository
	Messages      *MessageRepository
	Notifications *NotificationRepository
}

func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Orders:        NewOrderRepository(db),
		Images:        NewImageRepository(db),
		Comments:      NewCommentRepository(db),
		Messages:      NewMessageRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{collectionUsers, r.Users.EnsureIndexes},
		{collectionOrders, r.Orders.EnsureIndexes},
		{collectionImages, r.Images.EnsureIndexes},
		{collectionComments, r.Comments.EnsureIndexes},
		{collectionMessages, r.Messages.EnsureIndexes},
		{collectionNotifications, r.Notifications.EnsureIndexes},
	}
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", s.name, err)
		}
	}
	return nil
}
