package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

const collectionImages = "images"

type ImageRepository struct {
	col *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{col: db.Collection(collectionImages)}
}

type mongoImage struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	OrderID      string             `bson:"order_id"`
	URL          string             `bson:"url"`
	Caption      string             `bson:"caption,omitempty"`
	Kind         string             `bson:"kind,omitempty"`
	UploadedByID string             `bson:"uploaded_by_id"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (m *mongoImage) toDomain() *domain.Image {
	return &domain.Image{
		ID:           m.ID.Hex(),
		OrderID:      m.OrderID,
		URL:          m.URL,
		Caption:      m.Caption,
		Kind:         domain.ImageKind(m.Kind),
		UploadedByID: m.UploadedByID,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (r *ImageRepository) Create(ctx context.Context, img *domain.Image) (*domain.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoImage{
		OrderID:      img.OrderID,
		URL:          img.URL,
		Caption:      img.Caption,
		Kind:         string(img.Kind),
		UploadedByID: img.UploadedByID,
		CreatedAt:    img.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert image: %w", err)
	}

	created := *img
	created.ID = insertedID(res)
	return &created, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id string) (*domain.Image, error) {
	oid, err := objectID(id, domain.ErrImageNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoImage
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("find image: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *ImageRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"order_id": orderID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	var docs []mongoImage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}

	out := make([]*domain.Image, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ImageRepository) Update(ctx context.Context, id string, upd ports.ImageUpdate) (*domain.Image, error) {
	oid, err := objectID(id, domain.ErrImageNotFound)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if upd.Caption != nil {
		set["caption"] = *upd.Caption
	}
	if upd.Kind != nil {
		set["kind"] = string(*upd.Kind)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoImage
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mi)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("update image: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrImageNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) DeleteByOrder(ctx context.Context, orderID string) ([]string, error) {
	images, err := r.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return nil, fmt.Errorf("delete order images: %w", err)
	}
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	return ids, nil
}

// EnsureIndexes creates necessary indexes on the images collection.
func (r *ImageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
