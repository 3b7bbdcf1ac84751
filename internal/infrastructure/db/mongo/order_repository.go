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

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

// assigned_to_id is absent while an order is unassigned.
type mongoOrder struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Type         string             `bson:"type"`
	Address      string             `bson:"address"`
	Date         time.Time          `bson:"date"`
	Note         string             `bson:"note,omitempty"`
	LandlordID   string             `bson:"landlord_id"`
	AssignedToID string             `bson:"assigned_to_id,omitempty"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (m *mongoOrder) toDomain() *domain.Order {
	return &domain.Order{
		ID:           m.ID.Hex(),
		Type:         domain.ServiceType(m.Type),
		Address:      m.Address,
		Date:         m.Date.UTC(),
		Note:         m.Note,
		LandlordID:   m.LandlordID,
		AssignedToID: m.AssignedToID,
		Status:       domain.OrderStatus(m.Status),
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// unassigned matches documents without an assignee.
var unassigned = bson.M{"$in": bson.A{nil, ""}}

// scopeFilter translates an access scope into a query. It must select
// exactly the orders access.CanViewOrder admits.
func scopeFilter(scope access.Scope) bson.M {
	filter := bson.M{}
	if scope.LandlordID != "" {
		filter["landlord_id"] = scope.LandlordID
	}
	if scope.WorkerID != "" {
		filter["$or"] = bson.A{
			bson.M{"assigned_to_id": scope.WorkerID},
			bson.M{"assigned_to_id": unassigned, "status": string(domain.StatusPending)},
		}
	}
	return filter
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoOrder{
		Type:         string(o.Type),
		Address:      o.Address,
		Date:         o.Date,
		Note:         o.Note,
		LandlordID:   o.LandlordID,
		AssignedToID: o.AssignedToID,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *o
	created.ID = insertedID(res)
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := objectID(id, domain.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context, scope access.Scope) ([]*domain.Order, error) {
	if scope.None {
		return []*domain.Order{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var docs []mongoOrder
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	out := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *OrderRepository) Update(ctx context.Context, id string, upd ports.OrderUpdate) (*domain.Order, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Note != nil {
		set["note"] = *upd.Note
	}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	return r.findAndUpdate(ctx, id, bson.M{}, bson.M{"$set": set}, domain.ErrOrderNotFound)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrOrderNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Claim is a single conditional write, so two workers racing for the same
// order cannot both succeed.
func (r *OrderRepository) Claim(ctx context.Context, id, workerID string) (*domain.Order, error) {
	cond := bson.M{
		"status": bson.M{"$ne": string(domain.StatusCompleted)},
		"$or": bson.A{
			bson.M{"assigned_to_id": unassigned},
			bson.M{"assigned_to_id": workerID},
		},
	}
	return r.findAndUpdate(ctx, id, cond, startWork(workerID, time.Now().UTC()), domain.ErrConflict)
}

func (r *OrderRepository) Assign(ctx context.Context, id, workerID string) (*domain.Order, error) {
	cond := bson.M{"status": bson.M{"$ne": string(domain.StatusCompleted)}}
	return r.findAndUpdate(ctx, id, cond, startWork(workerID, time.Now().UTC()), domain.ErrConflict)
}

// startWork hands the order to workerID and moves it to IN_PROGRESS.
// Claim and Assign share it.
func startWork(workerID string, now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"assigned_to_id": workerID,
		"status":         string(domain.StatusInProgress),
		"updated_at":     now,
	}}
}

// findAndUpdate applies update to order id when cond also holds. A missing
// order is ErrOrderNotFound; an existing order failing cond is noMatch.
func (r *OrderRepository) findAndUpdate(ctx context.Context, id string, cond, update bson.M, noMatch error) (*domain.Order, error) {
	oid, err := objectID(id, domain.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid}
	for k, v := range cond {
		filter[k] = v
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	err = r.col.FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mo)
	if err == nil {
		return mo.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if len(cond) == 0 {
		return nil, domain.ErrOrderNotFound
	}
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return nil, noMatch
}

func (r *OrderRepository) CountByStatus(ctx context.Context, statuses ...domain.OrderStatus) (int64, error) {
	values := make(bson.A, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"status": bson.M{"$in": values}})
}

// EnsureIndexes creates necessary indexes on the orders collection.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "landlord_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_to_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
